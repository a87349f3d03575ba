// Package schema is the type system the validator consumes: a
// discriminated Type sum (Object, Interface, Union, Scalar, Enum,
// InputObject, NonNull, List) and a Schema handle exposing Query,
// GetType, GetDirective, GetImplementors.
package schema

import (
	"fmt"

	"github.com/shyptr/graphql-validator/ast"
)

// Type is implemented by every schema type variant. IsType is a marker
// method preventing any other interface from satisfying Type.
type Type interface {
	fmt.Stringer
	IsType()
}

// NamedType is the subset of Type variants that carry their own name:
// every variant except NonNull and List, which wrap another Type.
type NamedType interface {
	Type
	TypeName() string
}

var (
	_ NamedType = (*Object)(nil)
	_ NamedType = (*Interface)(nil)
	_ NamedType = (*Union)(nil)
	_ NamedType = (*Scalar)(nil)
	_ NamedType = (*Enum)(nil)
	_ NamedType = (*InputObject)(nil)
	_ Type      = (*NonNull)(nil)
	_ Type      = (*List)(nil)
)

// Field describes one field of an Object or Interface type: its
// declared return type and its argument map.
type Field struct {
	Type      Type
	Arguments map[string]*InputValue
}

// InputValue describes a declared argument or input-object field.
type InputValue struct {
	Type Type
}

// Object is a concrete, selectable type with its own field set.
type Object struct {
	Name   string
	Fields map[string]*Field

	// interfaceNames lists the interfaces this type declares, used by
	// Schema.New to build the interface -> implementors index.
	interfaceNames []string
}

// Implements declares that this Object implements the named interface.
// Registry callers build the interface set before passing the Object
// to New; it has no effect afterward.
func (t *Object) Implements(interfaceName string) {
	t.interfaceNames = append(t.interfaceNames, interfaceName)
}

func (t *Object) String() string   { return t.Name }
func (t *Object) IsType()          {}
func (t *Object) TypeName() string { return t.Name }

// Interface is implemented by a set of Object types (the schema's
// GetImplementors resolves that set).
type Interface struct {
	Name   string
	Fields map[string]*Field
}

func (t *Interface) String() string   { return t.Name }
func (t *Interface) IsType()          {}
func (t *Interface) TypeName() string { return t.Name }

// Union is one of a fixed set of Object types.
type Union struct {
	Name  string
	Types []*Object
}

func (t *Union) String() string   { return t.Name }
func (t *Union) IsType()          {}
func (t *Union) TypeName() string { return t.Name }

// Scalar is a leaf type whose literal values are coerced by
// ParseLiteral. ok=false means the literal does not coerce to this
// scalar.
type Scalar struct {
	Name         string
	ParseLiteral func(value ast.Value) (coerced interface{}, ok bool)
}

func (t *Scalar) String() string   { return t.Name }
func (t *Scalar) IsType()          {}
func (t *Scalar) TypeName() string { return t.Name }

// Enum is a leaf type whose literal values must be one of Values.
type Enum struct {
	Name   string
	Values map[string]struct{}
}

func (t *Enum) String() string   { return t.Name }
func (t *Enum) IsType()          {}
func (t *Enum) TypeName() string { return t.Name }

// InputObject is a structured literal type used only in argument /
// variable position, never as a selectable output type.
type InputObject struct {
	Name   string
	Fields map[string]*InputValue
}

func (t *InputObject) String() string   { return t.Name }
func (t *InputObject) IsType()          {}
func (t *InputObject) TypeName() string { return t.Name }

// NonNull wraps a Type that may never resolve to null.
type NonNull struct {
	OfType Type
}

func (t *NonNull) String() string { return t.OfType.String() + "!" }
func (t *NonNull) IsType()        {}

// List wraps a Type that may occur zero or more times.
type List struct {
	OfType Type
}

func (t *List) String() string { return "[" + t.OfType.String() + "]" }
func (t *List) IsType()        {}

// Directive describes a declared directive's argument map. Locations
// are not modeled: the validator only checks that a directive exists,
// never where it may appear.
type Directive struct {
	Name      string
	Arguments map[string]*InputValue
}

// NamedTypeOf strips NonNull/List wrappers and returns the innermost
// named type, or nil if t is nil.
func NamedTypeOf(t Type) NamedType {
	for {
		switch v := t.(type) {
		case nil:
			return nil
		case NamedType:
			return v
		case *NonNull:
			t = v.OfType
		case *List:
			t = v.OfType
		default:
			return nil
		}
	}
}

// IsComposite reports whether t (after unwrapping wrappers) is an
// Object, Interface or Union.
func IsComposite(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Object, *Interface, *Union:
		return true
	default:
		return false
	}
}

// IsLeaf reports whether t (after unwrapping wrappers) is a Scalar or
// Enum.
func IsLeaf(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Scalar, *Enum:
		return true
	default:
		return false
	}
}
