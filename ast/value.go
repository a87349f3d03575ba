package ast

import "github.com/shyptr/graphql-validator/errors"

// Value is implemented by every literal and variable node. Rules that
// inspect argument literals switch on the concrete type.
type Value interface {
	Node
	isValue()
}

// Variable is a `$name` reference. The validator treats it as an
// opaque value node; variable coercion happens at execution time.
type Variable struct {
	Name *Name
	Loc  errors.Location
}

func (v *Variable) Kind() Kind                { return KindVariable }
func (v *Variable) Location() errors.Location { return v.Loc }
func (v *Variable) isValue()                  {}

// IntValue, FloatValue and StringValue carry their literal text exactly
// as lexed; the validator never needs their numeric value, only their
// kind and raw text (for the overlap rule's literal-value comparison).
type IntValue struct {
	Value string
	Loc   errors.Location
}

func (v *IntValue) Kind() Kind                { return KindInt }
func (v *IntValue) Location() errors.Location { return v.Loc }
func (v *IntValue) isValue()                  {}

type FloatValue struct {
	Value string
	Loc   errors.Location
}

func (v *FloatValue) Kind() Kind                { return KindFloat }
func (v *FloatValue) Location() errors.Location { return v.Loc }
func (v *FloatValue) isValue()                  {}

type StringValue struct {
	Value string
	Loc   errors.Location
}

func (v *StringValue) Kind() Kind                { return KindString }
func (v *StringValue) Location() errors.Location { return v.Loc }
func (v *StringValue) isValue()                  {}

type BooleanValue struct {
	Value bool
	Loc   errors.Location
}

func (v *BooleanValue) Kind() Kind                { return KindBoolean }
func (v *BooleanValue) Location() errors.Location { return v.Loc }
func (v *BooleanValue) isValue()                  {}

type NullValue struct {
	Loc errors.Location
}

func (v *NullValue) Kind() Kind                { return KindNull }
func (v *NullValue) Location() errors.Location { return v.Loc }
func (v *NullValue) isValue()                  {}

// EnumValue holds the bare enum member name, e.g. `NORTH` in `dir: NORTH`.
type EnumValue struct {
	Value string
	Loc   errors.Location
}

func (v *EnumValue) Kind() Kind                { return KindEnum }
func (v *EnumValue) Location() errors.Location { return v.Loc }
func (v *EnumValue) isValue()                  {}

// ListValue is an ordered `[...]` literal.
type ListValue struct {
	Values []Value
	Loc    errors.Location
}

func (v *ListValue) Kind() Kind                { return KindList }
func (v *ListValue) Location() errors.Location { return v.Loc }
func (v *ListValue) isValue()                  {}

// ObjectField is one `name: value` pair inside an ObjectValue literal.
type ObjectField struct {
	Name  *Name
	Value Value
	Loc   errors.Location
}

func (f *ObjectField) Location() errors.Location { return f.Loc }

// ObjectValue is an ordered `{...}` literal, the input-object value
// syntax.
type ObjectValue struct {
	Fields []*ObjectField
	Loc    errors.Location
}

func (v *ObjectValue) Kind() Kind                { return KindInputObject }
func (v *ObjectValue) Location() errors.Location { return v.Loc }
func (v *ObjectValue) isValue()                  {}
