package ast

import "github.com/shyptr/graphql-validator/errors"

// Type is a type reference as written in the document: a named type,
// or a list/non-null wrapper around another type reference. This is
// distinct from schema.Type, which is the schema's own resolved type
// graph; ast.Type is just syntax the validator resolves against it.
type Type interface {
	Node
	isType()
	String() string
}

// NamedType is a bare type name, e.g. `User` or `Int`.
type NamedType struct {
	Name *Name
	Loc  errors.Location
}

func (t *NamedType) Kind() Kind                { return KindNamedType }
func (t *NamedType) Location() errors.Location { return t.Loc }
func (t *NamedType) isType()                   {}
func (t *NamedType) String() string            { return t.Name.Value }

// ListType is a `[T]` type reference.
type ListType struct {
	OfType Type
	Loc    errors.Location
}

func (t *ListType) Kind() Kind                { return KindListType }
func (t *ListType) Location() errors.Location { return t.Loc }
func (t *ListType) isType()                   {}
func (t *ListType) String() string            { return "[" + t.OfType.String() + "]" }

// NonNullType is a `T!` type reference.
type NonNullType struct {
	OfType Type
	Loc    errors.Location
}

func (t *NonNullType) Kind() Kind                { return KindNonNull }
func (t *NonNullType) Location() errors.Location { return t.Loc }
func (t *NonNullType) isType()                   {}
func (t *NonNullType) String() string            { return t.OfType.String() + "!" }
