package ast

import "github.com/shyptr/graphql-validator/errors"

// Node is implemented by every AST shape in this package.
type Node interface {
	Kind() Kind
	Location() errors.Location
}

// Name is a bare identifier, carrying its own source location so rules
// can report precisely where a duplicate or unknown name occurred.
type Name struct {
	Value string
	Loc   errors.Location
}

func (n *Name) Kind() Kind                { return KindName }
func (n *Name) Location() errors.Location { return n.Loc }
