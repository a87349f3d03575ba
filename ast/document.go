package ast

import "github.com/shyptr/graphql-validator/errors"

// Definition is either an OperationDefinition or a FragmentDefinition,
// the only two executable definitions a Document may hold.
type Definition interface {
	Node
	isDefinition()
}

// Document is the root of a query document: an ordered sequence of
// operation and fragment definitions.
type Document struct {
	Definitions []Definition
	Loc         errors.Location
}

func (d *Document) Kind() Kind                { return KindDocument }
func (d *Document) Location() errors.Location { return d.Loc }

// Operations returns the document's operation definitions in order.
func (d *Document) Operations() []*OperationDefinition {
	var ops []*OperationDefinition
	for _, def := range d.Definitions {
		if op, ok := def.(*OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Fragments returns the document's fragment definitions in order.
func (d *Document) Fragments() []*FragmentDefinition {
	var frags []*FragmentDefinition
	for _, def := range d.Definitions {
		if frag, ok := def.(*FragmentDefinition); ok {
			frags = append(frags, frag)
		}
	}
	return frags
}
