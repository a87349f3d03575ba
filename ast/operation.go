package ast

import "github.com/shyptr/graphql-validator/errors"

// OperationType is one of the three root operation kinds a schema exposes.
type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// OperationDefinition is a query/mutation/subscription, optionally
// named, with its directives and top-level selection set.
type OperationDefinition struct {
	Operation    OperationType
	Name         *Name
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          errors.Location
}

func (o *OperationDefinition) Kind() Kind                { return KindOperation }
func (o *OperationDefinition) Location() errors.Location { return o.Loc }
func (o *OperationDefinition) isDefinition()             {}
