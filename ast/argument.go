package ast

import "github.com/shyptr/graphql-validator/errors"

// Argument is one `name: value` pair passed to a field or directive.
type Argument struct {
	Name  *Name
	Value Value
	Loc   errors.Location
}

func (a *Argument) Kind() Kind                { return KindArgument }
func (a *Argument) Location() errors.Location { return a.Loc }

// Directive is an `@name(args...)` annotation attachable to any of the
// executable node kinds that carry a Directives slice.
type Directive struct {
	Name      *Name
	Arguments []*Argument
	Loc       errors.Location
}

func (d *Directive) Kind() Kind                { return KindDirective }
func (d *Directive) Location() errors.Location { return d.Loc }
