package ast

import "github.com/shyptr/graphql-validator/errors"

// Selection is implemented by the three selection-set members: Field,
// InlineFragment, FragmentSpread.
type Selection interface {
	Node
	isSelection()
}

// SelectionSet is an ordered list of selections, attached to an
// operation, a field, or a fragment (inline or named).
type SelectionSet struct {
	Selections []Selection
	Loc        errors.Location
}

func (s *SelectionSet) Kind() Kind                { return KindSelectionSet }
func (s *SelectionSet) Location() errors.Location { return s.Loc }

// Field is a single selected field, with its optional alias, arguments,
// directives, and (for composite-typed fields) nested selection set.
type Field struct {
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          errors.Location
}

func (f *Field) Kind() Kind                { return KindField }
func (f *Field) Location() errors.Location { return f.Loc }
func (f *Field) isSelection()              {}

// OutputKey is the alias if given, else the field name: the key under
// which the field's result would appear in a response.
func (f *Field) OutputKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

// InlineFragment is an anonymous fragment embedded in a selection set,
// with an optional type condition.
type InlineFragment struct {
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           errors.Location
}

func (f *InlineFragment) Kind() Kind                { return KindInlineFragment }
func (f *InlineFragment) Location() errors.Location { return f.Loc }
func (f *InlineFragment) isSelection()              {}

// FragmentSpread is a named reference to a FragmentDefinition.
type FragmentSpread struct {
	Name       *Name
	Directives []*Directive
	Loc        errors.Location
}

func (f *FragmentSpread) Kind() Kind                { return KindFragmentSpread }
func (f *FragmentSpread) Location() errors.Location { return f.Loc }
func (f *FragmentSpread) isSelection()              {}

// FragmentDefinition is a named, reusable selection set gated by a type
// condition.
type FragmentDefinition struct {
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           errors.Location
}

func (f *FragmentDefinition) Kind() Kind                { return KindFragmentDefinition }
func (f *FragmentDefinition) Location() errors.Location { return f.Loc }
func (f *FragmentDefinition) isDefinition()             {}
