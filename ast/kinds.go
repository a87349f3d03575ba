package ast

// Kind discriminates the AST node shapes. The traversal engine
// dispatches on Kind; node kinds it doesn't recognize are skipped
// without descent.
type Kind string

const (
	KindDocument           Kind = "Document"
	KindOperation          Kind = "Operation"
	KindFragmentDefinition Kind = "FragmentDefinition"
	KindSelectionSet       Kind = "SelectionSet"
	KindField              Kind = "Field"
	KindInlineFragment     Kind = "InlineFragment"
	KindFragmentSpread     Kind = "FragmentSpread"
	KindArgument           Kind = "Argument"
	KindDirective          Kind = "Directive"
	KindName               Kind = "Name"

	KindNamedType Kind = "NamedType"
	KindListType  Kind = "ListType"
	KindNonNull   Kind = "NonNullType"

	KindList        Kind = "ListValue"
	KindInputObject Kind = "ObjectValue"
	KindEnum        Kind = "EnumValue"
	KindInt         Kind = "IntValue"
	KindFloat       Kind = "FloatValue"
	KindString      Kind = "StringValue"
	KindBoolean     Kind = "BooleanValue"
	KindNull        Kind = "NullValue"
	KindVariable    Kind = "Variable"
)
