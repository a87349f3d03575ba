package validation

import (
	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/errors"
)

// rule is a single semantic check. It reads the context and the node
// it was invoked on and returns the first violation it finds, or nil.
type rule func(c *context, n ast.Node) *errors.GraphQLError

// visitor is one row of the dispatch table: what to do on enter, which
// rules to run on entry, how to find this node's children, which rules
// to run after the children, and what to do on exit.
type visitor struct {
	enter     func(c *context, n ast.Node)
	rules     []rule
	children  func(n ast.Node) []ast.Node
	exitRules []rule
	exit      func(c *context, n ast.Node)
}

// dispatch is the per-kind visitor table. Node kinds absent from this
// map are skipped without descent: value and type-reference nodes are
// examined directly by the rules that need them (argumentsOfCorrectType,
// uniqueInputObjectFields), never walked generically.
var dispatch = map[ast.Kind]*visitor{
	ast.KindDocument: {
		enter:     enterDocument,
		rules:     []rule{uniqueFragmentNames},
		children:  childrenDocument,
		exitRules: []rule{noUnusedFragments},
	},
	ast.KindOperation: {
		enter:    enterOperation,
		rules:    []rule{uniqueOperationNames, loneAnonymousOperation, directivesAreDefined},
		children: childrenOperation,
		exit:     exitPop,
	},
	ast.KindSelectionSet: {
		rules:    []rule{unambiguousSelections},
		children: childrenSelectionSet,
	},
	ast.KindField: {
		enter: enterField,
		rules: []rule{
			fieldsDefinedOnType,
			argumentsDefinedOnType,
			scalarFieldsAreLeaves,
			compositeFieldsAreNotLeaves,
			uniqueArgumentNames,
			argumentsOfCorrectType,
			requiredArgumentsPresent,
			directivesAreDefined,
		},
		children: childrenField,
		exit:     exitPop,
	},
	ast.KindInlineFragment: {
		enter:    enterInlineFragment,
		rules:    []rule{fragmentHasValidType, fragmentSpreadIsPossible, directivesAreDefined},
		children: childrenInlineFragment,
		exit:     exitPop,
	},
	ast.KindFragmentSpread: {
		enter: enterFragmentSpread,
		rules: []rule{fragmentSpreadTargetDefined, fragmentSpreadIsPossible, directivesAreDefined},
		// Intentional: no exit hook. enterFragmentSpread pushes a type
		// frame that is never popped; a known quirk kept as-is pending
		// owner review. See DESIGN.md.
	},
	ast.KindFragmentDefinition: {
		enter:    enterFragmentDefinition,
		rules:    []rule{fragmentHasValidType, fragmentDefinitionHasNoCycles, directivesAreDefined},
		children: childrenFragmentDefinition,
		exit:     exitPop,
	},
	ast.KindArgument: {
		rules: []rule{uniqueInputObjectFields},
	},
}

func exitPop(c *context, _ ast.Node) { c.pop() }

// walk visits n: enter hook, entry rules in declared order, children
// left-to-right, exit rules, exit hook. The first rule failure anywhere
// in the subtree aborts the whole walk immediately.
func walk(c *context, n ast.Node) *errors.GraphQLError {
	v, ok := dispatch[n.Kind()]
	if !ok {
		return nil
	}

	if v.enter != nil {
		v.enter(c, n)
	}

	for _, r := range v.rules {
		if err := r(c, n); err != nil {
			return err
		}
	}

	if v.children != nil {
		for _, child := range v.children(n) {
			if err := walk(c, child); err != nil {
				return err
			}
		}
	}

	for _, r := range v.exitRules {
		if err := r(c, n); err != nil {
			return err
		}
	}

	if v.exit != nil {
		v.exit(c, n)
	}

	return nil
}

func childrenDocument(n ast.Node) []ast.Node {
	doc := n.(*ast.Document)
	children := make([]ast.Node, len(doc.Definitions))
	for i, d := range doc.Definitions {
		children[i] = d
	}
	return children
}

func childrenOperation(n ast.Node) []ast.Node {
	op := n.(*ast.OperationDefinition)
	if op.SelectionSet == nil {
		return nil
	}
	return []ast.Node{op.SelectionSet}
}

func childrenSelectionSet(n ast.Node) []ast.Node {
	ss := n.(*ast.SelectionSet)
	children := make([]ast.Node, len(ss.Selections))
	for i, s := range ss.Selections {
		children[i] = s
	}
	return children
}

func childrenField(n ast.Node) []ast.Node {
	f := n.(*ast.Field)
	children := make([]ast.Node, 0, len(f.Arguments)+1)
	for _, a := range f.Arguments {
		children = append(children, a)
	}
	if f.SelectionSet != nil {
		children = append(children, f.SelectionSet)
	}
	return children
}

func childrenInlineFragment(n ast.Node) []ast.Node {
	f := n.(*ast.InlineFragment)
	if f.SelectionSet == nil {
		return nil
	}
	return []ast.Node{f.SelectionSet}
}

func childrenFragmentDefinition(n ast.Node) []ast.Node {
	f := n.(*ast.FragmentDefinition)
	if f.SelectionSet == nil {
		return nil
	}
	return []ast.Node{f.SelectionSet}
}
