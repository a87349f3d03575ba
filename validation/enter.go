package validation

import (
	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/schema"
)

// enterDocument indexes every fragment definition into fragmentMap
// before any operation subtree is walked, so spreads can resolve
// fragments defined later in the document.
func enterDocument(c *context, n ast.Node) {
	doc := n.(*ast.Document)
	for _, frag := range doc.Fragments() {
		if _, exists := c.fragmentMap[frag.Name.Value]; !exists {
			c.fragmentMap[frag.Name.Value] = frag
		}
	}
}

// enterOperation pushes the schema's query root as the type
// environment for the operation's top-level selection set.
func enterOperation(c *context, n ast.Node) {
	c.push(typeFrame(c.schema.Query()))
}

// enterField resolves the field's declared return type against the
// parent frame and pushes it (or absent, if the parent has no such
// field). It also records the resolved schema.Field and parent type so
// unambiguousSelections can compare selections without re-resolving.
func enterField(c *context, n ast.Node) {
	f := n.(*ast.Field)
	parent := c.top()

	var sf *schema.Field
	if !parent.isAbsent {
		if obj, fields := fieldsOf(parent.typ); obj {
			sf = fields[f.Name.Value]
		}
	}

	c.fieldInfo[f] = fieldInfo{field: sf, parent: parent.typ}

	if sf == nil {
		c.push(absentFrame())
		return
	}
	c.push(typeFrame(sf.Type))
}

// enterInlineFragment resolves the optional type condition; with none
// given, the fragment's type environment is simply the enclosing one.
func enterInlineFragment(c *context, n ast.Node) {
	f := n.(*ast.InlineFragment)
	if f.TypeCondition == nil {
		c.push(c.top())
		return
	}
	t, ok := c.schema.GetType(f.TypeCondition.Name.Value)
	if !ok {
		c.push(absentFrame())
		return
	}
	c.push(typeFrame(t))
}

// enterFragmentSpread marks the spread fragment as used and pushes its
// resolved target type. The fragmentSpread kind has no exit hook, so
// this frame is never popped; kept as-is pending owner review.
func enterFragmentSpread(c *context, n ast.Node) {
	spread := n.(*ast.FragmentSpread)
	c.usedFragments[spread.Name.Value] = struct{}{}

	frag, ok := c.fragmentMap[spread.Name.Value]
	if !ok || frag.TypeCondition == nil {
		c.push(absentFrame())
		return
	}
	t, ok := c.schema.GetType(frag.TypeCondition.Name.Value)
	if !ok {
		c.push(absentFrame())
		return
	}
	c.push(typeFrame(t))
}

// enterFragmentDefinition resolves the mandatory type condition.
func enterFragmentDefinition(c *context, n ast.Node) {
	f := n.(*ast.FragmentDefinition)
	if f.TypeCondition == nil {
		c.push(absentFrame())
		return
	}
	t, ok := c.schema.GetType(f.TypeCondition.Name.Value)
	if !ok {
		c.push(absentFrame())
		return
	}
	c.push(typeFrame(t))
}

// fieldsOf returns the field map of t if it is an Object or Interface,
// and whether t was one of those (distinguishing "no fields because
// this isn't a composite type" from "composite type with no fields").
func fieldsOf(t schema.Type) (ok bool, fields map[string]*schema.Field) {
	switch t := schema.NamedTypeOf(t).(type) {
	case *schema.Object:
		return true, t.Fields
	case *schema.Interface:
		return true, t.Fields
	default:
		return false, nil
	}
}
