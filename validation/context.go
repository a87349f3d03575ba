// Package validation decides whether a parsed query document is
// executable against a schema. It walks the document depth-first,
// dispatching on node kind through a per-kind visitor table, and stops
// at the first rule violation: Validate returns a single
// *errors.GraphQLError, never an accumulated list.
package validation

import (
	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/schema"
)

// frame is one entry of the type stack. isAbsent marks a node with no
// matching definition in the schema (an unknown field, an unresolvable
// type condition); rules reading the stack must tolerate it.
type frame struct {
	typ      schema.Type
	isAbsent bool
}

func typeFrame(t schema.Type) frame {
	if t == nil {
		return frame{isAbsent: true}
	}
	return frame{typ: t}
}

func absentFrame() frame { return frame{isAbsent: true} }

// context is the mutable state threaded through one validation walk.
// It is owned exclusively by that walk; nothing outside this package
// ever sees it.
type context struct {
	schema schema.Resolver
	doc    *ast.Document

	fragmentMap           map[string]*ast.FragmentDefinition
	operationNames        map[string]struct{}
	hasAnonymousOperation bool
	usedFragments         map[string]struct{}

	objects []frame

	// fieldInfo records, per Field node visited, the schema.Field it
	// resolved to and the type it was selected from, so the overlap
	// rule can compare two selections sharing an output key without
	// re-resolving them.
	fieldInfo map[*ast.Field]fieldInfo
}

type fieldInfo struct {
	field  *schema.Field
	parent schema.Type
}

func newContext(s schema.Resolver, doc *ast.Document) *context {
	return &context{
		schema:         s,
		doc:            doc,
		fragmentMap:    make(map[string]*ast.FragmentDefinition),
		operationNames: make(map[string]struct{}),
		usedFragments:  make(map[string]struct{}),
		fieldInfo:      make(map[*ast.Field]fieldInfo),
	}
}

// push records a new type frame as the type environment governing the
// current node's children.
func (c *context) push(f frame) { c.objects = append(c.objects, f) }

func (c *context) pop() { c.objects = c.objects[:len(c.objects)-1] }

// top returns the innermost type frame, or absent on an empty stack.
func (c *context) top() frame {
	if len(c.objects) == 0 {
		return absentFrame()
	}
	return c.objects[len(c.objects)-1]
}

// parentFrame returns the frame one level above top — the parent type,
// still valid even when top is absent. fieldsDefinedOnType needs it to
// name the parent type in its error.
func (c *context) parentFrame() frame {
	if len(c.objects) < 2 {
		return absentFrame()
	}
	return c.objects[len(c.objects)-2]
}
