package validation

import (
	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/errors"
)

// LimitDepth checks that no field selection in doc nests deeper than
// maxDepth and returns the first violation, or nil. A maxDepth of 0
// disables the check. It is a standalone pre-pass: callers that want a
// cost bound run it before Validate; Validate itself never applies one.
func LimitDepth(doc *ast.Document, maxDepth int) *errors.GraphQLError {
	if maxDepth == 0 || doc == nil {
		return nil
	}
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, frag := range doc.Fragments() {
		fragments[frag.Name.Value] = frag
	}
	for _, op := range doc.Operations() {
		if err := checkDepth(op.SelectionSet, fragments, map[string]struct{}{}, 1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func checkDepth(ss *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, spreading map[string]struct{}, depth, maxDepth int) *errors.GraphQLError {
	if ss == nil {
		return nil
	}
	for _, sel := range ss.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			if depth > maxDepth {
				return errors.At(errors.New("maxDepthExceeded",
					`Field "%s" has depth %d that exceeds max depth %d`, sel.Name.Value, depth, maxDepth), sel.Location())
			}
			if err := checkDepth(sel.SelectionSet, fragments, spreading, depth+1, maxDepth); err != nil {
				return err
			}
		case *ast.InlineFragment:
			// An inline fragment's fields sit at the same depth as its
			// sibling fields.
			if err := checkDepth(sel.SelectionSet, fragments, spreading, depth, maxDepth); err != nil {
				return err
			}
		case *ast.FragmentSpread:
			frag, ok := fragments[sel.Name.Value]
			if !ok {
				// Unknown fragment: depth cannot be evaluated here; the
				// main walk reports the missing target.
				continue
			}
			if _, active := spreading[sel.Name.Value]; active {
				// Cyclic spread: the main walk rejects it; without this
				// guard the scan would never terminate.
				continue
			}
			spreading[sel.Name.Value] = struct{}{}
			err := checkDepth(frag.SelectionSet, fragments, spreading, depth, maxDepth)
			delete(spreading, sel.Name.Value)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
