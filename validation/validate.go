package validation

import (
	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/errors"
	"github.com/shyptr/graphql-validator/schema"
)

// Validate walks doc against s and returns the first semantic
// violation, or nil on success. A fresh context is built per call;
// neither s nor doc is mutated.
func Validate(s schema.Resolver, doc *ast.Document) *errors.GraphQLError {
	c := newContext(s, doc)
	return walk(c, doc)
}
