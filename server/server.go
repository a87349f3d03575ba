// Package server exposes validation as a service: a client opens one
// websocket, submits parsed documents as JSON frames, and receives one
// verdict frame per document. Documents are validated independently;
// an invalid document fails its own frame and nothing else.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/cache"
	"github.com/shyptr/graphql-validator/errors"
	"github.com/shyptr/graphql-validator/registry"
	"github.com/shyptr/graphql-validator/schema"
	"github.com/shyptr/graphql-validator/validation"
)

// Request is one inbound frame: a document in the parser's JSON tree
// form, with an optional client-chosen id echoed back on the response.
type Request struct {
	ID       string          `json:"id,omitempty"`
	Document json.RawMessage `json:"document"`
}

// Response is one outbound frame. Error is nil exactly when Valid.
type Response struct {
	ID    string               `json:"id,omitempty"`
	Valid bool                 `json:"valid"`
	Error *errors.GraphQLError `json:"error,omitempty"`
}

// Handler validates every document submitted over a websocket against
// one resolver. It is safe for concurrent connections: the resolver is
// read-only and each validation walk owns its own state.
type Handler struct {
	resolver schema.Resolver
	maxDepth int
	upgrader websocket.Upgrader
}

// New builds a Handler over an already-built resolver. maxDepth bounds
// field nesting per document; 0 disables the bound.
func New(resolver schema.Resolver, maxDepth int) *Handler {
	return &Handler{resolver: resolver, maxDepth: maxDepth}
}

// FromBucket loads a schema manifest from a blob bucket URL and serves
// it with cached implementor lookups. key doubles as the cache group
// name, so one process may serve several schemas from distinct keys.
func FromBucket(ctx context.Context, bucketURL, key string, maxDepth int) (*Handler, error) {
	s, err := registry.LoadURL(ctx, bucketURL, key)
	if err != nil {
		return nil, err
	}
	return New(cache.New(key, s, 1<<20), maxDepth), nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if err := conn.WriteJSON(h.check(req)); err != nil {
			return
		}
	}
}

func (h *Handler) check(req Request) Response {
	if len(req.Document) == 0 {
		return Response{ID: req.ID, Error: &errors.GraphQLError{Message: "Must provide document"}}
	}
	doc, err := ast.DecodeDocument(req.Document)
	if err != nil {
		return Response{ID: req.ID, Error: &errors.GraphQLError{Message: err.Error()}}
	}
	if gqlErr := validation.LimitDepth(doc, h.maxDepth); gqlErr != nil {
		return Response{ID: req.ID, Error: gqlErr}
	}
	if gqlErr := validation.Validate(h.resolver, doc); gqlErr != nil {
		return Response{ID: req.ID, Error: gqlErr}
	}
	return Response{ID: req.ID, Valid: true}
}
