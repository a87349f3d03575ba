package server_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/graphql-validator/registry"
	"github.com/shyptr/graphql-validator/server"
)

const manifest = `
query: Query
types:
  - name: Query
    kind: OBJECT
    fields:
      - {name: dog, type: Dog}
      - {name: version, type: String}
  - name: Dog
    kind: OBJECT
    fields:
      - {name: nickname, type: String}
      - {name: barkVolume, type: Int}
`

func dial(t *testing.T, h *server.Handler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, frame string) server.Response {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
	var resp server.Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func newHandler(t *testing.T, maxDepth int) *server.Handler {
	t.Helper()
	m, err := registry.ParseManifest([]byte(manifest))
	require.NoError(t, err)
	s, err := registry.Compile(m)
	require.NoError(t, err)
	return server.New(s, maxDepth)
}

const validDocument = `{
	"kind": "document",
	"definitions": [{
		"kind": "operation",
		"selectionSet": {"kind": "selectionSet", "selections": [
			{"kind": "field", "name": {"value": "dog"}, "selectionSet": {
				"kind": "selectionSet", "selections": [{"kind": "field", "name": {"value": "nickname"}}]
			}}
		]}
	}]
}`

func TestHandler(t *testing.T) {
	conn := dial(t, newHandler(t, 0))

	t.Run("accepts a valid document", func(t *testing.T) {
		resp := roundTrip(t, conn, `{"id": "1", "document": `+validDocument+`}`)
		assert.Equal(t, "1", resp.ID)
		assert.True(t, resp.Valid)
		assert.Nil(t, resp.Error)
	})

	t.Run("rejects an invalid document and keeps serving", func(t *testing.T) {
		resp := roundTrip(t, conn, `{"id": "2", "document": {
			"kind": "document",
			"definitions": [{
				"kind": "operation",
				"selectionSet": {"kind": "selectionSet", "selections": [
					{"kind": "field", "name": {"value": "tail"}}
				]}
			}]
		}}`)
		assert.Equal(t, "2", resp.ID)
		assert.False(t, resp.Valid)
		require.NotNil(t, resp.Error)
		assert.Equal(t, `Cannot query field "tail" on type "Query".`, resp.Error.Message)

		// The connection survives a rejected document.
		resp = roundTrip(t, conn, `{"id": "3", "document": `+validDocument+`}`)
		assert.True(t, resp.Valid)
	})

	t.Run("rejects a frame without a document", func(t *testing.T) {
		resp := roundTrip(t, conn, `{"id": "4"}`)
		assert.False(t, resp.Valid)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Must provide document", resp.Error.Message)
	})

	t.Run("rejects an undecodable document", func(t *testing.T) {
		resp := roundTrip(t, conn, `{"id": "5", "document": {"kind": "mystery"}}`)
		assert.False(t, resp.Valid)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "unknown node kind")
	})
}

func TestHandlerDepthLimit(t *testing.T) {
	conn := dial(t, newHandler(t, 1))

	resp := roundTrip(t, conn, `{"document": `+validDocument+`}`)
	assert.False(t, resp.Valid)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "exceeds max depth 1")
}

func TestFromBucket(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.yaml"), []byte(manifest), 0o600))

	h, err := server.FromBucket(context.Background(), "file://"+dir, "main.yaml", 0)
	require.NoError(t, err)

	conn := dial(t, h)
	resp := roundTrip(t, conn, `{"document": `+validDocument+`}`)
	assert.True(t, resp.Valid)

	_, err = server.FromBucket(context.Background(), "file://"+dir, "absent.yaml", 0)
	require.Error(t, err)
}
