package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patreon-gateway/internal/handlers"
	"patreon-gateway/internal/types"
)

func newTestRouter(mcp http.Handler) http.Handler {
	h := handlers.PostsHandler{Posts: func(context.Context) types.Envelope {
		return types.Failed("Patreon access token not configured", nil)
	}}
	return NewRouter(Options{Port: "0", MCP: mcp}, h)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestPostsAnyMethod(t *testing.T) {
	r := newTestRouter(nil)
	for _, path := range []string{"/posts", "/functions/getPatreonPosts"} {
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code, "%s %s", method, path)
			assert.JSONEq(t, `{"error":"Patreon access token not configured","posts":[]}`, rec.Body.String())
		}
	}
}

func TestMCPMountedOnlyWhenSet(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "mcp")
	})
	rec = httptest.NewRecorder()
	newTestRouter(mcp).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mcp", rec.Body.String())
}

func TestNewServerAddr(t *testing.T) {
	srv := NewServer(Options{Port: "9090"}, handlers.PostsHandler{})
	assert.Equal(t, ":9090", srv.Addr)
	assert.NotNil(t, srv.Handler)
}
