package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"patreon-gateway/internal/types"
)

func TestPostsHandlerSuccess(t *testing.T) {
	img := "https://example.com/a.jpg"
	h := PostsHandler{Posts: func(context.Context) types.Envelope {
		return types.OK([]types.PostSummary{{ID: "p1", Title: "Hello", URL: "https://www.patreon.com/posts/p1", Image: &img}})
	}}

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodOptions} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(method, "/posts", nil))

		assert.Equal(t, http.StatusOK, rec.Code, method)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"posts":[{"id":"p1","title":"Hello","published_at":null,"url":"https://www.patreon.com/posts/p1","image":"https://example.com/a.jpg"}]}`, rec.Body.String())
	}
}

func TestPostsHandlerErrorEnvelope(t *testing.T) {
	details := "unauthorized"
	h := PostsHandler{Posts: func(context.Context) types.Envelope {
		return types.Failed("Identity API failed: 401", &details)
	}}

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"Identity API failed: 401","details":"unauthorized","posts":[]}`, rec.Body.String())
}
