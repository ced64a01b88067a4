package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"patreon-gateway/internal/types"
)

// PostsHandler serves the recent-posts envelope on any method.
type PostsHandler struct {
	Posts func(ctx context.Context) types.Envelope
}

// Handle always answers 200; failures travel in the envelope's error field.
func (h PostsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	env := h.Posts(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.WithError(err).Warn("failed to write posts response")
	}
}
