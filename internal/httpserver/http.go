package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"patreon-gateway/internal/handlers"
)

// Options controls what NewServer mounts.
type Options struct {
	Port string
	// MCP is mounted at /mcp when non-nil.
	MCP http.Handler
}

// NewServer creates the HTTP server with health, posts and optional MCP
// endpoints.
func NewServer(o Options, h handlers.PostsHandler) *http.Server {
	return &http.Server{
		Addr:              ":" + o.Port,
		Handler:           NewRouter(o, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(o Options, h handlers.PostsHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Method-agnostic, like the serverless function it replaces.
	r.HandleFunc("/posts", h.Handle)
	r.HandleFunc("/functions/getPatreonPosts", h.Handle)

	if o.MCP != nil {
		r.Handle("/mcp", o.MCP)
	}

	return r
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
			"remote":     r.RemoteAddr,
		}).Info("request")
	})
}
