// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"faqforge/internal/assets"
	"faqforge/internal/common"
	"faqforge/internal/faq"
	"faqforge/internal/reconcile"
	"faqforge/internal/render"
	"faqforge/internal/store"
)

// Server exposes the FAQ core over HTTP. Every mutation flows through the
// reconciliation engine; reads come straight from the version store.
type Server struct {
	router   chi.Router
	engine   *reconcile.Engine
	versions *store.Store
	assets   *assets.Store
	renderer *render.Renderer
	provider string
}

func NewServer(engine *reconcile.Engine, versions *store.Store, assetStore *assets.Store, renderer *render.Renderer, providerName string) (*Server, error) {
	if engine == nil || versions == nil || renderer == nil {
		return nil, fmt.Errorf("engine, version store and renderer required")
	}
	srv := &Server{
		router:   chi.NewRouter(),
		engine:   engine,
		versions: versions,
		assets:   assetStore,
		renderer: renderer,
		provider: providerName,
	}
	srv.routes()
	common.Logger().Info("api: server ready", "provider", providerName)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: s.provider})
	})

	s.router.Post("/v1/faqs", s.handleCreate)
	s.router.Post("/v1/faqs/{identity}/edits", s.handleEdit)
	s.router.Post("/v1/faqs/{identity}/import", s.handleImport)
	s.router.Get("/v1/faqs/{identity}", s.handleGet)
	s.router.Get("/v1/faqs/{identity}/versions", s.handleVersions)
	s.router.Get("/v1/faqs/{identity}/render", s.handleRender)
	s.router.Get("/v1/faqs/{identity}/screenshots", s.handleScreenshots)
	s.router.Post("/v1/assets", s.handleAssetUpload)
	s.router.Get("/v1/assets/{ref}", s.handleAssetGet)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, logsResponse{Entries: common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// errorStatus maps the domain sentinel errors onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, faq.ErrNotFound), errors.Is(err, faq.ErrAssetUnavailable):
		return http.StatusNotFound
	case errors.Is(err, faq.ErrIdentityConflict), errors.Is(err, faq.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, faq.ErrUnrecognizedFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, faq.ErrIndexGap):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
