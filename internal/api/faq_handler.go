// File path: internal/api/faq_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"faqforge/internal/common"
	"faqforge/internal/reconcile"
)

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: create decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := s.engine.Create(r.Context(), req.Identity, req.Edit)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	logger.Info("api: faq created", "identity", doc.Identity, "version", doc.Version, "steps", len(doc.Steps))
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("identity is required"))
		return
	}
	var edit reconcile.Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		logger.Warn("api: edit decode failed", "identity", identity, "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := s.engine.Reconcile(r.Context(), identity, edit)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	logger.Info("api: faq edited", "identity", identity, "version", doc.Version, "upserts", len(edit.Upserts), "deletes", len(edit.Deletes))
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("identity is required"))
		return
	}
	version, err := parseVersion(r.URL.Query().Get("version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := s.versions.Get(r.Context(), identity, version)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("identity is required"))
		return
	}
	infos, err := s.versions.Versions(r.Context(), identity)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, versionsResponse{Identity: identity, Versions: infos})
}

// parseVersion interprets the optional version query parameter; zero selects
// the latest version.
func parseVersion(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	version, err := strconv.Atoi(raw)
	if err != nil || version < 0 {
		return 0, fmt.Errorf("invalid version %q", raw)
	}
	return version, nil
}
