// File path: internal/api/import_handler.go
package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"faqforge/internal/common"
	"faqforge/internal/parser"
)

// maxImportBytes bounds how much of an uploaded legacy document is read.
const maxImportBytes = 32 << 20

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("identity is required"))
		return
	}
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		logger.Warn("api: import form parse failed", "identity", identity, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	force, _ := strconv.ParseBool(r.FormValue("force"))

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("document file required: %w", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("read upload: %w", err))
		return
	}

	parsed, err := parser.Parse(data)
	if err != nil {
		logger.Warn("api: legacy parse failed", "identity", identity, "file", header.Filename, "error", err)
		writeError(w, errorStatus(err), err)
		return
	}
	doc, err := s.engine.ImportLegacy(r.Context(), identity, parsed, force)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	logger.Info("api: legacy document imported", "identity", doc.Identity, "version", doc.Version, "file", header.Filename, "steps", len(doc.Steps), "force", force)
	writeJSON(w, http.StatusOK, importResponse{Identity: doc.Identity, Version: doc.Version, Steps: len(doc.Steps)})
}
