// File path: internal/api/asset_handler.go
package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"faqforge/internal/common"
)

const maxAssetBytes = 16 << 20

func (s *Server) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	if s.assets == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("asset storage not configured"))
		return
	}
	if err := r.ParseMultipartForm(maxAssetBytes); err != nil {
		logger.Warn("api: asset form parse failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("asset file required: %w", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxAssetBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("empty asset"))
		return
	}
	ref, err := s.assets.Put(r.Context(), data, filepath.Ext(header.Filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: asset stored", "ref", ref, "bytes", len(data))
	writeJSON(w, http.StatusCreated, assetResponse{Ref: ref})
}

func (s *Server) handleAssetGet(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("asset storage not configured"))
		return
	}
	ref := strings.TrimSpace(chi.URLParam(r, "ref"))
	data, err := s.assets.Resolve(r.Context(), ref)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	contentType := "image/png"
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
