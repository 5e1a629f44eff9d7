// File path: internal/api/screenshots_handler.go
package api

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

// handleScreenshots bundles every screenshot of one version into a zip with
// one Step{N}_screenshot entry per step, the companion archive a rendered
// document ships with. Unresolvable references are skipped so one lost asset
// does not block the rest of the bundle.
func (s *Server) handleScreenshots(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("identity is required"))
		return
	}
	if s.assets == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("asset storage not configured"))
		return
	}
	version, err := parseVersion(r.URL.Query().Get("version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := s.versions.Get(ctx, identity, version)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	steps, err := faq.Ordered(doc.Steps)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	var bundled int
	for _, step := range steps {
		if step.ScreenshotRef == "" {
			continue
		}
		data, err := s.assets.Resolve(ctx, step.ScreenshotRef)
		if err != nil {
			logger.Warn("api: screenshot skipped", "identity", identity, "step", step.Index, "ref", step.ScreenshotRef, "error", err)
			continue
		}
		entry, err := archive.Create(fmt.Sprintf("Step%d_screenshot%s", step.Index+1, screenshotExt(step.ScreenshotRef)))
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Errorf("create archive entry: %w", err))
			return
		}
		if _, err := entry.Write(data); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Errorf("write archive entry: %w", err))
			return
		}
		bundled++
	}
	if err := archive.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("close archive: %w", err))
		return
	}
	if bundled == 0 {
		writeError(w, http.StatusNotFound, fmt.Errorf("identity %s version %d has no screenshots: %w", identity, doc.Version, faq.ErrNotFound))
		return
	}

	logger.Info("api: screenshots bundled", "identity", identity, "version", doc.Version, "screenshots", bundled)
	filename := fmt.Sprintf("%s-v%d-screenshots.zip", identity, doc.Version)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func screenshotExt(ref string) string {
	if ext := strings.ToLower(filepath.Ext(ref)); ext != "" {
		return ext
	}
	return ".png"
}
