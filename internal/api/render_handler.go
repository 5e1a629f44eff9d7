// File path: internal/api/render_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handleRender serves the DOCX export of one version variant. Rendering is
// deterministic per snapshot, so the bytes are stored on first render and
// served from the version store afterwards.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("identity is required"))
		return
	}
	variantParam := strings.TrimSpace(r.URL.Query().Get("variant"))
	if variantParam == "" {
		variantParam = string(faq.VariantUser)
	}
	variant, ok := faq.ParseVariant(variantParam)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown variant %q", variantParam))
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

	data, err := s.versions.GetRender(ctx, identity, doc.Version, variant)
	if errors.Is(err, faq.ErrNotFound) {
		data, err = s.renderer.Render(ctx, doc, variant)
		if err == nil {
			if putErr := s.versions.PutRender(ctx, identity, doc.Version, variant, data); putErr != nil {
				logger.Warn("api: render cache write failed", "identity", identity, "version", doc.Version, "variant", variant, "error", putErr)
			}
		}
	}
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	filename := fmt.Sprintf("%s-v%d-%s.docx", identity, doc.Version, variant)
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
