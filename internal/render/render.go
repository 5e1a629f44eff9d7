// File path: internal/render/render.go
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	docx "github.com/fumiama/go-docx"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

const assetPlaceholder = "[screenshot unavailable]"

// AssetResolver turns an opaque screenshot reference into image bytes.
type AssetResolver interface {
	Resolve(ctx context.Context, ref string) ([]byte, error)
}

// Renderer serializes a document snapshot into DOCX bytes. Rendering is
// deterministic for a given snapshot and variant; a failed screenshot lookup
// degrades to a placeholder paragraph instead of failing the render.
type Renderer struct {
	assets AssetResolver
}

func New(assets AssetResolver) *Renderer {
	return &Renderer{assets: assets}
}

// Render produces the DOCX bytes for one variant of the document.
func (r *Renderer) Render(ctx context.Context, doc faq.Document, variant faq.Variant) ([]byte, error) {
	logger := common.Logger()
	blocks, err := layout(doc, variant)
	if err != nil {
		return nil, fmt.Errorf("layout document: %w", err)
	}

	file := docx.New().WithDefaultTheme()
	var scratch string
	for _, b := range blocks {
		switch b.kind {
		case blockHeading:
			file.AddParagraph().AddText(b.text).Size("36")
		case blockLabel:
			file.AddParagraph().AddText(b.text).Size("26")
		case blockText:
			file.AddParagraph().AddText(b.text)
		case blockImage:
			if err := r.addImage(ctx, file, b.ref, &scratch); err != nil {
				logger.Warn("render: screenshot unavailable", "identity", doc.Identity, "ref", b.ref, "error", err)
				file.AddParagraph().AddText(assetPlaceholder)
			}
		}
	}
	if scratch != "" {
		defer os.RemoveAll(scratch)
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	logger.Debug("render: document rendered", "identity", doc.Identity, "version", doc.Version, "variant", variant, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// addImage resolves the asset and embeds it. The docx writer reads images
// from disk, so resolved bytes are staged in a per-render scratch directory.
func (r *Renderer) addImage(ctx context.Context, file *docx.Docx, ref string, scratch *string) error {
	if r.assets == nil {
		return fmt.Errorf("no asset resolver: %w", faq.ErrAssetUnavailable)
	}
	data, err := r.assets.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	if *scratch == "" {
		dir, err := os.MkdirTemp("", "faqforge-render-")
		if err != nil {
			return fmt.Errorf("create scratch dir: %w", err)
		}
		*scratch = dir
	}
	path := filepath.Join(*scratch, filepath.Base(ref))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("stage image: %w", err)
	}
	if _, err := file.AddParagraph().AddInlineDrawingFrom(path); err != nil {
		return fmt.Errorf("embed image: %w", err)
	}
	return nil
}
