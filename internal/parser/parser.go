// File path: internal/parser/parser.go
package parser

import (
	"bytes"
	"fmt"

	docx "github.com/fumiama/go-docx"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

// Parse extracts a legacy FAQ structure from raw .docx bytes. The parse is
// best-effort but all-or-nothing per document: a file that cannot be opened
// or that carries no recognizable section markers fails outright rather than
// producing a partial result that would corrupt a downstream merge.
func Parse(data []byte) (Document, error) {
	logger := common.Logger()
	if len(data) == 0 {
		return Document{}, fmt.Errorf("empty document: %w", faq.ErrUnrecognizedFormat)
	}
	file, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Warn("parser: docx open failed", "error", err)
		return Document{}, fmt.Errorf("open docx: %w", faq.ErrUnrecognizedFormat)
	}
	paragraphs := make([]string, 0, len(file.Document.Body.Items))
	for _, item := range file.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paragraphs = append(paragraphs, para.String())
	}
	doc, err := ScanParagraphs(paragraphs)
	if err != nil {
		logger.Warn("parser: scan failed", "paragraphs", len(paragraphs), "error", err)
		return Document{}, err
	}
	logger.Info("parser: legacy document parsed", "steps", len(doc.Steps), "summary", doc.Summary != "", "notes", doc.Notes != "")
	return doc, nil
}
