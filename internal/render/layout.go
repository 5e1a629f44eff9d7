// File path: internal/render/layout.go
package render

import (
	"fmt"

	"faqforge/internal/faq"
)

// pendingPlaceholder is rendered for steps whose enhancement has not arrived
// yet. AI_ENHANCED output never omits a step.
const pendingPlaceholder = "(enhancement pending)"

type blockKind int

const (
	blockHeading blockKind = iota
	blockLabel
	blockText
	blockImage
)

// block is one paragraph-level element of the rendered document. The layout
// is computed separately from DOCX serialization so variant rules can be
// verified without unpacking OOXML.
type block struct {
	kind blockKind
	text string
	ref  string
}

// layout flattens a document snapshot into ordered blocks. The section
// labels mirror the generated FAQ format this service replaces: [Question],
// [Summary], [Step N], [Query Template], [Screenshot], [Additional Notes].
func layout(doc faq.Document, variant faq.Variant) ([]block, error) {
	steps, err := faq.Ordered(doc.Steps)
	if err != nil {
		return nil, err
	}
	blocks := []block{
		{kind: blockHeading, text: "FAQ Document"},
		{kind: blockLabel, text: "[Question]"},
	}
	if doc.Question != "" {
		blocks = append(blocks, block{kind: blockText, text: doc.Question})
	}
	blocks = append(blocks, block{kind: blockLabel, text: "[Summary]"})
	if doc.Summary != "" {
		blocks = append(blocks, block{kind: blockText, text: doc.Summary})
	}
	blocks = append(blocks, block{kind: blockLabel, text: "[Steps]"})
	for _, step := range steps {
		blocks = append(blocks, block{kind: blockLabel, text: fmt.Sprintf("[Step %d]", step.Index+1)})
		if text, ok := stepText(step, variant); ok {
			blocks = append(blocks, block{kind: blockText, text: text})
		}
		if step.Query != "" {
			blocks = append(blocks,
				block{kind: blockLabel, text: "[Query Template]"},
				block{kind: blockText, text: step.Query},
			)
		}
		if step.ScreenshotRef != "" {
			blocks = append(blocks,
				block{kind: blockLabel, text: "[Screenshot]"},
				block{kind: blockImage, ref: step.ScreenshotRef},
			)
		}
	}
	blocks = append(blocks, block{kind: blockLabel, text: "[Additional Notes]"})
	if doc.Notes != "" {
		blocks = append(blocks, block{kind: blockText, text: doc.Notes})
	}
	return blocks, nil
}

// stepText selects the body text for one step under the given variant. The
// user variant never falls back to AI output, so the as-entered artifact can
// never silently contain generated text. The AI variant prefers the
// enhancement, falls back to the user text, and finally renders a pending
// marker rather than dropping the step.
func stepText(step faq.StepRecord, variant faq.Variant) (string, bool) {
	switch variant {
	case faq.VariantUser:
		if step.UserText == "" {
			return "", false
		}
		return step.UserText, true
	case faq.VariantAIEnhanced:
		if step.AIText != "" {
			return step.AIText, true
		}
		if step.UserText != "" {
			return step.UserText, true
		}
		return pendingPlaceholder, true
	}
	return "", false
}
