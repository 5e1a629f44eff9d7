// File path: internal/faq/types.go
package faq

import "time"

// Source identifies where the base text of a step came from.
type Source string

const (
	SourceUserEntered Source = "user_entered"
	SourceParsedLegacy Source = "parsed_legacy"
	SourceAIGenerated  Source = "ai_generated"
)

// Variant selects which flavour of the document is rendered.
type Variant string

const (
	VariantUser       Variant = "user"
	VariantAIEnhanced Variant = "ai_enhanced"
)

// ParseVariant maps a request string onto a Variant.
func ParseVariant(value string) (Variant, bool) {
	switch Variant(value) {
	case VariantUser:
		return VariantUser, true
	case VariantAIEnhanced:
		return VariantAIEnhanced, true
	}
	return "", false
}

// StepRecord is one instruction step in a FAQ. UserText and AIText are kept
// side by side; Source tracks the origin of the base text, never of the
// enhancement.
type StepRecord struct {
	Index         int     `json:"step_index"`
	Query         string  `json:"query,omitempty"`
	ScreenshotRef string  `json:"screenshot_ref,omitempty"`
	UserText      string  `json:"user_text,omitempty"`
	AIText        string  `json:"ai_text,omitempty"`
	AIConfidence  float64 `json:"ai_confidence,omitempty"`
	Source        Source  `json:"source"`

	// EnhancementPending marks a step whose adapter call failed during the
	// last reconciliation. The step still renders; AI_ENHANCED output shows
	// a pending placeholder when no earlier enhancement exists.
	EnhancementPending bool `json:"enhancement_pending,omitempty"`
}

// Document is one immutable version of a FAQ. A version N row is never
// mutated once version N+1 exists; every reconciliation produces a new value.
type Document struct {
	Identity  string       `json:"identity"`
	Version   int          `json:"version"`
	Question  string       `json:"question,omitempty"`
	Assignee  string       `json:"assignee,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	Keywords  []string     `json:"keywords,omitempty"`
	Steps     []StepRecord `json:"steps"`
	CreatedAt time.Time    `json:"created_at"`

	// RenderedVariants lists the variants with a stored render for this
	// version. Populated by the version store, not part of the payload.
	RenderedVariants []Variant `json:"rendered_variants,omitempty"`
}

// Clone returns a deep copy so callers can mutate freely without touching a
// snapshot handed out by the store.
func (d Document) Clone() Document {
	out := d
	if len(d.Keywords) > 0 {
		out.Keywords = append([]string(nil), d.Keywords...)
	}
	if len(d.Steps) > 0 {
		out.Steps = append([]StepRecord(nil), d.Steps...)
	}
	if len(d.RenderedVariants) > 0 {
		out.RenderedVariants = append([]Variant(nil), d.RenderedVariants...)
	}
	return out
}

// Step returns the record at the given index, if present.
func (d Document) Step(index int) (StepRecord, bool) {
	if index < 0 || index >= len(d.Steps) {
		return StepRecord{}, false
	}
	return d.Steps[index], true
}

// EnhancementResult is the ephemeral output of one adapter call. It is
// consumed by the reconciliation engine and never persisted on its own.
type EnhancementResult struct {
	StepIndex    int     `json:"step_index"`
	EnhancedText string  `json:"enhanced_text"`
	Confidence   float64 `json:"confidence"`
	Err          error   `json:"-"`
}
