// File path: internal/enhance/prompt.go
package enhance

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemInstruction = "You are an expert technical documentation assistant."

// buildPrompt produces the review prompt for one step. The shape follows the
// step-validation prompt used by the FAQ tooling this service replaces, with
// a strict JSON response contract so confidence can be extracted.
func buildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following step for the FAQ question: %q.\n\n", req.Question)
	b.WriteString("1. Check whether the step helps address the question.\n")
	b.WriteString("2. Fix unclear wording and add missing detail.\n")
	b.WriteString("3. Return a cleaned and improved version of the step.\n\n")
	fmt.Fprintf(&b, "Step:\n%s\n\n", req.StepText)
	b.WriteString(`Respond with a single JSON object: {"enhanced_text": "...", "confidence": 0.0-1.0}`)
	return b.String()
}

type modelPayload struct {
	EnhancedText string  `json:"enhanced_text"`
	Confidence   float64 `json:"confidence"`
}

// parseModelResponse decodes the provider output. Models occasionally wrap
// JSON in markdown fences or answer in prose; prose is kept verbatim as the
// enhanced text with a neutral confidence.
func parseModelResponse(raw string) Response {
	text := strings.TrimSpace(raw)
	candidate := stripFences(text)
	var payload modelPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err == nil && strings.TrimSpace(payload.EnhancedText) != "" {
		return Response{
			EnhancedText: strings.TrimSpace(payload.EnhancedText),
			Confidence:   clampConfidence(payload.Confidence),
		}
	}
	return Response{EnhancedText: text, Confidence: 0.5}
}

func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func clampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
