// File path: internal/parser/scan.go
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"faqforge/internal/faq"
)

// Document is the structured result of parsing a legacy FAQ document. Every
// step carries source=parsed_legacy so downstream consumers know the fields
// were inferred from prose rather than entered through the API.
type Document struct {
	Question string
	Summary  string
	Notes    string
	Steps    []faq.StepRecord
}

type section int

const (
	sectionNone section = iota
	sectionQuestion
	sectionSummary
	sectionSteps
	sectionNotes
)

var stepMarker = regexp.MustCompile(`^\[?step\s*(\d+)\s*[\]:.\-]*\s*`)

// ScanParagraphs reconstructs a Document from the plain paragraph texts of a
// legacy file. Detection is all-or-nothing: when none of the expected section
// markers appear the whole parse fails with ErrUnrecognizedFormat instead of
// guessing field boundaries.
func ScanParagraphs(paragraphs []string) (Document, error) {
	var doc Document
	current := sectionNone
	sawMarker := false

	for _, raw := range paragraphs {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)

		switch headingKind(lower) {
		case "question":
			current = sectionQuestion
			sawMarker = true
			continue
		case "summary":
			current = sectionSummary
			sawMarker = true
			continue
		case "steps":
			current = sectionSteps
			sawMarker = true
			continue
		case "notes":
			current = sectionNotes
			sawMarker = true
			continue
		case "query":
			if last := lastStep(&doc); last != nil {
				last.Query = joinText(last.Query, trailingValue(text))
			}
			continue
		case "screenshot":
			if last := lastStep(&doc); last != nil {
				if ref := trailingValue(text); ref != "" {
					last.ScreenshotRef = ref
				}
			}
			continue
		}

		if loc := stepMarker.FindStringIndex(lower); loc != nil {
			sawMarker = true
			current = sectionSteps
			doc.Steps = append(doc.Steps, faq.StepRecord{
				Index:    len(doc.Steps),
				UserText: strings.TrimSpace(text[loc[1]:]),
				Source:   faq.SourceParsedLegacy,
			})
			continue
		}

		switch current {
		case sectionQuestion:
			doc.Question = joinText(doc.Question, text)
		case sectionSummary:
			doc.Summary = joinText(doc.Summary, text)
		case sectionSteps:
			if last := lastStep(&doc); last != nil {
				last.UserText = joinText(last.UserText, text)
			}
		case sectionNotes:
			doc.Notes = joinText(doc.Notes, text)
		}
	}

	if !sawMarker {
		return Document{}, fmt.Errorf("no section markers found: %w", faq.ErrUnrecognizedFormat)
	}
	return doc, nil
}

// headingKind classifies a paragraph as a section heading. Headings may be
// bare ("Summary"), bracketed ("[Summary]") or suffixed with a colon; step
// markers are handled separately because they carry an ordinal.
func headingKind(lower string) string {
	normalized := strings.Trim(lower, "[]:- \t")
	switch normalized {
	case "question":
		return "question"
	case "summary":
		return "summary"
	case "steps":
		return "steps"
	case "additional notes", "notes", "note":
		return "notes"
	case "query template", "query":
		return "query"
	case "screenshot":
		return "screenshot"
	}
	switch {
	case strings.HasPrefix(normalized, "query template:"), strings.HasPrefix(normalized, "query:"):
		return "query"
	case strings.HasPrefix(normalized, "screenshot"):
		return "screenshot"
	}
	return ""
}

func lastStep(doc *Document) *faq.StepRecord {
	if len(doc.Steps) == 0 {
		return nil
	}
	return &doc.Steps[len(doc.Steps)-1]
}

// trailingValue returns the text after the first colon, for inline forms like
// "Query Template: SELECT ...".
func trailingValue(text string) string {
	if idx := strings.Index(text, ":"); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return ""
}

func joinText(existing, addition string) string {
	if existing == "" {
		return addition
	}
	if addition == "" {
		return existing
	}
	return existing + " " + addition
}
