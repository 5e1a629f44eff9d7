// File path: internal/parser/scan_test.go
package parser

import (
	"errors"
	"testing"

	"faqforge/internal/faq"
)

func TestScanParagraphsRebuildsSections(t *testing.T) {
	paragraphs := []string{
		"FAQ Document",
		"[Question]",
		"How do I export a report?",
		"[Summary]",
		"Exporting reports",
		"from the dashboard.",
		"[Step 1]",
		"Open the reporting tab.",
		"[Query Template]",
		"Query Template: SELECT * FROM reports",
		"[Step 2]",
		"Click export",
		"and wait for the download.",
		"[Additional Notes]",
		"Only admins can export.",
	}
	doc, err := ScanParagraphs(paragraphs)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if doc.Question != "How do I export a report?" {
		t.Fatalf("unexpected question: %q", doc.Question)
	}
	if doc.Summary != "Exporting reports from the dashboard." {
		t.Fatalf("unexpected summary: %q", doc.Summary)
	}
	if doc.Notes != "Only admins can export." {
		t.Fatalf("unexpected notes: %q", doc.Notes)
	}
	if len(doc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
	}
	if doc.Steps[0].UserText != "Open the reporting tab." {
		t.Fatalf("unexpected step 0 text: %q", doc.Steps[0].UserText)
	}
	if doc.Steps[0].Query != "SELECT * FROM reports" {
		t.Fatalf("unexpected step 0 query: %q", doc.Steps[0].Query)
	}
	if doc.Steps[1].UserText != "Click export and wait for the download." {
		t.Fatalf("unexpected step 1 text: %q", doc.Steps[1].UserText)
	}
	for i, step := range doc.Steps {
		if step.Index != i {
			t.Fatalf("step %d has index %d", i, step.Index)
		}
		if step.Source != faq.SourceParsedLegacy {
			t.Fatalf("step %d source %q", i, step.Source)
		}
	}
}

func TestScanParagraphsInlineStepMarkers(t *testing.T) {
	paragraphs := []string{
		"Summary",
		"Reset flow.",
		"Step 1: Open settings",
		"Step 2 - Choose security",
	}
	doc, err := ScanParagraphs(paragraphs)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(doc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
	}
	if doc.Steps[0].UserText != "Open settings" {
		t.Fatalf("marker not stripped: %q", doc.Steps[0].UserText)
	}
	if doc.Steps[1].UserText != "Choose security" {
		t.Fatalf("marker not stripped: %q", doc.Steps[1].UserText)
	}
}

func TestScanParagraphsCapturesScreenshotRef(t *testing.T) {
	paragraphs := []string{
		"Step 1: Open settings",
		"Screenshot: Step1_screenshot.png",
	}
	doc, err := ScanParagraphs(paragraphs)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if doc.Steps[0].ScreenshotRef != "Step1_screenshot.png" {
		t.Fatalf("unexpected screenshot ref: %q", doc.Steps[0].ScreenshotRef)
	}
}

func TestScanParagraphsRejectsUnstructuredText(t *testing.T) {
	paragraphs := []string{
		"This file is a meeting transcript.",
		"Nothing in here looks like an FAQ.",
	}
	if _, err := ScanParagraphs(paragraphs); !errors.Is(err, faq.ErrUnrecognizedFormat) {
		t.Fatalf("expected ErrUnrecognizedFormat, got %v", err)
	}
}

func TestParseRejectsEmptyBytes(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, faq.ErrUnrecognizedFormat) {
		t.Fatalf("expected ErrUnrecognizedFormat, got %v", err)
	}
}
