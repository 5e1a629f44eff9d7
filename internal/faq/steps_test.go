// File path: internal/faq/steps_test.go
package faq

import (
	"errors"
	"testing"
)

func seq(n int) []StepRecord {
	steps := make([]StepRecord, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, StepRecord{Index: i, UserText: "step", Source: SourceUserEntered})
	}
	return steps
}

func TestUpsertStepAppendsAtNextIndex(t *testing.T) {
	steps := seq(2)
	updated, err := UpsertStep(steps, StepRecord{Index: 2, UserText: "new", Source: SourceUserEntered})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(updated) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(updated))
	}
	if updated[2].UserText != "new" {
		t.Fatalf("unexpected appended step: %+v", updated[2])
	}
	if len(steps) != 2 {
		t.Fatalf("input slice mutated: %d steps", len(steps))
	}
}

func TestUpsertStepReplacesInPlace(t *testing.T) {
	steps := seq(3)
	updated, err := UpsertStep(steps, StepRecord{Index: 1, UserText: "replaced", Source: SourceUserEntered})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if updated[1].UserText != "replaced" {
		t.Fatalf("expected replacement at index 1, got %+v", updated[1])
	}
	if steps[1].UserText != "step" {
		t.Fatalf("original slice mutated: %+v", steps[1])
	}
}

func TestUpsertStepRejectsGaps(t *testing.T) {
	steps := seq(2)
	if _, err := UpsertStep(steps, StepRecord{Index: 5}); !errors.Is(err, ErrIndexGap) {
		t.Fatalf("expected ErrIndexGap, got %v", err)
	}
	if _, err := UpsertStep(steps, StepRecord{Index: -1}); !errors.Is(err, ErrIndexGap) {
		t.Fatalf("expected ErrIndexGap for negative index, got %v", err)
	}
}

func TestDeleteStepRenumbersRemainder(t *testing.T) {
	steps := seq(4)
	for i := range steps {
		steps[i].UserText = string(rune('a' + i))
	}
	updated, err := DeleteStep(steps, 2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(updated) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(updated))
	}
	want := []string{"a", "b", "d"}
	for i, step := range updated {
		if step.Index != i {
			t.Fatalf("step %d has index %d", i, step.Index)
		}
		if step.UserText != want[i] {
			t.Fatalf("step %d text %q, want %q", i, step.UserText, want[i])
		}
	}
	if err := ValidateSteps(updated); err != nil {
		t.Fatalf("validate after delete: %v", err)
	}
}

func TestDeleteStepOutOfRange(t *testing.T) {
	if _, err := DeleteStep(seq(2), 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderedSortsAndValidates(t *testing.T) {
	steps := []StepRecord{{Index: 1, UserText: "b"}, {Index: 0, UserText: "a"}}
	ordered, err := Ordered(steps)
	if err != nil {
		t.Fatalf("ordered: %v", err)
	}
	if ordered[0].UserText != "a" || ordered[1].UserText != "b" {
		t.Fatalf("unexpected order: %+v", ordered)
	}
	if _, err := Ordered([]StepRecord{{Index: 0}, {Index: 2}}); !errors.Is(err, ErrIndexGap) {
		t.Fatalf("expected ErrIndexGap, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := Document{
		Identity: "faq-1",
		Version:  1,
		Keywords: []string{"export"},
		Steps:    seq(2),
	}
	clone := doc.Clone()
	clone.Steps[0].UserText = "changed"
	clone.Keywords[0] = "changed"
	if doc.Steps[0].UserText != "step" {
		t.Fatalf("clone shares step backing array")
	}
	if doc.Keywords[0] != "export" {
		t.Fatalf("clone shares keyword backing array")
	}
}

func TestTextFingerprintTracksContentNotIndex(t *testing.T) {
	a := TextFingerprint("How do I export?", "click save")
	b := TextFingerprint("How do I export?", "click save")
	if a != b {
		t.Fatalf("fingerprint not stable: %s vs %s", a, b)
	}
	if a == TextFingerprint("How do I export?", "click export") {
		t.Fatalf("fingerprint ignores text change")
	}
}
