// File path: internal/faq/steps.go
package faq

import (
	"fmt"
	"sort"
)

// UpsertStep inserts or replaces the record at step.Index and returns the
// updated sequence. Indices must stay contiguous from zero, so the only legal
// insert position is exactly one past the current end; anything further
// fails with ErrIndexGap. Callers supply explicit indices; nothing is ever
// renumbered implicitly.
func UpsertStep(steps []StepRecord, step StepRecord) ([]StepRecord, error) {
	if step.Index < 0 {
		return nil, fmt.Errorf("upsert step %d: %w", step.Index, ErrIndexGap)
	}
	if step.Index > len(steps) {
		return nil, fmt.Errorf("upsert step %d with %d existing steps: %w", step.Index, len(steps), ErrIndexGap)
	}
	out := append([]StepRecord(nil), steps...)
	if step.Index == len(out) {
		out = append(out, step)
		return out, nil
	}
	out[step.Index] = step
	return out, nil
}

// DeleteStep removes the record at index and shifts every subsequent index
// down by one, closing the gap atomically with the removal.
func DeleteStep(steps []StepRecord, index int) ([]StepRecord, error) {
	if index < 0 || index >= len(steps) {
		return nil, fmt.Errorf("delete step %d of %d: %w", index, len(steps), ErrNotFound)
	}
	out := make([]StepRecord, 0, len(steps)-1)
	out = append(out, steps[:index]...)
	for _, step := range steps[index+1:] {
		step.Index--
		out = append(out, step)
	}
	return out, nil
}

// Ordered returns a copy of the sequence sorted by index after checking the
// contiguity invariant. The copy is safe to iterate repeatedly for rendering
// or diffing.
func Ordered(steps []StepRecord) ([]StepRecord, error) {
	out := append([]StepRecord(nil), steps...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	if err := ValidateSteps(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateSteps verifies that indices are unique and contiguous from zero.
// The sequence must already be sorted by index.
func ValidateSteps(steps []StepRecord) error {
	for i, step := range steps {
		if step.Index != i {
			return fmt.Errorf("step at position %d has index %d: %w", i, step.Index, ErrIndexGap)
		}
	}
	return nil
}
