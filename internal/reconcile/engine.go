// File path: internal/reconcile/engine.go
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"faqforge/internal/common"
	"faqforge/internal/faq"
	"faqforge/internal/parser"
)

const defaultEnhanceConcurrency = 4

// Versions is the slice of the version store the engine depends on.
type Versions interface {
	Put(ctx context.Context, doc faq.Document) error
	Latest(ctx context.Context, identity string) (faq.Document, error)
}

// Enhancer is the adapter boundary. Failures are reported per step through
// EnhancementResult.Err, never as a call error.
type Enhancer interface {
	Enhance(ctx context.Context, question string, step faq.StepRecord) faq.EnhancementResult
}

// StepUpsert replaces the full record at Index. Indices are explicit; the
// engine never renumbers on upsert.
type StepUpsert struct {
	Index         int    `json:"step_index"`
	Query         string `json:"query,omitempty"`
	ScreenshotRef string `json:"screenshot_ref,omitempty"`
	UserText      string `json:"user_text,omitempty"`
}

// Edit is one reconciliation request: metadata changes plus step upserts and
// deletions. Nil metadata pointers leave the prior value untouched.
type Edit struct {
	Question *string      `json:"question,omitempty"`
	Assignee *string      `json:"assignee,omitempty"`
	Summary  *string      `json:"summary,omitempty"`
	Notes    *string      `json:"notes,omitempty"`
	Keywords []string     `json:"keywords,omitempty"`
	Upserts  []StepUpsert `json:"upserts,omitempty"`
	Deletes  []int        `json:"deletes,omitempty"`
}

// Engine merges prior state, user edits and adapter output into new immutable
// document versions.
type Engine struct {
	adapter     Enhancer
	versions    Versions
	concurrency int
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithEnhanceConcurrency bounds the number of in-flight adapter calls per
// reconciliation.
func WithEnhanceConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func NewEngine(adapter Enhancer, versions Versions, opts ...Option) *Engine {
	engine := &Engine{adapter: adapter, versions: versions, concurrency: defaultEnhanceConcurrency}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Create starts a new FAQ. A blank identity is assigned a fresh one; an
// identity that already has versions fails with ErrIdentityConflict.
func (e *Engine) Create(ctx context.Context, identity string, edit Edit) (faq.Document, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		identity = uuid.NewString()
	}
	if _, err := e.versions.Latest(ctx, identity); err == nil {
		return faq.Document{}, fmt.Errorf("create %s: %w", identity, faq.ErrIdentityConflict)
	} else if !errors.Is(err, faq.ErrNotFound) {
		return faq.Document{}, err
	}
	return e.reconcile(ctx, faq.Document{Identity: identity}, edit)
}

// Reconcile applies an edit to the latest version of an existing FAQ and
// publishes the result as version prior+1.
func (e *Engine) Reconcile(ctx context.Context, identity string, edit Edit) (faq.Document, error) {
	prior, err := e.versions.Latest(ctx, identity)
	if err != nil {
		return faq.Document{}, err
	}
	return e.reconcile(ctx, prior, edit)
}

// ImportLegacy merges a parsed legacy document. Importing into an identity
// that already has versions is ambiguous (two sources of truth) and is
// rejected unless the caller forces it; a forced merge keeps user-entered
// steps where they exist and fills the rest from the parsed document.
func (e *Engine) ImportLegacy(ctx context.Context, identity string, parsed parser.Document, force bool) (faq.Document, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		identity = uuid.NewString()
	}
	prior, err := e.versions.Latest(ctx, identity)
	switch {
	case err == nil && !force:
		return faq.Document{}, fmt.Errorf("import into %s: %w", identity, faq.ErrIdentityConflict)
	case errors.Is(err, faq.ErrNotFound):
		prior = faq.Document{Identity: identity}
	case err != nil:
		return faq.Document{}, err
	}

	working := prior.Clone()
	working.Identity = identity
	if working.Question == "" {
		working.Question = parsed.Question
	}
	if working.Summary == "" {
		working.Summary = parsed.Summary
	}
	if working.Notes == "" {
		working.Notes = parsed.Notes
	}
	working.Steps = mergeLegacySteps(working.Steps, parsed.Steps)

	return e.publish(ctx, prior, working)
}

// mergeLegacySteps resolves the legacy-vs-entered conflict per index:
// explicit user input always wins, parsed content fills everything else.
func mergeLegacySteps(existing, parsed []faq.StepRecord) []faq.StepRecord {
	out := append([]faq.StepRecord(nil), existing...)
	for _, step := range parsed {
		if step.Index < len(out) {
			current := out[step.Index]
			if current.Source == faq.SourceUserEntered && strings.TrimSpace(current.UserText) != "" {
				continue
			}
			step.Index = current.Index
			out[step.Index] = step
			continue
		}
		step.Index = len(out)
		out = append(out, step)
	}
	return out
}

func (e *Engine) reconcile(ctx context.Context, prior faq.Document, edit Edit) (faq.Document, error) {
	working := prior.Clone()
	if edit.Question != nil {
		working.Question = strings.TrimSpace(*edit.Question)
	}
	if edit.Assignee != nil {
		working.Assignee = strings.TrimSpace(*edit.Assignee)
	}
	if edit.Summary != nil {
		working.Summary = *edit.Summary
	}
	if edit.Notes != nil {
		working.Notes = *edit.Notes
	}
	if edit.Keywords != nil {
		working.Keywords = normalizeKeywords(edit.Keywords)
	}

	var err error
	for _, upsert := range edit.Upserts {
		record := faq.StepRecord{
			Index:         upsert.Index,
			Query:         strings.TrimSpace(upsert.Query),
			ScreenshotRef: strings.TrimSpace(upsert.ScreenshotRef),
			UserText:      strings.TrimSpace(upsert.UserText),
			Source:        faq.SourceUserEntered,
		}
		// An unchanged base text keeps its enhancement; a changed one
		// invalidates it so stale AI output never survives an edit.
		if existing, ok := working.Step(upsert.Index); ok && existing.UserText == record.UserText {
			record.AIText = existing.AIText
			record.AIConfidence = existing.AIConfidence
			record.EnhancementPending = existing.EnhancementPending
		}
		working.Steps, err = faq.UpsertStep(working.Steps, record)
		if err != nil {
			return faq.Document{}, err
		}
	}

	// Deletions renumber atomically with the merge. Indices refer to the
	// pre-delete sequence, so they are applied highest first.
	deletes := append([]int(nil), edit.Deletes...)
	sort.Sort(sort.Reverse(sort.IntSlice(deletes)))
	for _, index := range deletes {
		working.Steps, err = faq.DeleteStep(working.Steps, index)
		if err != nil {
			return faq.Document{}, err
		}
	}

	return e.publish(ctx, prior, working)
}

// publish runs outstanding enhancements and stores the result as the next
// version. Adapter calls for distinct steps run concurrently; the new version
// becomes visible only after every call has settled, so readers never observe
// a partially enhanced snapshot.
func (e *Engine) publish(ctx context.Context, prior, working faq.Document) (faq.Document, error) {
	logger := common.Logger()
	if err := faq.ValidateSteps(working.Steps); err != nil {
		return faq.Document{}, err
	}

	var pendingIdx []int
	for i, step := range working.Steps {
		if step.UserText != "" && step.AIText == "" {
			pendingIdx = append(pendingIdx, i)
		}
	}
	if len(pendingIdx) > 0 && e.adapter != nil {
		var mu sync.Mutex
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(e.concurrency)
		for _, i := range pendingIdx {
			i := i
			step := working.Steps[i]
			group.Go(func() error {
				result := e.adapter.Enhance(groupCtx, working.Question, step)
				mu.Lock()
				defer mu.Unlock()
				if result.Err != nil {
					working.Steps[i].EnhancementPending = true
					return nil
				}
				working.Steps[i].AIText = result.EnhancedText
				working.Steps[i].AIConfidence = result.Confidence
				working.Steps[i].EnhancementPending = false
				return nil
			})
		}
		// Adapter failures degrade to pending steps; only cancellation
		// aborts the reconciliation.
		_ = group.Wait()
		if err := ctx.Err(); err != nil {
			return faq.Document{}, err
		}
	}

	working.Version = prior.Version + 1
	working.CreatedAt = time.Now().UTC()
	working.RenderedVariants = nil
	if err := e.versions.Put(ctx, working); err != nil {
		return faq.Document{}, err
	}

	pending := 0
	for _, step := range working.Steps {
		if step.EnhancementPending {
			pending++
		}
	}
	logger.Info("reconcile: version published",
		"identity", working.Identity,
		"version", working.Version,
		"steps", len(working.Steps),
		"enhanced", len(pendingIdx)-pending,
		"pending", pending,
	)
	return working, nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
