// File path: internal/store/versions.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

// VersionInfo summarises one stored version for listings.
type VersionInfo struct {
	Version          int           `json:"version"`
	CreatedAt        time.Time     `json:"created_at"`
	RenderedVariants []faq.Variant `json:"rendered_variants,omitempty"`
}

// Put persists a new document version. The write succeeds only when
// doc.Version extends the identity's current head by exactly one; anything
// else fails with faq.ErrVersionConflict and leaves the history untouched.
func (s *Store) Put(ctx context.Context, doc faq.Document) error {
	if s == nil || s.db == nil {
		return errors.New("version store not initialised")
	}
	identity := strings.TrimSpace(doc.Identity)
	if identity == "" {
		return errors.New("document identity required")
	}
	if doc.Version <= 0 {
		return fmt.Errorf("document version %d: %w", doc.Version, faq.ErrVersionConflict)
	}
	doc.RenderedVariants = nil
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	lock := s.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer tx.Rollback()

	var head int
	if err := tx.GetContext(ctx, &head, `SELECT COALESCE(MAX(version), 0) FROM faq_versions WHERE identity = ?`, identity); err != nil {
		return fmt.Errorf("read head version: %w", err)
	}
	if doc.Version != head+1 {
		return fmt.Errorf("identity %s head %d, put %d: %w", identity, head, doc.Version, faq.ErrVersionConflict)
	}
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO faq_versions(identity, version, payload, created_at) VALUES (?, ?, ?, ?)`,
		identity, doc.Version, string(payload), createdAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	common.Logger().Info("store: version persisted", "identity", identity, "version", doc.Version, "steps", len(doc.Steps))
	return nil
}

// Get returns the requested version, or the latest when version is zero. The
// returned document is decoded from the stored payload, so callers always
// receive an independent copy.
func (s *Store) Get(ctx context.Context, identity string, version int) (faq.Document, error) {
	if s == nil || s.db == nil {
		return faq.Document{}, errors.New("version store not initialised")
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return faq.Document{}, errors.New("document identity required")
	}
	var row struct {
		Payload   string    `db:"payload"`
		CreatedAt time.Time `db:"created_at"`
	}
	var err error
	if version > 0 {
		err = s.db.GetContext(ctx, &row,
			`SELECT payload, created_at FROM faq_versions WHERE identity = ? AND version = ?`, identity, version)
	} else {
		err = s.db.GetContext(ctx, &row,
			`SELECT payload, created_at FROM faq_versions WHERE identity = ? ORDER BY version DESC LIMIT 1`, identity)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if version > 0 {
				return faq.Document{}, fmt.Errorf("identity %s version %d: %w", identity, version, faq.ErrNotFound)
			}
			return faq.Document{}, fmt.Errorf("identity %s has no versions: %w", identity, faq.ErrNotFound)
		}
		return faq.Document{}, fmt.Errorf("query version: %w", err)
	}
	var doc faq.Document
	if err := json.Unmarshal([]byte(row.Payload), &doc); err != nil {
		return faq.Document{}, fmt.Errorf("decode document: %w", err)
	}
	variants, err := s.renderedVariants(ctx, identity, doc.Version)
	if err != nil {
		return faq.Document{}, err
	}
	doc.RenderedVariants = variants
	return doc, nil
}

// Latest returns the newest version for an identity.
func (s *Store) Latest(ctx context.Context, identity string) (faq.Document, error) {
	return s.Get(ctx, identity, 0)
}

// Versions lists all stored versions for an identity, oldest first.
func (s *Store) Versions(ctx context.Context, identity string) ([]VersionInfo, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("version store not initialised")
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, errors.New("document identity required")
	}
	rows := []struct {
		Version   int       `db:"version"`
		CreatedAt time.Time `db:"created_at"`
	}{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT version, created_at FROM faq_versions WHERE identity = ? ORDER BY version`, identity); err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("identity %s: %w", identity, faq.ErrNotFound)
	}
	infos := make([]VersionInfo, 0, len(rows))
	for _, row := range rows {
		variants, err := s.renderedVariants(ctx, identity, row.Version)
		if err != nil {
			return nil, err
		}
		infos = append(infos, VersionInfo{Version: row.Version, CreatedAt: row.CreatedAt, RenderedVariants: variants})
	}
	return infos, nil
}

// PutRender stores the rendered bytes for a version variant. Versions are
// immutable and rendering is deterministic per snapshot, so re-rendering the
// same (version, variant) simply replaces the stored bytes.
func (s *Store) PutRender(ctx context.Context, identity string, version int, variant faq.Variant, data []byte) error {
	if s == nil || s.db == nil {
		return errors.New("version store not initialised")
	}
	identity = strings.TrimSpace(identity)
	if identity == "" || version <= 0 {
		return errors.New("identity and version required")
	}
	var exists int
	if err := s.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) FROM faq_versions WHERE identity = ? AND version = ?`, identity, version); err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("identity %s version %d: %w", identity, version, faq.ErrNotFound)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO faq_renders(identity, version, variant, data) VALUES (?, ?, ?, ?)
                 ON CONFLICT(identity, version, variant) DO UPDATE SET data = excluded.data`,
		identity, version, string(variant), data,
	); err != nil {
		return fmt.Errorf("insert render: %w", err)
	}
	return nil
}

// GetRender returns the stored rendered bytes for a version variant.
func (s *Store) GetRender(ctx context.Context, identity string, version int, variant faq.Variant) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("version store not initialised")
	}
	var data []byte
	err := s.db.GetContext(ctx, &data,
		`SELECT data FROM faq_renders WHERE identity = ? AND version = ? AND variant = ?`,
		strings.TrimSpace(identity), version, string(variant))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("render %s v%d %s: %w", identity, version, variant, faq.ErrNotFound)
		}
		return nil, fmt.Errorf("query render: %w", err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) renderedVariants(ctx context.Context, identity string, version int) ([]faq.Variant, error) {
	var names []string
	if err := s.db.SelectContext(ctx, &names,
		`SELECT variant FROM faq_renders WHERE identity = ? AND version = ? ORDER BY variant`, identity, version); err != nil {
		return nil, fmt.Errorf("list rendered variants: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	variants := make([]faq.Variant, 0, len(names))
	for _, name := range names {
		variants = append(variants, faq.Variant(name))
	}
	return variants, nil
}
