// File path: internal/assets/store.go
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"faqforge/internal/common"
	"faqforge/internal/faq"
)

// Store keeps uploaded screenshots on disk under opaque references. The core
// never inspects the bytes; references travel inside step records and are
// resolved again at render time.
type Store struct {
	root string
	mu   sync.RWMutex
}

func NewStore(root string) (*Store, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, errors.New("asset root required")
	}
	if err := os.MkdirAll(trimmed, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root: %w", err)
	}
	return &Store{root: trimmed}, nil
}

// Root returns the directory used for persistence.
func (s *Store) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// Put stores the bytes and returns an opaque reference for them. The
// extension is kept so rendered documents can embed the image with the right
// format.
func (s *Store) Put(ctx context.Context, data []byte, ext string) (string, error) {
	if s == nil {
		return "", errors.New("asset store not initialised")
	}
	if len(data) == 0 {
		return "", errors.New("empty asset")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	ref := uuid.NewString() + normalizeExt(ext)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(filepath.Join(s.root, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	common.Logger().Debug("assets: stored", "ref", ref, "bytes", len(data))
	return ref, nil
}

// Resolve returns the bytes behind a reference. Unknown or escaping
// references fail with faq.ErrAssetUnavailable; callers render a placeholder
// instead of aborting.
func (s *Store) Resolve(ctx context.Context, ref string) ([]byte, error) {
	if s == nil {
		return nil, errors.New("asset store not initialised")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	cleaned := filepath.Clean(strings.TrimSpace(ref))
	if cleaned == "" || cleaned == "." || filepath.IsAbs(cleaned) || strings.Contains(cleaned, string(os.PathSeparator)) {
		return nil, fmt.Errorf("ref %q: %w", ref, faq.ErrAssetUnavailable)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(s.root, cleaned))
	if err != nil {
		return nil, fmt.Errorf("ref %q: %w", ref, faq.ErrAssetUnavailable)
	}
	return data, nil
}

func normalizeExt(ext string) string {
	trimmed := strings.ToLower(strings.TrimSpace(ext))
	if trimmed == "" {
		return ".png"
	}
	if !strings.HasPrefix(trimmed, ".") {
		trimmed = "." + trimmed
	}
	switch trimmed {
	case ".png", ".jpg", ".jpeg":
		return trimmed
	}
	return ".png"
}
