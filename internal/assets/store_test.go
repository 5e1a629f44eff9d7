// File path: internal/assets/store_test.go
package assets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"faqforge/internal/faq"
)

func TestPutResolveRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	ref, err := store.Put(ctx, []byte{0x89, 'P', 'N', 'G'}, "png")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("unexpected ref: %q", ref)
	}
	data, err := store.Resolve(ctx, ref)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(data) != 4 || data[1] != 'P' {
		t.Fatalf("unexpected bytes: %v", data)
	}
}

func TestResolveUnknownRef(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Resolve(context.Background(), "missing.png"); !errors.Is(err, faq.ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
}

func TestResolveRejectsEscapingRefs(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, ref := range []string{"../secrets.png", "/etc/passwd", "a/b.png", ""} {
		if _, err := store.Resolve(context.Background(), ref); !errors.Is(err, faq.ErrAssetUnavailable) {
			t.Fatalf("ref %q: expected ErrAssetUnavailable, got %v", ref, err)
		}
	}
}

func TestPutNormalizesExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ref, err := store.Put(context.Background(), []byte{1}, "EXE")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("extension not normalized: %q", ref)
	}
}
