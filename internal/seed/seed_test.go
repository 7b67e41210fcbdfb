package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/store/memory"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoaderParsesEntries(t *testing.T) {
	path := writeSeedFile(t, `
- slug: docs
  url: https://example.com/docs
- slug: status
  url: https://status.example.com
`)

	entries, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Load() entries = %v, want 2", len(entries))
	}
	if entries[0].Slug != "docs" || entries[0].URL != "https://example.com/docs" {
		t.Errorf("Load() first entry = %+v", entries[0])
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/links.yaml").Load(); err == nil {
		t.Error("Load() should fail on a missing file")
	}
}

func TestLoaderMalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "slug: [unclosed")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() should fail on malformed yaml")
	}
}

func TestReloadSeedsStore(t *testing.T) {
	path := writeSeedFile(t, `
- slug: docs
  url: https://example.com/docs
- slug: bad
  url: not-a-url
- url: https://example.com/no-slug
`)

	st := memory.NewStore()
	r := NewReloader(path, st, logger.Nop(), time.Hour, make(chan struct{}, 1))

	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	link, err := st.FindBySlug(context.Background(), "docs")
	if err != nil {
		t.Fatalf("FindBySlug(docs) error = %v", err)
	}
	if link.URL != "https://example.com/docs" {
		t.Errorf("seeded url = %v", link.URL)
	}

	// Invalid entries must be skipped, not stored
	if st.Count() != 1 {
		t.Errorf("store count = %v, want 1", st.Count())
	}
}

func TestReloadLeavesExistingLinksAlone(t *testing.T) {
	path := writeSeedFile(t, `
- slug: docs
  url: https://example.com/new
`)

	st := memory.NewStore()
	ctx := context.Background()
	if _, err := st.Create(ctx, "docs", "https://example.com/original"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := st.IncrementClicks(ctx, "docs"); err != nil {
		t.Fatalf("IncrementClicks() error = %v", err)
	}

	r := NewReloader(path, st, logger.Nop(), time.Hour, make(chan struct{}, 1))
	if err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	link, err := st.FindBySlug(ctx, "docs")
	if err != nil {
		t.Fatalf("FindBySlug() error = %v", err)
	}
	if link.URL != "https://example.com/original" {
		t.Errorf("Reload() overwrote url, got %v", link.URL)
	}
	if link.Clicks != 1 {
		t.Errorf("Reload() reset clicks, got %v", link.Clicks)
	}
}
