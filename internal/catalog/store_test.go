package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_LoadLiveSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	csv := header +
		"p1,Oak Desk,OakCraft,,499.99,desks,,,,\n" +
		"p2,,X,no title,10,,,,,\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Load(context.Background())

	if s.Mode() != ModeLive {
		t.Errorf("expected live mode, got %s", s.Mode())
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 product, got %d", s.Len())
	}
	if s.SkippedRows() != 1 {
		t.Errorf("expected 1 skipped row, got %d", s.SkippedRows())
	}
	if !s.Ready() {
		t.Error("store should be ready after load")
	}
	if s.LoadedAt().IsZero() {
		t.Error("loadedAt should be set")
	}
}

func TestStore_FallsBackToDemoOnMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.csv"))
	s.Load(context.Background())

	if s.Mode() != ModeFallback {
		t.Errorf("expected fallback mode, got %s", s.Mode())
	}
	if s.Len() == 0 {
		t.Error("demo catalog should not be empty")
	}
}

func TestStore_EmptyPathIsFallback(t *testing.T) {
	s := NewStore("")
	s.Load(context.Background())

	if s.Mode() != ModeFallback {
		t.Errorf("expected fallback mode, got %s", s.Mode())
	}
}

func TestStore_ReloadSwapsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	if err := os.WriteFile(path, []byte(header+"p1,Desk,X,,10,,,,,\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Load(context.Background())
	if s.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", s.Len())
	}

	csv := header + "p1,Desk,X,,10,,,,,\np2,Chair,X,,20,,,,,\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}
	s.Load(context.Background())

	if s.Len() != 2 {
		t.Errorf("expected 2 products after reload, got %d", s.Len())
	}
	if s.Mode() != ModeLive {
		t.Errorf("expected live mode, got %s", s.Mode())
	}
}

func TestDemoProducts_Valid(t *testing.T) {
	demo := demoProducts()
	if len(demo) < 2 {
		t.Fatalf("expected several demo products, got %d", len(demo))
	}
	seen := make(map[string]bool)
	for i := range demo {
		p := &demo[i]
		if seen[p.ID()] {
			t.Errorf("duplicate demo id %s", p.ID())
		}
		seen[p.ID()] = true
		if len(p.Categories()) == 0 {
			t.Errorf("demo product %s has no categories", p.ID())
		}
	}
}
