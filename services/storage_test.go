package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPathAllocatorAllocate(t *testing.T) {
	base := t.TempDir()
	allocator := NewPathAllocator(base)
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	rel, abs, err := allocator.Allocate(7, "notes.txt", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPrefix := filepath.Join("files", "7", "2026", "03") + string(filepath.Separator)
	if !strings.HasPrefix(rel, wantPrefix) {
		t.Fatalf("expected path under %q, got %q", wantPrefix, rel)
	}
	if filepath.Ext(rel) != ".txt" {
		t.Fatalf("expected extension to survive, got %q", rel)
	}
	if abs != filepath.Join(base, rel) {
		t.Fatalf("abs %q does not resolve rel %q against base", abs, rel)
	}
	if _, err := os.Stat(filepath.Dir(abs)); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestPathAllocatorAllocateNeverReusesPaths(t *testing.T) {
	allocator := NewPathAllocator(t.TempDir())
	now := time.Now()

	rel1, _, err := allocator.Allocate(7, "same.txt", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel2, _, err := allocator.Allocate(7, "same.txt", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel1 == rel2 {
		t.Fatalf("allocated the same path twice: %q", rel1)
	}
}

func TestPathAllocatorPathsFitIndexedColumn(t *testing.T) {
	allocator := NewPathAllocator(t.TempDir())

	// Longest case the API can produce: a 255-char filename.
	longName := strings.Repeat("a", 251) + ".txt"
	rel, _, err := allocator.Allocate(4294967295, longName, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rel) > 512 {
		t.Fatalf("allocated path is %d chars, exceeds the varchar(512) column", len(rel))
	}
}

func TestPathAllocatorEnsureOwnerDir(t *testing.T) {
	base := t.TempDir()
	allocator := NewPathAllocator(base)

	if err := allocator.EnsureOwnerDir(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "files", "7")); err != nil {
		t.Fatalf("expected owner directory: %v", err)
	}
}
