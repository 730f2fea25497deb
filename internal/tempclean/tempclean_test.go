package tempclean

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// agedFile creates a file of the given size whose mtime is days before now.
func agedFile(t *testing.T, dir, name string, size int, days int, now time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	mtime := now.Add(-time.Duration(days) * 24 * time.Hour)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestSelectorMatches(t *testing.T) {
	tests := []struct {
		sel  Selector
		age  int
		want bool
	}{
		{Recent(), 0, false},
		{Recent(), 1, true},
		{Recent(), 2, true},
		{Recent(), 3, false},
		{Moderate(), 2, false},
		{Moderate(), 3, true},
		{Moderate(), 5, true},
		{Moderate(), 6, false},
		{Old(), 5, false},
		{Old(), 6, true},
		{Old(), 400, true},
		{OlderThan(10), 9, false},
		{OlderThan(10), 10, true},
		{OlderThan(0), 0, true},
	}
	for _, tt := range tests {
		if got := tt.sel.Matches(tt.age); got != tt.want {
			t.Errorf("%v.Matches(%d) = %v, want %v", tt.sel, tt.age, got, tt.want)
		}
	}
}

func TestParseSelector(t *testing.T) {
	for _, name := range []string{"recent", "moderate", "old"} {
		if _, err := ParseSelector(name); err != nil {
			t.Errorf("ParseSelector(%q): %v", name, err)
		}
	}
	if _, err := ParseSelector("ancient"); err == nil {
		t.Error("ParseSelector(ancient): want error, got nil")
	}
}

func TestRunDeletesOnlyMatchingBucket(t *testing.T) {
	now := time.Now()
	dir := t.TempDir()
	fresh := agedFile(t, dir, "fresh.log", 10, 0, now)
	recent := agedFile(t, dir, "recent.log", 20, 1, now)
	moderate := agedFile(t, dir, "moderate.log", 30, 4, now)
	old := agedFile(t, dir, "old.log", 40, 7, now)

	c := &Cleaner{Roots: []string{dir}, Now: func() time.Time { return now }}
	stats := c.Run(Old())

	if stats.FilesDeleted != 1 {
		t.Fatalf("FilesDeleted = %d, want 1 (errors: %v)", stats.FilesDeleted, stats.Errors)
	}
	if stats.BytesFreed != 40 {
		t.Errorf("BytesFreed = %d, want 40", stats.BytesFreed)
	}
	if len(stats.Errors) != 0 {
		t.Errorf("Errors = %v, want none", stats.Errors)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("old file still present")
	}
	for _, keep := range []string{fresh, recent, moderate} {
		if _, err := os.Stat(keep); err != nil {
			t.Errorf("%s should have survived: %v", filepath.Base(keep), err)
		}
	}
}

func TestRunRecentBucket(t *testing.T) {
	now := time.Now()
	dir := t.TempDir()
	agedFile(t, dir, "day1.tmp", 5, 1, now)
	agedFile(t, dir, "day2.tmp", 6, 2, now)
	agedFile(t, dir, "day3.tmp", 7, 3, now)

	c := &Cleaner{Roots: []string{dir}, Now: func() time.Time { return now }}
	stats := c.Run(Recent())

	if stats.FilesDeleted != 2 {
		t.Errorf("FilesDeleted = %d, want 2", stats.FilesDeleted)
	}
	if stats.BytesFreed != 11 {
		t.Errorf("BytesFreed = %d, want 11", stats.BytesFreed)
	}
}

func TestRunRecordsFailedDeletions(t *testing.T) {
	now := time.Now()
	dir := t.TempDir()
	stuck := agedFile(t, dir, "stuck.log", 10, 7, now)
	agedFile(t, dir, "gone.log", 10, 8, now)

	c := &Cleaner{
		Roots: []string{dir},
		Now:   func() time.Time { return now },
		Remove: func(path string) error {
			if path == stuck {
				return errors.New("device busy")
			}
			return os.Remove(path)
		},
	}
	stats := c.Run(Old())

	if stats.FilesDeleted != 1 {
		t.Errorf("FilesDeleted = %d, want 1", stats.FilesDeleted)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry", stats.Errors)
	}
	if !strings.Contains(stats.Errors[0], "Failed to delete") ||
		!strings.Contains(stats.Errors[0], "device busy") {
		t.Errorf("error line = %q", stats.Errors[0])
	}
}

func TestRunSkipsMissingRootAndDirectories(t *testing.T) {
	now := time.Now()
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	agedFile(t, sub, "deep.log", 9, 7, now)

	c := &Cleaner{
		Roots: []string{filepath.Join(dir, "no-such-root"), dir},
		Now:   func() time.Time { return now },
	}
	stats := c.Run(Old())

	if stats.FilesDeleted != 1 {
		t.Errorf("FilesDeleted = %d, want 1", stats.FilesDeleted)
	}
	if _, err := os.Stat(sub); err != nil {
		t.Errorf("directory itself must not be removed: %v", err)
	}
}
