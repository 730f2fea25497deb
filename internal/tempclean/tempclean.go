// Package tempclean deletes temporary files by age. Selection is driven
// by an explicit selector (named retention bucket or raw day threshold);
// interactive prompting stays in the CLI layer.
package tempclean

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ostashkin/syswatch/internal/model"
)

// Selector chooses which file ages are eligible for deletion.
type Selector struct {
	kind selectorKind
	days int
}

type selectorKind int

const (
	selectRecent selectorKind = iota
	selectModerate
	selectOld
	selectThreshold
)

// Recent selects files aged 1-2 whole days.
func Recent() Selector { return Selector{kind: selectRecent} }

// Moderate selects files aged 3-5 whole days.
func Moderate() Selector { return Selector{kind: selectModerate} }

// Old selects files aged 6 whole days or more.
func Old() Selector { return Selector{kind: selectOld} }

// OlderThan selects files aged at least the given number of whole days.
func OlderThan(days int) Selector {
	return Selector{kind: selectThreshold, days: days}
}

// ParseSelector maps a bucket name to its selector.
func ParseSelector(name string) (Selector, error) {
	switch name {
	case "recent":
		return Recent(), nil
	case "moderate":
		return Moderate(), nil
	case "old":
		return Old(), nil
	default:
		return Selector{}, fmt.Errorf("unknown retention bucket %q (want recent, moderate, or old)", name)
	}
}

// Matches reports whether a file of the given whole-day age is selected.
func (s Selector) Matches(ageDays int) bool {
	switch s.kind {
	case selectRecent:
		return ageDays >= 1 && ageDays <= 2
	case selectModerate:
		return ageDays >= 3 && ageDays <= 5
	case selectOld:
		return ageDays >= 6
	default:
		return ageDays >= s.days
	}
}

func (s Selector) String() string {
	switch s.kind {
	case selectRecent:
		return "recent (1-2 days)"
	case selectModerate:
		return "moderate (3-5 days)"
	case selectOld:
		return "old (6+ days)"
	default:
		return fmt.Sprintf("older than %d days", s.days)
	}
}

// Cleaner removes matching files under a set of roots.
type Cleaner struct {
	Roots []string

	// Now and Remove are injectable for tests; nil means time.Now and
	// os.Remove.
	Now    func() time.Time
	Remove func(path string) error
}

// Run traverses every root and deletes each regular file whose age
// matches the selector. Symlinks are never followed and unreadable
// entries are skipped. A failed deletion is recorded in the stats and
// never aborts the run.
func (c *Cleaner) Run(sel Selector) model.CleanupStats {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	remove := os.Remove
	if c.Remove != nil {
		remove = c.Remove
	}

	stats := model.CleanupStats{}

	for _, root := range c.Roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if path == root || !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}

			age := now.Sub(info.ModTime())
			if age < 0 {
				return nil
			}
			if !sel.Matches(int(age.Hours() / 24)) {
				return nil
			}

			if err := remove(path); err != nil {
				stats.Errors = append(stats.Errors,
					fmt.Sprintf("Failed to delete %s: %v", path, err))
				return nil
			}
			stats.FilesDeleted++
			stats.BytesFreed += uint64(info.Size())
			return nil
		})
	}

	return stats
}

// ErrNoRoots is returned by callers that require at least one root.
var ErrNoRoots = errors.New("tempclean: no cleanup roots configured")
