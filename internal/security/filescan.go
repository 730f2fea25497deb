package security

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultFileRoots returns the directories the file scan covers: the user
// home plus the platform temp directories.
func DefaultFileRoots() []string {
	roots := []string{}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		roots = append(roots, home)
	}
	roots = append(roots, os.TempDir())
	if runtime.GOOS != "windows" {
		roots = append(roots, "/tmp", "/var/tmp")
	}
	return roots
}

// scanFiles traverses each root up to MaxDepth and flags files with a
// denylisted extension or name substring, plus world-writable executables
// on unix. Unreadable entries are skipped; symlinks are not followed; a
// traversal error never aborts the scan.
func (a *Analyzer) scanFiles(roots []string) []string {
	var findings []string
	seen := make(map[string]bool)

	for _, root := range roots {
		if root == "" || seen[root] {
			continue
		}
		seen[root] = true
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
			if d.IsDir() {
				if a.cfg.MaxDepth > 0 && depthBelow(root, path) >= a.cfg.MaxDepth {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			if finding, ok := a.inspectFile(path, d); ok {
				findings = append(findings, finding)
			}
			return nil
		})
	}
	return findings
}

// inspectFile applies the file heuristics in priority order: extension
// first, then name pattern, then permission bits.
func (a *Analyzer) inspectFile(path string, d fs.DirEntry) (string, bool) {
	name := strings.ToLower(d.Name())

	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."); ext != "" {
		for _, bad := range a.cfg.Rules.FileExtensions {
			if strings.Contains(ext, bad) {
				return "Suspicious extension: " + path, true
			}
		}
	}

	if matchesAny(name, a.cfg.Rules.FileNamePatterns) {
		return "Suspicious filename: " + path, true
	}

	if runtime.GOOS != "windows" {
		if info, err := d.Info(); err == nil {
			mode := info.Mode().Perm()
			// Executable by anyone AND writable by others.
			if mode&0o111 != 0 && mode&0o002 != 0 {
				return "World-writable executable: " + path, true
			}
		}
	}

	return "", false
}

// depthBelow counts directory levels between root and path.
func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
