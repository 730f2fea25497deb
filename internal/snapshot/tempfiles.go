package snapshot

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/ostashkin/syswatch/internal/model"
)

// DefaultTempRoots returns the platform's temporary directories. Roots
// that do not exist are filtered out at scan time, not here.
func DefaultTempRoots() []string {
	roots := []string{os.TempDir()}
	if runtime.GOOS == "windows" {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			roots = append(roots, filepath.Join(profile, "AppData", "Local", "Temp"))
		}
		return dedupe(roots)
	}
	roots = append(roots, "/tmp", "/var/tmp")
	return dedupe(roots)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// CollectTempFiles walks the given roots and inventories every regular
// file found, sorted by size descending. Unreadable entries are skipped;
// symlinks are not followed. maxFiles caps the returned list (0 = all);
// TotalSize always covers every file seen.
func CollectTempFiles(roots []string, maxFiles int) model.TempFileSet {
	set := model.TempFileSet{}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entry: skip it, keep walking.
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
			file := model.TempFileInfo{
				Path: path,
				Size: uint64(info.Size()),
			}
			if mod := info.ModTime(); !mod.IsZero() {
				file.LastModified = &mod
			}
			set.TotalSize += file.Size
			set.Files = append(set.Files, file)
			return nil
		})
	}

	sort.Slice(set.Files, func(i, j int) bool {
		if set.Files[i].Size != set.Files[j].Size {
			return set.Files[i].Size > set.Files[j].Size
		}
		return set.Files[i].Path < set.Files[j].Path
	})
	if maxFiles > 0 && len(set.Files) > maxFiles {
		set.Files = set.Files[:maxFiles]
	}
	return set
}
