package checklib

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// scanDir lists one directory and returns the entries recognized as
// candidates for the requested names, sorted by full path. Search paths
// are speculative: a path that does not exist or is not a directory
// scans to nothing. Entries whose target no longer exists (dangling
// symlinks) are dropped.
func (c *Config) scanDir(dir string, names map[string]bool, wildcard bool) []Candidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var cands []Candidate
	for _, entry := range entries {
		name, version, ok := matchEntry(c.Patterns, entry.Name())
		if !ok {
			continue
		}
		if !wildcard && !names[name] {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(full); err == nil {
			full = abs
		}
		if _, err := os.Stat(full); err != nil {
			continue
		}
		cands = append(cands, Candidate{
			Name:      name,
			Path:      full,
			Version:   version,
			IsSymlink: entry.Type()&fs.ModeSymlink != 0,
		})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].Path < cands[j].Path })
	return cands
}

// expandRecursive returns root followed by every descendant directory,
// depth first in lexical order. A missing or non-directory root expands
// to nothing. Symbolic links to directories are not followed.
func expandRecursive(root string) []string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}
	dirs := []string{root}
	entries, err := os.ReadDir(root)
	if err != nil {
		return dirs
	}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, expandRecursive(filepath.Join(root, entry.Name()))...)
		}
	}
	return dirs
}

// maxSymlinkHops bounds symlink chain resolution, mirroring the kernel
// ELOOP limit.
const maxSymlinkHops = 40

// resolveSymlinks follows a chain of symbolic links to its final target,
// resolving relative link targets against the link's directory. When the
// chain breaks or exceeds maxSymlinkHops, the last readable path is
// returned.
func resolveSymlinks(path string) string {
	for i := 0; i < maxSymlinkHops; i++ {
		info, err := os.Lstat(path)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return path
		}
		target, err := os.Readlink(path)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return path
}
