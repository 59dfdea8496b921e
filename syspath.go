package checklib

import (
	"os"
	"path/filepath"
	"runtime"
)

// SystemPathFor returns the default system library directories for the
// given OS identifier: the dynamic-linker environment directories first,
// then the conventional install locations. Directories that do not exist
// on this host are dropped, and duplicates keep their first position.
func SystemPathFor(goos string) []string {
	var dirs []string
	switch goos {
	case "windows", "cygwin", "msys":
		dirs = splitPathList(os.Getenv("PATH"))
	case "darwin":
		dirs = append(dirs, splitPathList(os.Getenv("DYLD_LIBRARY_PATH"))...)
		dirs = append(dirs, splitPathList(os.Getenv("DYLD_FALLBACK_LIBRARY_PATH"))...)
		dirs = append(dirs,
			"/usr/local/lib",
			"/opt/homebrew/lib",
			"/opt/local/lib",
			"/usr/lib",
		)
	case "linux":
		dirs = append(dirs, splitPathList(os.Getenv("LD_LIBRARY_PATH"))...)
		dirs = append(dirs, multiarchDirs()...)
		dirs = append(dirs,
			"/usr/local/lib",
			"/usr/lib",
			"/lib",
			"/usr/lib64",
			"/lib64",
		)
	default:
		dirs = append(dirs, splitPathList(os.Getenv("LD_LIBRARY_PATH"))...)
		dirs = append(dirs,
			"/usr/local/lib",
			"/usr/lib",
			"/lib",
		)
	}
	return existingDirs(dirs)
}

// multiarchDirs lists the Debian-style multiarch directories for the
// build architecture.
func multiarchDirs() []string {
	var triple string
	switch runtime.GOARCH {
	case "amd64":
		triple = "x86_64-linux-gnu"
	case "arm64":
		triple = "aarch64-linux-gnu"
	case "386":
		triple = "i386-linux-gnu"
	case "arm":
		triple = "arm-linux-gnueabihf"
	default:
		return nil
	}
	return []string{
		filepath.Join("/usr/lib", triple),
		filepath.Join("/lib", triple),
	}
}

func splitPathList(list string) []string {
	if list == "" {
		return nil
	}
	return filepath.SplitList(list)
}

// existingDirs drops empty entries, duplicates and paths that are not
// directories, preserving first-seen order.
func existingDirs(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	var out []string
	for _, dir := range dirs {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}
