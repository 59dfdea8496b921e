package checklib

import (
	"os"
	"os/exec"
	"strings"
)

// Fallback supplies extra search directories when the primary pass
// leaves library names unmet. Implementations receive the sorted
// missing names and return directories, which are then searched under
// the same request settings.
type Fallback interface {
	LibDirs(missing []string) []string
}

// FallbackFunc adapts a plain function to the Fallback interface.
type FallbackFunc func(missing []string) []string

func (f FallbackFunc) LibDirs(missing []string) []string { return f(missing) }

// PkgConfigFallback asks pkg-config where the libraries of the given
// packages live. Packages pkg-config does not know, and hosts without
// pkg-config on PATH, contribute nothing.
type PkgConfigFallback struct {
	// Packages are pkg-config package names, for example "openssl".
	// When empty, the missing library names are queried directly.
	Packages []string
}

func (p PkgConfigFallback) LibDirs(missing []string) []string {
	packages := p.Packages
	if len(packages) == 0 {
		packages = missing
	}
	var dirs []string
	for _, pkg := range packages {
		dirs = append(dirs, pkgConfigLibDirs(pkg)...)
	}
	return dirs
}

// pkgConfigLibDirs extracts -L directories from the package's link
// flags, falling back to the libdir variable for packages whose
// libraries live in the linker default path.
func pkgConfigLibDirs(pkg string) []string {
	out, err := exec.Command("pkg-config", "--libs", pkg).Output()
	if err != nil {
		return nil
	}
	var dirs []string
	for _, flag := range strings.Fields(string(out)) {
		if dir, found := strings.CutPrefix(flag, "-L"); found && dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) > 0 {
		return dirs
	}
	out, err = exec.Command("pkg-config", "--variable=libdir", pkg).Output()
	if err != nil {
		return nil
	}
	if dir := strings.TrimSpace(string(out)); dir != "" {
		dirs = append(dirs, dir)
	}
	return dirs
}

// EnvFallback reads extra directories from a PATH-style environment
// variable, in the manner of installers that export the location of
// bundled libraries.
type EnvFallback struct {
	// Key is the environment variable name, for example "OPENSSL_LIB_DIR".
	Key string
}

func (e EnvFallback) LibDirs([]string) []string {
	return splitPathList(os.Getenv(e.Key))
}
