package checklib

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFallbackFuncAdapter(t *testing.T) {
	fb := FallbackFunc(func(missing []string) []string {
		return append([]string{"/spare"}, missing...)
	})
	got := fb.LibDirs([]string{"foo"})
	if diff := cmp.Diff([]string{"/spare", "foo"}, got); diff != "" {
		t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
	}
}

func TestEnvFallback(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	t.Setenv("CHECKLIB_TEST_LIB_DIR", dir1+string(os.PathListSeparator)+dir2)

	fb := EnvFallback{Key: "CHECKLIB_TEST_LIB_DIR"}
	got := fb.LibDirs(nil)
	if diff := cmp.Diff([]string{dir1, dir2}, got); diff != "" {
		t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
	}

	t.Setenv("CHECKLIB_TEST_LIB_DIR", "")
	if got := fb.LibDirs(nil); got != nil {
		t.Fatalf("expected no dirs from empty variable, got %v", got)
	}
}

// installPkgConfigShim puts a fake pkg-config first on PATH. The shim
// knows two packages: "foo", whose link flags carry -L, and "bare",
// which only reports a libdir variable.
func installPkgConfigShim(t *testing.T, libDir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("pkg-config shim requires a POSIX shell")
	}

	binDir := t.TempDir()
	shim := fmt.Sprintf(`#!/bin/sh
case "$1 $2" in
"--libs foo") echo "-L%s -lfoo" ;;
"--libs bare") echo "-lbare" ;;
"--variable=libdir bare") echo "%s" ;;
*) exit 1 ;;
esac
`, libDir, libDir)
	path := filepath.Join(binDir, "pkg-config")
	if err := os.WriteFile(path, []byte(shim), 0o755); err != nil {
		t.Fatalf("failed to install pkg-config shim: %v", err)
	}
	t.Setenv("PATH", binDir)
}

func TestPkgConfigFallbackLinkFlags(t *testing.T) {
	libDir := t.TempDir()
	installPkgConfigShim(t, libDir)

	fb := PkgConfigFallback{}
	got := fb.LibDirs([]string{"foo"})
	if diff := cmp.Diff([]string{libDir}, got); diff != "" {
		t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
	}
}

func TestPkgConfigFallbackLibdirVariable(t *testing.T) {
	libDir := t.TempDir()
	installPkgConfigShim(t, libDir)

	fb := PkgConfigFallback{}
	got := fb.LibDirs([]string{"bare"})
	if diff := cmp.Diff([]string{libDir}, got); diff != "" {
		t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
	}
}

func TestPkgConfigFallbackUnknownPackage(t *testing.T) {
	installPkgConfigShim(t, t.TempDir())

	fb := PkgConfigFallback{}
	if got := fb.LibDirs([]string{"no-such-package"}); got != nil {
		t.Fatalf("expected no dirs for unknown package, got %v", got)
	}
}

func TestPkgConfigFallbackExplicitPackages(t *testing.T) {
	libDir := t.TempDir()
	installPkgConfigShim(t, libDir)

	// Explicit packages take precedence over the missing names.
	fb := PkgConfigFallback{Packages: []string{"foo"}}
	got := fb.LibDirs([]string{"something-else"})
	if diff := cmp.Diff([]string{libDir}, got); diff != "" {
		t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
	}
}

func TestPkgConfigFallbackEndToEnd(t *testing.T) {
	libDir := t.TempDir()
	installPkgConfigShim(t, libDir)

	cfg, _ := newTestConfig(t)
	want := writeLib(t, libDir, "libfoo.so", "foo", "")

	got, err := cfg.Find(
		WithLib("foo"),
		WithLibPath(t.TempDir()),
		WithFallback(PkgConfigFallback{}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected path: got %q, want %q", got, want)
	}
}
