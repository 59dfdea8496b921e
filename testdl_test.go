package checklib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// textLoader is the test double for the dynamic loader. A pseudo
// library is a text file: first line the library name, second line a
// version, then one exported symbol per line. Anything shorter fails to
// open, standing in for a file that is not loadable.
type textLoader struct {
	mu      sync.Mutex
	next    uintptr
	handles map[uintptr]map[string]bool
	opens   map[string]int
}

func newTextLoader() *textLoader {
	return &textLoader{
		handles: make(map[uintptr]map[string]bool),
		opens:   make(map[string]int),
	}
}

func (l *textLoader) Open(path string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opens[path]++
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("not a pseudo library: %s", path)
	}
	symbols := make(map[string]bool, len(lines))
	for _, sym := range lines[2:] {
		if sym != "" {
			symbols[sym] = true
		}
	}
	l.next++
	l.handles[l.next] = symbols
	return l.next, nil
}

func (l *textLoader) Symbol(handle uintptr, name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handles[handle][name]
}

func (l *textLoader) Close(handle uintptr) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.handles[handle]; !ok {
		return fmt.Errorf("close of unknown handle %d", handle)
	}
	delete(l.handles, handle)
	return nil
}

// openCount reports how many times path was opened.
func (l *textLoader) openCount(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opens[path]
}

// openHandles reports how many handles remain open.
func (l *textLoader) openHandles() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handles)
}

// newTestConfig returns a POSIX-pattern Config wired to the text loader
// and an empty system path, so a search sees only the directories the
// test supplies.
func newTestConfig(t *testing.T) (*Config, *textLoader) {
	t.Helper()
	loader := newTextLoader()
	return &Config{
		OS:       "linux",
		Patterns: PatternsFor("linux"),
		Loader:   loader,
	}, loader
}

// writeLib writes a pseudo library under dir and returns its path.
func writeLib(t *testing.T, dir, filename, name, version string, symbols ...string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(name + "\n" + version + "\n")
	for _, sym := range symbols {
		sb.WriteString(sym + "\n")
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("failed to write pseudo library %s: %v", filename, err)
	}
	return path
}

// writeSymlink creates a symbolic link, skipping the test on hosts that
// do not permit symlink creation.
func writeSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("cannot create symlinks on this host: %v", err)
	}
}
