//go:build darwin || freebsd || linux

package checklib

import "github.com/ebitengine/purego"

// dlLoader probes through dlopen. Candidates are opened lazily and with
// local visibility so a probe does not bind unresolved relocations or
// pollute the process symbol space.
type dlLoader struct{}

func newDefaultLoader() Loader { return dlLoader{} }

func (dlLoader) Open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
}

func (dlLoader) Symbol(handle uintptr, name string) bool {
	sym, err := purego.Dlsym(handle, name)
	return err == nil && sym != 0
}

func (dlLoader) Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}
