//go:build windows

package checklib

import "golang.org/x/sys/windows"

// dlLoader probes through the Win32 loader.
type dlLoader struct{}

func newDefaultLoader() Loader { return dlLoader{} }

func (dlLoader) Open(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func (dlLoader) Symbol(handle uintptr, name string) bool {
	proc, err := windows.GetProcAddress(windows.Handle(handle), name)
	return err == nil && proc != 0
}

func (dlLoader) Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}
