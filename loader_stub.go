//go:build !(darwin || freebsd || linux || windows)

package checklib

import "errors"

var errLoaderUnsupported = errors.New("dynamic loading not supported on this platform")

// stubLoader stands in on platforms without a dynamic-loading facility.
// Every probe fails to open, so symbol requirements never resolve there.
type stubLoader struct{}

func newDefaultLoader() Loader { return stubLoader{} }

func (stubLoader) Open(string) (uintptr, error) { return 0, errLoaderUnsupported }
func (stubLoader) Symbol(uintptr, string) bool  { return false }
func (stubLoader) Close(uintptr) error          { return nil }
