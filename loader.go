package checklib

// Loader is the dynamic-loading capability used to probe candidate
// libraries for exported symbols. Handles stay inside the probe: a
// library opened for symbol checks is closed before the search returns,
// and the handle is never exposed to callers of this package.
type Loader interface {
	// Open loads the library at path and returns an opaque handle.
	Open(path string) (uintptr, error)
	// Symbol reports whether the loaded library resolves the named symbol.
	Symbol(handle uintptr, name string) bool
	// Close unloads a library previously returned by Open.
	Close(handle uintptr) error
}
