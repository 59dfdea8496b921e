package checklib

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Overridable for tests.
var (
	exit                 = os.Exit
	warnWriter io.Writer = os.Stderr
)

// Check reports whether the search locates at least one library. It
// panics when the search arguments themselves are invalid: a search
// that cannot even be constructed is a programming error, not a missing
// library.
func Check(opts ...Option) bool { return Default().Check(opts...) }

// Check reports whether the search locates at least one library. See
// the package-level Check.
func (c *Config) Check(opts ...Option) bool {
	paths, err := c.FindAll(opts...)
	ensureSearchable(err)
	return len(paths) > 0
}

// Assert returns nil when the search locates at least one library, and
// otherwise an error carrying the diagnostic.
func Assert(opts ...Option) error { return Default().Assert(opts...) }

// Assert returns nil when the search locates at least one library, and
// otherwise an error carrying the diagnostic.
func (c *Config) Assert(opts ...Option) error {
	paths, err := c.FindAll(opts...)
	if len(paths) > 0 {
		return nil
	}
	if err != nil {
		return err
	}
	return ErrLibNotFound
}

// CheckOrExit terminates the process when the search locates nothing,
// after writing the diagnostic to standard error. The exit status is 0,
// matching the long-standing behavior of build-gating probes that mean
// "skip, don't fail"; callers that need a failing status should use
// Assert and exit themselves. Panics on invalid search arguments.
func CheckOrExit(opts ...Option) { Default().CheckOrExit(opts...) }

// CheckOrExit terminates the process when the search locates nothing.
// See the package-level CheckOrExit.
func (c *Config) CheckOrExit(opts ...Option) {
	paths, err := c.FindAll(opts...)
	ensureSearchable(err)
	if len(paths) == 0 {
		exitNotFound(err)
	}
}

// FindOrExit returns the first located path, terminating the process as
// CheckOrExit does when the search locates nothing.
func FindOrExit(opts ...Option) string { return Default().FindOrExit(opts...) }

// FindOrExit returns the first located path, terminating the process as
// CheckOrExit does when the search locates nothing.
func (c *Config) FindOrExit(opts ...Option) string {
	paths := c.FindAllOrExit(opts...)
	return paths[0]
}

// FindAllOrExit returns all located paths, terminating the process as
// CheckOrExit does when the search locates nothing.
func FindAllOrExit(opts ...Option) []string { return Default().FindAllOrExit(opts...) }

// FindAllOrExit returns all located paths, terminating the process as
// CheckOrExit does when the search locates nothing.
func (c *Config) FindAllOrExit(opts ...Option) []string {
	paths, err := c.FindAll(opts...)
	ensureSearchable(err)
	if len(paths) == 0 {
		exitNotFound(err)
		return nil
	}
	return paths
}

// MustFind is like Find but panics with the diagnostic when the search
// locates nothing.
func MustFind(opts ...Option) string { return Default().MustFind(opts...) }

// MustFind is like Find but panics with the diagnostic when the search
// locates nothing.
func (c *Config) MustFind(opts ...Option) string {
	paths := c.MustFindAll(opts...)
	return paths[0]
}

// MustFindAll is like FindAll but panics with the diagnostic when the
// search locates nothing.
func MustFindAll(opts ...Option) []string { return Default().MustFindAll(opts...) }

// MustFindAll is like FindAll but panics with the diagnostic when the
// search locates nothing.
func (c *Config) MustFindAll(opts ...Option) []string {
	paths, err := c.FindAll(opts...)
	if len(paths) == 0 {
		if err == nil {
			err = ErrLibNotFound
		}
		panic(fmt.Errorf("checklib: %w", err))
	}
	return paths
}

// Which returns the path a search for the named library reports first,
// or the empty string when it is not found.
func Which(name string) string { return Default().Which(name) }

// Which returns the path a search for the named library reports first,
// or the empty string when it is not found.
func (c *Config) Which(name string) string {
	path, _ := c.Find(WithLib(name))
	return path
}

// Where lists every file in the search space matching the named
// library, across all directories, without the one-per-name rule a
// plain search applies. Symbolic links are reported as found, not
// resolved.
func Where(name string) []string { return Default().Where(name) }

// Where lists every file in the search space matching the named
// library. See the package-level Where.
func (c *Config) Where(name string) []string {
	req, err := newRequest(WithLib(name))
	if err != nil {
		return nil
	}
	req.all = true
	paths, _ := c.findAll(req)
	return paths
}

// HasSymbols reports whether the library file at path resolves every
// named symbol. The file is probed as given, with no filename pattern
// check; a file that cannot be opened resolves nothing. With no symbols
// it reports true.
func HasSymbols(path string, symbols ...string) bool {
	return Default().HasSymbols(path, symbols...)
}

// HasSymbols reports whether the library file at path resolves every
// named symbol. See the package-level HasSymbols.
func (c *Config) HasSymbols(path string, symbols ...string) bool {
	if len(symbols) == 0 {
		return true
	}
	outstanding := make(map[string]bool, len(symbols))
	for _, name := range symbols {
		outstanding[name] = true
	}
	c.probe(path, outstanding)
	return len(outstanding) == 0
}

// ensureSearchable panics on anything other than success or a not-found
// diagnostic.
func ensureSearchable(err error) {
	var nferr *NotFoundError
	if err == nil || errors.As(err, &nferr) {
		return
	}
	panic(fmt.Errorf("checklib: %w", err))
}

func exitNotFound(err error) {
	if err == nil {
		err = ErrLibNotFound
	}
	fmt.Fprintln(warnWriter, err.Error())
	exit(0)
}
