package checklib

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard matches every library name. A search for it returns all
// pattern-matching files in the searched directories, with symlinks
// preserved as found rather than resolved. Names requested alongside
// the wildcard are still tracked: the listing satisfies them, and names
// nothing matched are reported missing.
const Wildcard = "*"

var (
	// ErrLibRequired is returned when a search is attempted without at
	// least one library name.
	ErrLibRequired = errors.New("lib name is required")
	// ErrLibNotFound is the generic failure reported when a search
	// produced no paths and no more specific diagnostic.
	ErrLibNotFound = errors.New("library not found")
)

// NotFoundError reports the library names and symbol names a search
// could not satisfy. Both slices are sorted. The rendered message names
// the missing libraries when there are any, and the missing symbols
// otherwise.
type NotFoundError struct {
	Libs    []string
	Symbols []string
}

func (e *NotFoundError) Error() string {
	switch {
	case len(e.Libs) == 1:
		return "library not found: " + e.Libs[0]
	case len(e.Libs) > 1:
		return "libraries not found: " + strings.Join(e.Libs, ", ")
	case len(e.Symbols) == 1:
		return "symbol not found: " + e.Symbols[0]
	default:
		return "symbols not found: " + strings.Join(e.Symbols, ", ")
	}
}

// request is one normalized search. Options validate into it; it never
// outlives the call that built it.
type request struct {
	libs                 []string
	libPath              []string
	systemPath           []string
	systemPathSet        bool
	symbols              []string
	verify               []VerifyFunc
	fallbacks            []Fallback
	recursive            bool
	resolveLinkerScripts bool

	// all disables name consumption so every directory can contribute a
	// match for the same name. Used by Where.
	all bool
}

// Option configures a single search.
type Option func(*request) error

func newRequest(opts ...Option) (*request, error) {
	req := &request{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(req); err != nil {
			return nil, fmt.Errorf("invalid search option: %w", err)
		}
	}
	if len(req.libs) == 0 {
		return nil, ErrLibRequired
	}
	return req, nil
}

// WithLib names the libraries the search must locate, bare of OS
// decoration: "ssl", not "libssl.so". At least one name is required per
// search. The Wildcard name matches everything.
func WithLib(names ...string) Option {
	return func(req *request) error {
		for _, name := range names {
			if name == "" {
				return errors.New("library name cannot be empty")
			}
		}
		req.libs = append(req.libs, names...)
		return nil
	}
}

// WithLibPath adds directories searched before the system path, in the
// order given. Directories that do not exist are skipped silently.
func WithLibPath(dirs ...string) Option {
	return func(req *request) error {
		for _, dir := range dirs {
			if dir == "" {
				return errors.New("library path cannot be empty")
			}
		}
		req.libPath = append(req.libPath, dirs...)
		return nil
	}
}

// WithSystemPath replaces the configured system directories for this
// search. Calling it with no arguments searches no system directories at
// all, confining the search to WithLibPath directories.
func WithSystemPath(dirs ...string) Option {
	return func(req *request) error {
		for _, dir := range dirs {
			if dir == "" {
				return errors.New("system path cannot be empty")
			}
		}
		req.systemPathSet = true
		req.systemPath = append(req.systemPath, dirs...)
		return nil
	}
}

// WithSymbol names symbols that must resolve, via a loader probe, across
// the set of accepted candidates. Each accepted candidate is probed at
// most once, and any symbol still unresolved at the end empties the
// whole result.
func WithSymbol(names ...string) Option {
	return func(req *request) error {
		for _, name := range names {
			if name == "" {
				return errors.New("symbol name cannot be empty")
			}
		}
		req.symbols = append(req.symbols, names...)
		return nil
	}
}

// WithVerify adds acceptance predicates run in order against every
// candidate. The first rejection discards the candidate without
// consuming its name, so a later directory can still satisfy it.
func WithVerify(fns ...VerifyFunc) Option {
	return func(req *request) error {
		for _, fn := range fns {
			if fn == nil {
				return errors.New("verify predicate cannot be nil")
			}
		}
		req.verify = append(req.verify, fns...)
		return nil
	}
}

// WithRecursive expands caller-supplied directories to include all
// nested subdirectories. System directories are never expanded.
func WithRecursive(recursive bool) Option {
	return func(req *request) error {
		req.recursive = recursive
		return nil
	}
}

// WithResolveLinkerScripts substitutes candidates that are GNU ld linker
// scripts (as /usr/lib/libc.so commonly is) with the first library the
// script groups.
func WithResolveLinkerScripts(resolve bool) Option {
	return func(req *request) error {
		req.resolveLinkerScripts = resolve
		return nil
	}
}

// WithFallback registers providers consulted for extra search
// directories when the primary pass leaves library names unmet.
func WithFallback(fallbacks ...Fallback) Option {
	return func(req *request) error {
		for _, f := range fallbacks {
			if f == nil {
				return errors.New("fallback cannot be nil")
			}
		}
		req.fallbacks = append(req.fallbacks, fallbacks...)
		return nil
	}
}
