// Package checklib locates dynamically-loadable shared libraries on the
// host filesystem and verifies their identity before native-interop code
// commits to them.
//
// A search names one or more libraries bare of OS decoration ("ssl"
// rather than libssl.so) and walks caller-supplied directories followed
// by the OS-conventional system directories, recognizing files by per-OS
// filename patterns. Matches can additionally be gated on exported
// symbols, checked through a short-lived load/probe/unload cycle that
// never exposes the handle, and on arbitrary caller predicates:
//
//	path, err := checklib.Find(
//		checklib.WithLib("ssl"),
//		checklib.WithSymbol("SSL_new"),
//	)
//
// The package performs discovery only. It is not a loader, a linker or a
// binary parser, and it keeps no cache between calls: every search walks
// the directories afresh.
package checklib

import (
	"log/slog"
	"sort"

	"github.com/amikos-tech/checklib/internal/ldscript"
)

// Find locates the first matching library using the default Config and
// returns its path. On failure the path is empty and the error carries
// the diagnostic, *NotFoundError when the search itself succeeded but
// left requirements unmet.
func Find(opts ...Option) (string, error) { return Default().Find(opts...) }

// FindAll locates every requested library using the default Config. See
// Config.FindAll.
func FindAll(opts ...Option) ([]string, error) { return Default().FindAll(opts...) }

// Find runs a search and returns the first located path. When the
// search leaves requirements unmet the path may still name a partial
// discovery; callers that only care about success can test err == nil.
func (c *Config) Find(opts ...Option) (string, error) {
	paths, err := c.FindAll(opts...)
	if len(paths) == 0 {
		return "", err
	}
	return paths[0], err
}

// FindAll runs a search and returns all located paths in discovery
// order: for each searched directory in priority order, its accepted
// candidates sorted by path. Each requested name is satisfied by at
// most one candidate. With unmet requirements FindAll returns the
// partial result alongside a *NotFoundError naming what is missing,
// except that an unresolved symbol empties the result entirely: a
// symbol requirement is a property of the whole set, and a set that
// cannot resolve it is no use to dynamic binding.
func (c *Config) FindAll(opts ...Option) ([]string, error) {
	req, err := newRequest(opts...)
	if err != nil {
		return nil, err
	}
	return c.findAll(req)
}

// searchState is the bookkeeping of one search pass: which names and
// symbols are still outstanding, and what has been accepted so far.
type searchState struct {
	names       map[string]bool // every requested name, for scan filtering
	outstanding map[string]bool // names not yet satisfied
	symbols     map[string]bool // symbols not yet resolved
	wildcard    bool
	found       []string
}

func (c *Config) findAll(req *request) ([]string, error) {
	state := &searchState{
		names:       make(map[string]bool, len(req.libs)),
		outstanding: make(map[string]bool, len(req.libs)),
		symbols:     make(map[string]bool, len(req.symbols)),
	}
	for _, name := range req.libs {
		if name == Wildcard {
			state.wildcard = true
			continue
		}
		state.names[name] = true
		state.outstanding[name] = true
	}
	for _, name := range req.symbols {
		state.symbols[name] = true
	}

	c.searchDirs(req, c.searchPath(req), state)

	// Fallback providers only hear about missing libraries. Missing
	// symbols do not trigger them: a fallback cannot add symbols to
	// libraries already accepted.
	if len(state.outstanding) > 0 && len(req.fallbacks) > 0 {
		missing := sortedKeys(state.outstanding)
		var extra []string
		for _, fb := range req.fallbacks {
			dirs := fb.LibDirs(missing)
			c.logger().Debug("fallback consulted",
				slog.Any("missing", missing), slog.Any("dirs", dirs))
			extra = append(extra, dirs...)
		}
		c.searchDirs(req, expandAll(extra, req.recursive), state)
	}

	if len(state.outstanding) > 0 || len(state.symbols) > 0 {
		nferr := &NotFoundError{
			Libs:    sortedKeys(state.outstanding),
			Symbols: sortedKeys(state.symbols),
		}
		if len(state.symbols) > 0 {
			return nil, nferr
		}
		return state.found, nferr
	}
	return state.found, nil
}

// searchPath builds the effective directory list: caller-supplied
// directories (recursively expanded on request) ahead of the system
// path. An explicit zero-directory system path searches none.
func (c *Config) searchPath(req *request) []string {
	var dirs []string
	dirs = append(dirs, expandAll(req.libPath, req.recursive)...)
	if req.systemPathSet {
		return append(dirs, req.systemPath...)
	}
	return append(dirs, c.SystemPath...)
}

// expandAll applies recursive directory expansion when enabled.
func expandAll(dirs []string, recursive bool) []string {
	if !recursive {
		return dirs
	}
	var out []string
	for _, dir := range dirs {
		out = append(out, expandRecursive(dir)...)
	}
	return out
}

// searchDirs walks dirs in order, accepting candidates into state.
// Outside the listing modes, a name already satisfied is skipped in
// later directories; rejected candidates consume nothing.
func (c *Config) searchDirs(req *request, dirs []string, state *searchState) {
	log := c.logger()
	for _, dir := range dirs {
		cands := c.scanDir(dir, state.names, state.wildcard)
		if len(cands) > 0 {
			log.Debug("scanned directory",
				slog.String("dir", dir), slog.Int("candidates", len(cands)))
		}
		for _, cand := range cands {
			if !state.wildcard && !req.all && !state.outstanding[cand.Name] {
				continue
			}
			if req.resolveLinkerScripts {
				if target, ok := ldscript.Resolve(cand.Path); ok {
					log.Debug("resolved linker script",
						slog.String("script", cand.Path), slog.String("target", target))
					cand.Path = target
				}
			}
			if !accepted(req, cand) {
				log.Debug("candidate rejected by verification",
					slog.String("name", cand.Name), slog.String("path", cand.Path))
				continue
			}
			delete(state.outstanding, cand.Name)
			if len(state.symbols) > 0 {
				c.probe(cand.Path, state.symbols)
			}
			path := cand.Path
			if !state.wildcard && !req.all {
				// Listings (wildcard, Where) keep symlinks as found;
				// named searches report what the links resolve to.
				path = resolveSymlinks(path)
			}
			log.Debug("accepted candidate",
				slog.String("name", cand.Name), slog.String("path", path))
			state.found = append(state.found, path)
		}
	}
}

// accepted runs the verification predicates in order; the first
// rejection discards the candidate.
func accepted(req *request, cand Candidate) bool {
	for _, verify := range req.verify {
		if !verify(cand) {
			return false
		}
	}
	return true
}

// probe opens the accepted candidate once and strikes every symbol it
// resolves off the outstanding set. A candidate that fails to open
// resolves nothing; the search continues.
func (c *Config) probe(path string, symbols map[string]bool) {
	log := c.logger()
	if c.Loader == nil {
		log.Debug("no loader configured; symbols stay unresolved",
			slog.String("path", path))
		return
	}
	handle, err := c.Loader.Open(path)
	if err != nil {
		log.Debug("symbol probe could not open library",
			slog.String("path", path), slog.Any("error", err))
		return
	}
	for name := range symbols {
		if c.Loader.Symbol(handle, name) {
			delete(symbols, name)
		}
	}
	if err := c.Loader.Close(handle); err != nil {
		log.Debug("symbol probe could not close library",
			slog.String("path", path), slog.Any("error", err))
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
