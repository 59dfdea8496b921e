package checklib

import (
	"io"
	"log/slog"
	"regexp"
	"runtime"
	"sync"
)

// Config carries the process-level knobs of a search: the filename
// pattern table, the default system path, the dynamic loader used for
// symbol probes, and an optional logger. Treat a Config as immutable
// once in use; build a new one rather than mutating a shared instance.
type Config struct {
	// OS is the identifier the pattern table and system path were derived
	// from. Informational.
	OS string
	// Patterns is the ordered filename pattern table. See PatternsFor.
	Patterns []*regexp.Regexp
	// SystemPath lists the system library directories searched after any
	// caller-supplied directories. See SystemPathFor.
	SystemPath []string
	// Loader probes accepted candidates for exported symbols.
	Loader Loader
	// Logger receives debug traces of the search. Nil discards them.
	Logger *slog.Logger
}

// NewConfig builds a Config for the given OS identifier, with the
// derived pattern table and system path and the platform loader.
func NewConfig(goos string) *Config {
	return &Config{
		OS:         goos,
		Patterns:   PatternsFor(goos),
		SystemPath: SystemPathFor(goos),
		Loader:     newDefaultLoader(),
	}
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
)

// Default returns the process-wide Config, built for runtime.GOOS on
// first use. The package-level search functions use it.
func Default() *Config {
	defaultOnce.Do(func() {
		defaultCfg = NewConfig(runtime.GOOS)
	})
	return defaultCfg
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}
