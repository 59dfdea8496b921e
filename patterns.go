package checklib

import "regexp"

// Filename patterns per OS family. Capture group 1 is the bare library
// name; capture group 2, when present, is the version encoded in the
// filename.
var (
	soPattern    = regexp.MustCompile(`^lib(.*?)\.so(?:\.([0-9]+(?:\.[0-9]+)*))?$`)
	dylibPattern = regexp.MustCompile(`^lib(.*?)(?:\.([0-9]+(?:\.[0-9]+)*))?\.(?:dylib|bundle)$`)
	cygPattern   = regexp.MustCompile(`^cyg(.*?)(?:-([0-9]+))?\.dll$`)
	msysPattern  = regexp.MustCompile(`^msys-(.*?)(?:-([0-9]+))?\.dll$`)
	dllPattern   = regexp.MustCompile(`(?i)^(?:lib)?(.*?)(?:-([0-9]+))?\.dll$`)
)

// PatternsFor returns the ordered filename patterns that recognize shared
// libraries for the given OS identifier. Identifiers follow runtime.GOOS,
// with "cygwin" and "msys" accepted for the corresponding POSIX emulation
// environments; anything unrecognized gets the plain POSIX patterns. The
// first matching pattern wins for a given directory entry.
func PatternsFor(goos string) []*regexp.Regexp {
	switch goos {
	case "windows":
		return []*regexp.Regexp{dllPattern}
	case "msys":
		return []*regexp.Regexp{msysPattern}
	case "cygwin":
		return []*regexp.Regexp{soPattern, cygPattern}
	case "darwin":
		return []*regexp.Regexp{soPattern, dylibPattern}
	default:
		return []*regexp.Regexp{soPattern}
	}
}

// Candidate is a directory entry tentatively identified as a shared
// library by filename pattern match, pending verification. Verification
// predicates receive the candidate before it is accepted.
type Candidate struct {
	// Name is the bare library name without OS prefix/suffix decoration,
	// for example "ssl" for libssl.so.3.
	Name string
	// Path is the absolute path of the matched entry.
	Path string
	// Version is the version string encoded in the filename, if any
	// ("3" for libssl.so.3, "1.2.3" for libfoo.1.2.3.dylib).
	Version string
	// IsSymlink reports whether the directory entry is a symbolic link.
	IsSymlink bool
}

// matchEntry applies the pattern table to one filename, extracting the
// bare name and the filename version. ok is false when no pattern
// matches.
func matchEntry(patterns []*regexp.Regexp, filename string) (name, version string, ok bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		if len(m) > 2 {
			version = m[2]
		}
		return m[1], version, true
	}
	return "", "", false
}
