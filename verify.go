package checklib

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VerifyFunc is a candidate acceptance predicate. Returning false
// rejects the candidate without consuming its name, so the search can
// still satisfy the name from a later candidate or directory.
type VerifyFunc func(c Candidate) bool

// VersionAtLeast accepts candidates whose filename version is at least
// min. Candidates carrying no filename version are rejected: an
// unversioned name proves nothing about the version requirement. min
// must parse as a version ("3", "1.2", "1.2.3") or VersionAtLeast
// panics.
func VersionAtLeast(min string) VerifyFunc {
	want := semver.MustParse(coerceVersion(min))
	return func(c Candidate) bool {
		got, err := semver.NewVersion(coerceVersion(c.Version))
		if err != nil {
			return false
		}
		return !got.LessThan(want)
	}
}

// VersionBetween accepts candidates whose filename version lies in the
// inclusive range [min, max]. Unversioned candidates are rejected.
func VersionBetween(min, max string) VerifyFunc {
	lo := semver.MustParse(coerceVersion(min))
	hi := semver.MustParse(coerceVersion(max))
	return func(c Candidate) bool {
		got, err := semver.NewVersion(coerceVersion(c.Version))
		if err != nil {
			return false
		}
		return !got.LessThan(lo) && !got.GreaterThan(hi)
	}
}

// VersionConstraint accepts candidates whose filename version satisfies
// the given constraint expression, for example ">= 1.1" or "^3.0".
// Unversioned candidates are rejected. Invalid expressions panic.
func VersionConstraint(expr string) VerifyFunc {
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		panic(fmt.Sprintf("checklib: invalid version constraint %q: %v", expr, err))
	}
	return func(c Candidate) bool {
		got, err := semver.NewVersion(coerceVersion(c.Version))
		if err != nil {
			return false
		}
		return constraint.Check(got)
	}
}

// coerceVersion trims a filename version to the three dotted components
// semantic versioning carries: "1.2.3.4" compares as "1.2.3".
func coerceVersion(v string) string {
	parts := strings.Split(v, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}
