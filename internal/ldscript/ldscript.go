// Package ldscript recognizes GNU ld linker scripts that stand in for
// shared libraries, as /usr/lib/libc.so does on glibc systems, and
// extracts the real library they group.
package ldscript

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// maxScriptSize caps how much of a candidate file is inspected. Real
// linker scripts are a few hundred bytes; anything textual past this is
// not one.
const maxScriptSize = 64 * 1024

var groupRE = regexp.MustCompile(`GROUP\s*\(\s*([^\s)]+)`)

// Resolve inspects the file at path and, when it is a textual linker
// script carrying a GROUP directive, returns the path of the first
// grouped member. Relative members resolve against the script's
// directory. ok is false for binaries, unreadable files, scripts
// without a GROUP directive, and members that do not exist.
func Resolve(path string) (target string, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	buf := make([]byte, maxScriptSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", false
	}
	data := buf[:n]

	// Shared objects start with binary headers; a NUL byte anywhere in
	// the prefix rules out a linker script.
	if bytes.IndexByte(data, 0) >= 0 {
		return "", false
	}

	m := groupRE.FindSubmatch(data)
	if m == nil {
		return "", false
	}
	member := string(m[1])
	if !filepath.IsAbs(member) {
		member = filepath.Join(filepath.Dir(path), member)
	}
	if _, err := os.Stat(member); err != nil {
		return "", false
	}
	return member, true
}
