package statetree

import (
	"fmt"
	"strings"
)

// Path identifies a state by its full, normalized path from the root.
// Segments are joined by '.' (concurrent) or '/' (exclusive); the empty
// path denotes the root. A path's last separator decides how its parent
// composes it with its siblings.
type Path string

// Root is the path of the implicit root state.
const Root Path = ""

const (
	// SepConcurrent joins children that are all active at once.
	SepConcurrent = '.'
	// SepVariable joins children of which exactly one is active at a time.
	SepVariable = '/'
)

// NormalizePath trims and lower-cases s, validating it against the path
// character class [A-Za-z0-9./-]. An empty or all-space string normalizes
// to Root. Anything else returns ErrBadPath.
func NormalizePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Root, nil
	}
	for _, r := range s {
		if !isPathRune(r) {
			return Root, fmt.Errorf("%w: %q", ErrBadPath, s)
		}
	}
	return Path(strings.ToLower(s)), nil
}

func isPathRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '/' || r == '-':
		return true
	}
	return false
}

// ValidName reports whether s is a legal state short name ([A-Za-z0-9-]+).
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '.' || r == '/' || !isPathRune(r) {
			return false
		}
	}
	return true
}

// Split breaks a non-root path at its last separator into the parent path,
// the separator, and the short name. Paths without a separator, or with a
// malformed final segment, are rejected; every addressable state therefore
// starts with the separator that attaches it to the root.
func (p Path) Split() (parent Path, sep byte, name string, err error) {
	s := string(p)
	i := strings.LastIndexAny(s, "./")
	if i < 0 {
		return Root, 0, "", fmt.Errorf("%w: %q has no separator", ErrBadPath, s)
	}
	name = s[i+1:]
	if !ValidName(name) {
		return Root, 0, "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return Path(s[:i]), s[i], name, nil
}

// Name returns the last segment of the path (empty for the root).
func (p Path) Name() string {
	if i := strings.LastIndexAny(string(p), "./"); i >= 0 {
		return string(p)[i+1:]
	}
	return string(p)
}

func (p Path) join(sep byte, name string) Path {
	return Path(string(p) + string(rune(sep)) + name)
}
