// Package changed discovers the files a formatter should look at: paths
// reported by git status, narrowed by extension and exclusion rules.
package changed

import (
	"path/filepath"
	"slices"
	"strings"
)

// ExtensionSet is the set of accepted file suffixes, each with a leading dot.
// An empty set accepts every file.
type ExtensionSet map[string]struct{}

// ParseExtensions builds an ExtensionSet from a comma-separated list such as
// ".c,.cpp,.h" or the glob form build scripts tend to pass ("*.c,*.cpp").
// Leading '*' characters are stripped and a missing dot is added. Empty
// tokens are ignored.
func ParseExtensions(spec string) ExtensionSet {
	set := make(ExtensionSet)
	for _, token := range strings.Split(spec, ",") {
		ext := strings.TrimLeft(strings.TrimSpace(token), "*")
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Active reports whether the set filters anything.
func (s ExtensionSet) Active() bool { return len(s) > 0 }

// Match reports whether path carries an accepted extension.
// With an empty set every path matches; otherwise a path without an
// extension never does. Leading dots of the base name are not an
// extension, so ".c" and "..h" have none while ".gen.c" ends in ".c".
func (s ExtensionSet) Match(path string) bool {
	if !s.Active() {
		return true
	}
	ext := filepath.Ext(strings.TrimLeft(filepath.Base(path), "."))
	if ext == "" {
		return false
	}
	_, ok := s[ext]
	return ok
}

// List returns the extensions in sorted order.
func (s ExtensionSet) List() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Excludes is an ordered list of substrings; a path containing any of them
// is excluded. Matching is plain containment, no globbing.
type Excludes []string

// Match reports whether path contains any exclusion substring.
func (e Excludes) Match(path string) bool {
	for _, sub := range e {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}

// Filter combines the extension and exclusion rules.
type Filter struct {
	Extensions ExtensionSet
	Excludes   Excludes
}

// NewFilter parses an extension spec and pairs it with exclusion substrings.
func NewFilter(extensionSpec string, excludes []string) Filter {
	return Filter{
		Extensions: ParseExtensions(extensionSpec),
		Excludes:   Excludes(excludes),
	}
}

// Accept reports whether a file path should be handed to the formatter.
func (f Filter) Accept(path string) bool {
	return f.Extensions.Match(path) && !f.Excludes.Match(path)
}
