package git

import (
	"strconv"
	"strings"
)

// StatusEntry is one line of `git status --porcelain` output.
type StatusEntry struct {
	// Code is the two-letter XY status, e.g. " M", "A ", "R ", "??".
	Code string
	// Path is relative to the repository root. For renames and copies it is
	// the destination.
	Path string
	// OrigPath is the source of a rename or copy; empty otherwise.
	OrigPath string
	// IsDir is set when git reported a directory (untracked dirs end in "/").
	IsDir bool
}

// Deleted reports whether either side of the status marks the path as removed.
func (e StatusEntry) Deleted() bool { return strings.ContainsRune(e.Code, 'D') }

// Ignored reports whether the entry is an ignored path ("!!").
func (e StatusEntry) Ignored() bool { return strings.ContainsRune(e.Code, '!') }

// Renamed reports whether the entry is a rename or copy.
func (e StatusEntry) Renamed() bool { return strings.ContainsAny(e.Code, "RC") }

// Changed reports whether the path still exists in the working tree with
// content worth looking at: added, modified, renamed, copied or untracked.
func (e StatusEntry) Changed() bool { return !e.Deleted() && !e.Ignored() }

// ParseStatus parses porcelain v1 output. Malformed lines are skipped.
func ParseStatus(out string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		entry, ok := ParseStatusLine(strings.TrimRight(line, "\r"))
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ParseStatusLine parses a single porcelain line of the form "XY PATH" or
// "XY ORIG -> PATH".
func ParseStatusLine(line string) (StatusEntry, bool) {
	if len(line) < 4 {
		return StatusEntry{}, false
	}

	entry := StatusEntry{Code: line[:2]}
	rest := line[3:]

	if entry.Renamed() {
		if orig, dest, found := splitRename(rest); found {
			entry.OrigPath = unquotePath(orig)
			rest = dest
		}
	}

	path := unquotePath(rest)
	if path == "" {
		return StatusEntry{}, false
	}
	if strings.HasSuffix(path, "/") {
		entry.IsDir = true
		path = strings.TrimRight(path, "/")
	}
	entry.Path = path
	return entry, true
}

// splitRename splits "ORIG -> PATH". A quoted source may itself contain
// " -> ", so the separator is looked for after the closing quote.
func splitRename(rest string) (orig, dest string, found bool) {
	if strings.HasPrefix(rest, `"`) {
		if quoted, err := strconv.QuotedPrefix(rest); err == nil {
			if dest, ok := strings.CutPrefix(rest[len(quoted):], " -> "); ok {
				return quoted, dest, true
			}
			return "", "", false
		}
	}
	return strings.Cut(rest, " -> ")
}

// unquotePath trims a path and decodes git's C-style quoting, used when the
// path contains spaces, quotes or non-ASCII bytes.
func unquotePath(raw string) string {
	path := strings.TrimSpace(raw)
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		if decoded, err := strconv.Unquote(path); err == nil {
			return decoded
		}
	}
	return path
}
