package memcache

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Stats is a snapshot of server statistics, keyed by stat name.
type Stats map[string]string

// Get returns the raw value of a stat.
func (s Stats) Get(name string) (string, bool) {
	value, ok := s[name]
	return value, ok
}

// Uint parses a counter stat.
func (s Stats) Uint(name string) (uint64, error) {
	value, ok := s[name]
	if !ok {
		return 0, fmt.Errorf("stat %q not reported by server", name)
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stat %q is not a counter: %w", name, err)
	}
	return n, nil
}

// Names returns the stat names in sorted order.
func (s Stats) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Label turns a stat name into the label printed above its value:
// "total_items" becomes "total items is".
func Label(name string) string {
	return strings.ReplaceAll(name, "_", " ") + " is"
}
