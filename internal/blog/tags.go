package blog

import (
	"slices"
	"strings"
)

// Tags is a set of tags: lower case, trimmed, unique and sorted.
type Tags []string

func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NewTags normalizes the given tags into a set, dropping empty ones.
// Each element may itself be a comma separated list.
func NewTags(tags ...string) Tags {
	set := make(Tags, 0, len(tags))
	for _, raw := range tags {
		for _, tag := range strings.Split(raw, ",") {
			if tag = NormalizeTag(tag); tag != "" {
				set = append(set, tag)
			}
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// ParseTags parses a comma separated tags input, e.g. "Go, backend,go".
func ParseTags(raw string) Tags {
	return NewTags(raw)
}

func (t Tags) Contains(tag string) bool {
	_, found := slices.BinarySearch(t, NormalizeTag(tag))
	return found
}

func (t Tags) String() string {
	return strings.Join(t, ",")
}
