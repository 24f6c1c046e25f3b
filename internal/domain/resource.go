package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NamedResource is the {name, url} pair PokeAPI uses for every cross reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID returns the numeric identifier embedded in the resource URL.
func (r NamedResource) ID() (int, error) {
	return ParseResourceID(r.URL)
}

// ParseResourceID extracts the numeric path segment that precedes the trailing
// slash of a PokeAPI reference, e.g. ".../evolution-chain/67/" -> 67.
func ParseResourceID(url string) (int, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return 0, fmt.Errorf("no id segment in url %q", url)
	}

	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid id segment in url %q: %w", url, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %d in url %q", id, url)
	}

	return id, nil
}
