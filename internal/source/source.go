// Package source fetches the lines pullview displays. A refresh calls Fetch
// once; sources keep no state between calls.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by Open for locations it cannot serve.
var ErrUnsupported = errors.New("unsupported source")

// Source produces the current content of a feed.
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
	Name() string
}

// Open picks a Source for location: http(s) URLs use HTTP, anything else
// is read as a local file keeping the last tail lines.
func Open(location string, tail int) (Source, error) {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return nil, fmt.Errorf("open source: %w: empty location", ErrUnsupported)
	}
	if scheme, _, ok := strings.Cut(loc, "://"); ok {
		switch strings.ToLower(scheme) {
		case "http", "https":
			return NewHTTP(loc)
		default:
			return nil, fmt.Errorf("open source: %w: scheme %q", ErrUnsupported, scheme)
		}
	}
	return &File{Path: loc, Tail: tail}, nil
}
