// Package seed holds the built-in listing dataset used as the search fallback
// and for populating an empty database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/search"
)

//go:embed listings.yaml
var builtin []byte

// Default returns the embedded listings.
func Default() ([]domain.Listing, error) {
	return Parse(builtin)
}

// Parse decodes a YAML list of listings and validates each one.
func Parse(data []byte) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := yaml.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse listings: %w", err)
	}

	seen := make(map[string]struct{}, len(listings))
	for i := range listings {
		l := &listings[i]
		if strings.TrimSpace(l.ID) == "" {
			return nil, fmt.Errorf("listing %d: id is required", i)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("listing %d: duplicate id %q", i, l.ID)
		}
		seen[l.ID] = struct{}{}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("listing %q: %w", l.ID, err)
		}
	}
	return listings, nil
}

// LoadFile reads and parses a listings file.
func LoadFile(path string) ([]domain.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}
	return Parse(data)
}

// Load returns the listings at path, or the embedded set when path is empty.
func Load(path string) ([]domain.Listing, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Dataset returns a search.Dataset backed by path. The file is read once,
// on first use; a read or parse error is returned on every call.
func Dataset(path string) search.Dataset {
	load := sync.OnceValues(func() ([]domain.Listing, error) { return Load(path) })
	return search.DatasetFunc(func(ctx context.Context) ([]domain.Listing, error) {
		listings, err := load()
		if err != nil {
			return nil, err
		}
		return search.StaticDataset(listings).Listings(ctx)
	})
}
