// Package icons resolves item identifiers to icon references.
//
// The index is a JSON object mapping identifiers to icon paths:
//
//	{"minecraft:oak_log": "block/oak_log.png", "diamond_sword": "item/diamond_sword.png"}
//
// Keys without a namespace get the default namespace. A reference is the
// configured base URL followed by the path.
package icons

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultNamespace applies to identifiers written without "namespace:".
const DefaultNamespace = "minecraft"

// Options configure how an index is built.
type Options struct {
	// IndexURL is where the JSON index is downloaded from.
	IndexURL string

	// BaseURL is prepended to every icon path.
	BaseURL string

	// DefaultNamespace replaces the package default when non-empty.
	DefaultNamespace string
}

func (o Options) namespace() string {
	if o.DefaultNamespace != "" {
		return strings.ToLower(o.DefaultNamespace)
	}
	return DefaultNamespace
}

// Index is an immutable icon lookup table. A nil *Index is valid and resolves
// nothing.
type Index struct {
	entries   map[string]string
	baseURL   string
	namespace string
}

// NewIndex builds an index from raw id -> path entries. Keys are normalized;
// entries with an empty path are skipped.
func NewIndex(entries map[string]string, opts Options) *Index {
	ix := &Index{
		entries:   make(map[string]string, len(entries)),
		baseURL:   opts.BaseURL,
		namespace: opts.namespace(),
	}
	for id, path := range entries {
		key, ok := ix.normalize(id)
		if !ok || strings.TrimSpace(path) == "" {
			continue
		}
		ix.entries[key] = strings.TrimSpace(path)
	}
	return ix
}

// Parse decodes a JSON index document.
func Parse(data []byte, opts Options) (*Index, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse icon index: %w", err)
	}
	return NewIndex(entries, opts), nil
}

// Getter downloads a URL.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetch downloads and parses the index at opts.IndexURL.
func Fetch(ctx context.Context, getter Getter, opts Options) (*Index, error) {
	if opts.IndexURL == "" {
		return nil, fmt.Errorf("icon index URL is not configured")
	}

	data, err := getter.Get(ctx, opts.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch icon index: %w", err)
	}
	return Parse(data, opts)
}

// Lookup returns the icon reference for mcID. The identifier is trimmed and
// lowercased; "" and "none" never resolve.
func (ix *Index) Lookup(mcID string) (string, bool) {
	if ix == nil {
		return "", false
	}
	key, ok := ix.normalize(mcID)
	if !ok {
		return "", false
	}
	path, found := ix.entries[key]
	if !found {
		return "", false
	}
	return ix.baseURL + path, true
}

// Len is the number of resolvable identifiers.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

func (ix *Index) normalize(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || id == "none" {
		return "", false
	}
	if !strings.Contains(id, ":") {
		id = ix.namespace + ":" + id
	}
	return id, true
}
