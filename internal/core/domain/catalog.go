// Package domain contains the core types of the template catalog.
package domain

import "slices"

// TemplateEntry is a single downloadable template advertised by a catalog.
type TemplateEntry struct {
	// ID is unique within a catalog.
	ID int
	// Version is an opaque token compared by equality only.
	Version string
	// File is the asset path relative to the template directory, slash-separated.
	File string
}

// ScriptInfo describes the shared script bundle.
type ScriptInfo struct {
	// Version is only meaningful when HasVersion is true.
	Version    string
	HasVersion bool
	// URL is empty when the manifest carries no download link.
	URL string
}

// Catalog is the parsed form of a manifest.
// A catalog is built fresh for every pass and never mutated afterwards.
type Catalog struct {
	Entries map[int]TemplateEntry
	Script  ScriptInfo
	// Skipped counts manifest entries dropped for missing or invalid fields.
	Skipped int
}

// NewCatalog returns an empty catalog with a non-nil entry map.
func NewCatalog() *Catalog {
	return &Catalog{Entries: make(map[int]TemplateEntry)}
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id int) (TemplateEntry, bool) {
	if c == nil {
		return TemplateEntry{}, false
	}
	e, ok := c.Entries[id]
	return e, ok
}

// IDs returns the entry ids in ascending order.
func (c *Catalog) IDs() []int {
	if c == nil {
		return nil
	}
	ids := make([]int, 0, len(c.Entries))
	for id := range c.Entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}
