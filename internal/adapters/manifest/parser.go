// Package manifest implements the ManifestParser port for the catalog service's JSON manifests.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"path"
	"strings"

	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestParser = (*Parser)(nil)

var errNotObject = zerr.New("payload is not a JSON object")

// reserved names live next to the template assets and must never be overwritten by one.
var reserved = map[string]struct{}{
	domain.ScriptFileName:         {},
	domain.ManifestFileName:       {},
	domain.PurchaseRecordFileName: {},
}

type wireManifest struct {
	ScriptVersion json.RawMessage `json:"template_js_version"`
	ScriptLink    json.RawMessage `json:"template_js_link"`
	Templates     json.RawMessage `json:"templates"`
}

type wireEntry struct {
	ID      json.RawMessage `json:"id"`
	Version json.RawMessage `json:"version"`
	File    json.RawMessage `json:"file"`
}

// Parser decodes catalog manifests.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data into a catalog.
func (p *Parser) Parse(data []byte) (*domain.Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Join(domain.ErrManifestMalformed, errNotObject)
	}

	var wire wireManifest
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, errors.Join(domain.ErrManifestMalformed, err)
	}

	catalog := domain.NewCatalog()
	catalog.Script.Version, catalog.Script.HasVersion = optionalString(wire.ScriptVersion)
	catalog.Script.URL, _ = optionalString(wire.ScriptLink)

	if isAbsent(wire.Templates) {
		return catalog, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(wire.Templates, &items); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestMalformed, err), "field", "templates")
	}

	for _, raw := range items {
		entry, ok := decodeEntry(raw)
		if !ok {
			catalog.Skipped++
			continue
		}
		catalog.Entries[entry.ID] = entry
	}

	return catalog, nil
}

func decodeEntry(raw json.RawMessage) (domain.TemplateEntry, bool) {
	var wire wireEntry
	if err := json.Unmarshal(raw, &wire); err != nil {
		return domain.TemplateEntry{}, false
	}

	id, ok := integer(wire.ID)
	if !ok {
		return domain.TemplateEntry{}, false
	}

	version, ok := optionalString(wire.Version)
	if !ok {
		return domain.TemplateEntry{}, false
	}

	name, ok := optionalString(wire.File)
	if !ok {
		return domain.TemplateEntry{}, false
	}

	file, ok := CleanFile(name)
	if !ok {
		return domain.TemplateEntry{}, false
	}

	return domain.TemplateEntry{ID: id, Version: version, File: file}, true
}

// CleanFile normalizes a manifest file value to a slash-separated path inside
// the template directory. It rejects empty, absolute and escaping paths as well as
// names reserved for the store's own files.
func CleanFile(name string) (string, bool) {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	if name == "" || path.IsAbs(name) {
		return "", false
	}

	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	if _, ok := reserved[cleaned]; ok {
		return "", false
	}

	return cleaned, true
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// optionalString decodes raw when it holds a JSON string.
func optionalString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// integer decodes raw when it holds an integral JSON number.
func integer(raw json.RawMessage) (int, bool) {
	if isAbsent(raw) || raw[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
