package schema

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// Format identifies the encoding of a config document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a config payload as read from its source. The payload is
// immutable; Raw hands out copies.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw and pairs it with src. Blank payloads are rejected so
// decoders never see an empty document.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// Source reports where the payload was read from.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload bytes.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location is the path or URL used in error messages and issue reports.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format guesses the payload encoding from the location extension, falling
// back to sniffing the first non-blank byte.
func (d Document) Format() Format {
	switch strings.ToLower(filepath.Ext(d.Location())) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(d.raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
