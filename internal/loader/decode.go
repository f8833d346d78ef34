package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

// DecodeDocument decodes doc into a map using the decoder matching
// doc.Format(). The top level must be a mapping.
func DecodeDocument(doc schema.Document) (map[string]any, error) {
	raw := doc.Raw()
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("config loader: document is empty")
	}

	var (
		out map[string]any
		err error
	)
	switch doc.Format() {
	case schema.FormatJSON:
		out, err = decodeJSON(raw)
	default:
		out, err = decodeYAML(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("config loader: %s: parse %s: %w", doc.Location(), doc.Format(), err)
	}
	if out == nil {
		return nil, fmt.Errorf("config loader: %s: top level must be a mapping", doc.Location())
	}
	return out, nil
}

func decodeJSON(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return out, nil
}

func decodeYAML(raw []byte) (map[string]any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if root := node.Content[0]; root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", root.Line)
	}
	var out map[string]any
	if err := node.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
