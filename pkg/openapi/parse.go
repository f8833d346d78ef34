package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

// ParseObjects loads an OpenAPI document and converts every component schema
// carrying an x-chartspec-path extension back into an attribute object. The
// result is sorted by path.
func ParseObjects(ctx context.Context, raw []byte) ([]schema.Object, error) {
	doc, err := loadDocument(ctx, raw)
	if err != nil {
		return nil, err
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, nil
	}

	var out []schema.Object
	for _, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		path, ok := ref.Value.Extensions[ExtensionPath].(string)
		if !ok || strings.TrimSpace(path) == "" {
			continue
		}
		obj, err := convertObject(path, ref.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out, nil
}

// Component returns the exported object schema whose x-chartspec-path equals
// path, for use with VisitValues and CheckValues.
func Component(ctx context.Context, raw []byte, path string) (*openapi3.Schema, error) {
	doc, err := loadDocument(ctx, raw)
	if err != nil {
		return nil, err
	}
	if doc.Components != nil {
		for _, ref := range doc.Components.Schemas {
			if ref == nil || ref.Value == nil {
				continue
			}
			if got, _ := ref.Value.Extensions[ExtensionPath].(string); got == path {
				return ref.Value, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi parser: no component for %q", path)
}

func loadDocument(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	return doc, nil
}

func convertObject(path string, src *openapi3.Schema) (schema.Object, error) {
	obj := schema.Object{Description: src.Description}
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		obj.ParentPath = path[:idx]
		obj.Name = path[idx+1:]
	} else {
		obj.Name = path
	}

	for _, name := range propertyOrder(src) {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			return schema.Object{}, fmt.Errorf("openapi parser: %s.%s: unresolved property schema", path, name)
		}
		obj.Attributes = append(obj.Attributes, convertAttribute(name, ref.Value))
	}
	return obj, nil
}

func convertAttribute(name string, src *openapi3.Schema) schema.Attribute {
	attr := schema.Attribute{
		Name:        name,
		Type:        valueType(src.Type),
		Description: src.Description,
	}
	if src.Min != nil {
		value := *src.Min
		attr.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		attr.Maximum = &value
	}
	return attr
}

func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(src.Properties))
	var names []string
	if raw, ok := src.Extensions[ExtensionOrder].([]any); ok {
		for _, item := range raw {
			name, ok := item.(string)
			if !ok {
				continue
			}
			if _, exists := src.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	var rest []string
	for name := range src.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func valueType(types *openapi3.Types) schema.ValueType {
	if types == nil {
		return schema.ValueTypeNumber
	}
	switch {
	case types.Is(openapi3.TypeInteger):
		return schema.ValueTypeInteger
	case types.Is(openapi3.TypeBoolean):
		return schema.ValueTypeBoolean
	case types.Is(openapi3.TypeString):
		return schema.ValueTypeString
	default:
		return schema.ValueTypeNumber
	}
}
