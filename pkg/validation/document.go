package validation

import (
	"context"
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-chartspec/pkg/config"
	"github.com/goliatone/go-chartspec/pkg/openapi"
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/traces/mesh3d"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

// Issue is a single validation failure. Path is a JSON pointer into the
// document, Field the dotted attribute path.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result collects every issue found in a document.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Options configures document validation.
type Options struct {
	// Registry resolves validators by attribute path. Defaults to
	// validators.Default.
	Registry *validators.Registry
	// Policy overrides the document's extension policy when set.
	Policy validators.ExtensionPolicy
	// Contract is a previously exported object schema, usually loaded with
	// openapi.Component. When set, values the validators accepted are also
	// checked against it and every disagreement is reported.
	Contract *openapi3.Schema
}

// ValidateDocument checks a config document without stopping at the first
// failure. Every attribute is validated independently.
func ValidateDocument(ctx context.Context, src schema.Source, raw []byte, opts Options) Result {
	result := Result{Valid: true}
	if src == nil {
		src = schema.SourceFromFS("config.yaml")
	}
	if err := ctx.Err(); err != nil {
		return result.fail(Issue{Message: err.Error()})
	}

	doc, err := schema.NewDocument(src, raw)
	if err != nil {
		return result.fail(issueFromError(err))
	}

	file, err := config.Decode(doc)
	if err != nil {
		return result.fail(issueFromError(err))
	}

	policy := opts.Policy
	if policy == "" {
		policy, err = validators.ParseExtensionPolicy(file.Extensions)
		if err != nil {
			return result.fail(Issue{Path: "/extensions", Field: "extensions", Message: trimPrefixes(err.Error())})
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = validators.Default
	}

	ext := validators.Extensions{Policy: policy, Allowed: file.AllowedExtensions}
	obj := mesh3d.LightingSchema
	seen := make(map[string]string, len(file.Mesh3D.Lighting))
	canonical := make(map[string]string, len(file.Mesh3D.Lighting))
	for _, key := range validators.SortedKeys(file.Mesh3D.Lighting) {
		value := file.Mesh3D.Lighting[key]
		attr, ok := obj.Attribute(key)
		if !ok {
			stored, err := ext.Admit(obj.Path(), key, obj.Names())
			if err != nil {
				result = result.fail(Issue{
					Path:    pointer(obj.Path(), key),
					Field:   obj.AttributePath(key),
					Message: messageFromError(err),
				})
			}
			if stored {
				canonical[key] = key
			}
			continue
		}
		if first, dup := seen[attr.Name]; dup {
			result = result.fail(Issue{
				Path:    pointer(obj.Path(), key),
				Field:   obj.AttributePath(attr.Name),
				Message: messageFromError(validators.DuplicateProperty(obj.AttributePath(attr.Name), first, key)),
			})
			continue
		}
		seen[attr.Name] = key
		canonical[attr.Name] = key
		if _, err := registry.Validate(obj.AttributePath(attr.Name), value); err != nil {
			result = result.fail(Issue{
				Path:    pointer(obj.Path(), key),
				Field:   obj.AttributePath(attr.Name),
				Message: messageFromError(err),
			})
		}
	}
	if opts.Contract != nil {
		result = checkContract(result, opts.Contract, obj, file.Mesh3D.Lighting, canonical)
	}
	return result
}

// checkContract reports values the contract rejects that have no issue yet.
// canonical maps declared attribute names and stored extension keys to the key
// used in the document.
func checkContract(result Result, contract *openapi3.Schema, obj schema.Object, values map[string]any, canonical map[string]string) Result {
	reported := make(map[string]bool, len(result.Issues))
	for _, issue := range result.Issues {
		reported[issue.Path] = true
	}

	payload := make(map[string]any, len(canonical))
	for name, key := range canonical {
		if values[key] != nil {
			payload[name] = values[key]
		}
	}
	for _, found := range openapi.CheckValues(contract, payload) {
		issue := Issue{Message: "contract: " + found.Message}
		if found.Property != "" {
			key := found.Property
			if original, ok := canonical[key]; ok {
				key = original
			}
			issue.Path = pointer(obj.Path(), key)
			issue.Field = obj.AttributePath(found.Property)
			if reported[issue.Path] {
				continue
			}
		}
		result = result.fail(issue)
	}
	return result
}

func (r Result) fail(issue Issue) Result {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
	return r
}

func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}
	return Issue{Message: messageFromError(err)}
}

func messageFromError(err error) string {
	var valueErr *validators.ValueError
	if errors.As(err, &valueErr) {
		msg := valueErr.Kind.Error()
		if valueErr.Reason != "" {
			msg += ": " + valueErr.Reason
		}
		return msg
	}
	return trimPrefixes(err.Error())
}

func trimPrefixes(msg string) string {
	msg = strings.TrimSpace(msg)
	for _, prefix := range []string{"config loader: ", "config: ", "schema: ", "validators: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return strings.TrimSpace(msg)
}

// pointer converts a dotted object path plus key into a JSON pointer,
// escaping "~" and "/" per RFC 6901.
func pointer(objectPath, key string) string {
	segments := strings.Split(objectPath, ".")
	segments = append(segments, key)
	var b strings.Builder
	for _, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}
