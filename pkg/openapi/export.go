package openapi

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

const (
	// ExtensionPath records the dotted location of an exported object.
	ExtensionPath = "x-chartspec-path"
	// ExtensionOrder records attribute declaration order, which OpenAPI
	// property maps do not preserve.
	ExtensionOrder = "x-chartspec-order"
	// ExtensionPolicy records how unrecognized keys are handled.
	ExtensionPolicy = "x-chartspec-extensions"
)

// ObjectSchema converts an attribute object into an OpenAPI object schema.
// Under validators.ExtensionReject additional properties are disallowed.
func ObjectSchema(obj schema.Object, policy validators.ExtensionPolicy) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = obj.Path()
	out.Description = obj.Description

	order := make([]any, 0, len(obj.Attributes))
	for _, attr := range obj.Attributes {
		out.WithProperty(attr.Name, attributeSchema(attr))
		order = append(order, attr.Name)
	}

	if policy == "" {
		policy = validators.ExtensionReject
	}
	if policy == validators.ExtensionReject {
		out.WithoutAdditionalProperties()
	}

	out.Extensions = map[string]any{
		ExtensionPath:   obj.Path(),
		ExtensionOrder:  order,
		ExtensionPolicy: string(policy),
	}
	return out
}

func attributeSchema(attr schema.Attribute) *openapi3.Schema {
	var out *openapi3.Schema
	switch attr.Type {
	case schema.ValueTypeInteger:
		out = openapi3.NewIntegerSchema()
	case schema.ValueTypeBoolean:
		out = openapi3.NewBoolSchema()
	case schema.ValueTypeString:
		out = openapi3.NewStringSchema()
	default:
		out = openapi3.NewFloat64Schema()
	}
	out.Description = attr.Description
	if attr.Minimum != nil {
		out.WithMin(*attr.Minimum)
	}
	if attr.Maximum != nil {
		out.WithMax(*attr.Maximum)
	}
	return out
}

// Components collects the object schemas keyed by dotted path.
func Components(policy validators.ExtensionPolicy, objs ...schema.Object) *openapi3.Components {
	schemas := make(openapi3.Schemas, len(objs))
	for _, obj := range objs {
		schemas[obj.Path()] = openapi3.NewSchemaRef("", ObjectSchema(obj, policy))
	}
	return &openapi3.Components{Schemas: schemas}
}

// Document wraps the exported components into a minimal OpenAPI document.
func Document(title, version string, policy validators.ExtensionPolicy, objs ...schema.Object) *openapi3.T {
	return &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: Components(policy, objs...),
	}
}

// MarshalDocument renders Document as indented JSON.
func MarshalDocument(title, version string, policy validators.ExtensionPolicy, objs ...schema.Object) ([]byte, error) {
	payload, err := json.MarshalIndent(Document(title, version, policy, objs...), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi export: marshal: %w", err)
	}
	return payload, nil
}

// VisitValues checks a value map against an exported object schema using
// kin-openapi's JSON validator. All issues are collected.
func VisitValues(s *openapi3.Schema, values map[string]any) error {
	if s == nil {
		return fmt.Errorf("openapi export: schema is nil")
	}
	payload, err := jsonValues(values)
	if err != nil {
		return err
	}
	return s.VisitJSON(payload, openapi3.MultiErrors())
}

// ValueIssue is one violation reported by CheckValues. Property is empty when
// the violation concerns the object as a whole.
type ValueIssue struct {
	Property string
	Message  string
}

// CheckValues runs VisitValues and flattens the result into one issue per
// violated property, sorted by property name.
func CheckValues(s *openapi3.Schema, values map[string]any) []ValueIssue {
	err := VisitValues(s, values)
	if err == nil {
		return nil
	}
	var issues []ValueIssue
	collectIssues(err, &issues)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Property < issues[j].Property })
	return issues
}

func collectIssues(err error, out *[]ValueIssue) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, item := range e {
			collectIssues(item, out)
		}
	case *openapi3.SchemaError:
		issue := ValueIssue{Message: e.Reason}
		if pointer := e.JSONPointer(); len(pointer) > 0 {
			issue.Property = pointer[0]
		}
		*out = append(*out, issue)
	default:
		*out = append(*out, ValueIssue{Message: err.Error()})
	}
}

// jsonValues normalizes decoded config values (ints, nested maps) into the
// shapes kin-openapi expects from encoding/json.
func jsonValues(values map[string]any) (map[string]any, error) {
	payload := make(map[string]any, len(values))
	if len(values) == 0 {
		return payload, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("openapi export: encode values: %w", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("openapi export: decode values: %w", err)
	}
	return payload, nil
}
