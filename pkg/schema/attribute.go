package schema

import (
	"sort"
	"strings"
)

// ValueType enumerates the attribute value kinds understood by validators.
type ValueType string

const (
	ValueTypeNumber  ValueType = "number"
	ValueTypeInteger ValueType = "integer"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeString  ValueType = "string"
)

// Attribute declares a single named property of an attribute object. Name is
// the wire name used by the chart specification (lowercase, no separators);
// Field is the Go-facing identifier.
type Attribute struct {
	Name        string
	Field       string
	Type        ValueType
	Description string
	Minimum     *float64
	Maximum     *float64
}

// Bounds returns the closed interval declared for the attribute. ok is false
// when either end is open.
func (a Attribute) Bounds() (lo, hi float64, ok bool) {
	if a.Minimum == nil || a.Maximum == nil {
		return 0, 0, false
	}
	return *a.Minimum, *a.Maximum, true
}

// Object describes a schema-declared attribute container. Attributes are kept
// in declaration order, which is also the assignment order at construction.
type Object struct {
	Name        string
	ParentPath  string
	Description string
	Attributes  []Attribute
}

// Path returns the dotted location of the object inside a chart
// specification, e.g. "mesh3d.lighting".
func (o Object) Path() string {
	parent := strings.TrimSpace(o.ParentPath)
	if parent == "" {
		return o.Name
	}
	return parent + "." + o.Name
}

// AttributePath returns the dotted location of a named attribute.
func (o Object) AttributePath(name string) string {
	return o.Path() + "." + name
}

// Attribute looks up an attribute by wire name or field name. Matching is
// case-insensitive so "faceNormalsEpsilon" resolves "facenormalsepsilon".
func (o Object) Attribute(name string) (Attribute, bool) {
	key := strings.TrimSpace(name)
	if key == "" {
		return Attribute{}, false
	}
	for _, attr := range o.Attributes {
		if strings.EqualFold(attr.Name, key) || strings.EqualFold(attr.Field, key) {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Names returns the wire names in declaration order.
func (o Object) Names() []string {
	if len(o.Attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.Attributes))
	for _, attr := range o.Attributes {
		names = append(names, attr.Name)
	}
	return names
}

// SortedNames returns the wire names sorted alphabetically.
func (o Object) SortedNames() []string {
	names := o.Names()
	sort.Strings(names)
	return names
}

// Range is a small helper for declaring closed numeric intervals.
func Range(lo, hi float64) (*float64, *float64) {
	return &lo, &hi
}
