package mesh3d

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-chartspec/pkg/describe"
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

// Lighting holds the shading parameters of a mesh3d trace. Every attribute is
// optional; unset attributes report ok=false from their getter. Values are
// always inside the attribute's declared interval. A Lighting is owned by a
// single trace and is not safe for concurrent use.
type Lighting struct {
	ambient              *float64
	diffuse              *float64
	faceNormalsEpsilon   *float64
	fresnel              *float64
	roughness            *float64
	specular             *float64
	vertexNormalsEpsilon *float64

	extensions map[string]any
	policy     validators.Extensions
}

// LightingArgs carries the named construction inputs. Fields left nil stay
// unset. Extra holds any additional named inputs; they are matched against the
// declared attributes first and then handed to the extension policy.
type LightingArgs struct {
	Ambient              any `mapstructure:"ambient"`
	Diffuse              any `mapstructure:"diffuse"`
	FaceNormalsEpsilon   any `mapstructure:"facenormalsepsilon"`
	Fresnel              any `mapstructure:"fresnel"`
	Roughness            any `mapstructure:"roughness"`
	Specular             any `mapstructure:"specular"`
	VertexNormalsEpsilon any `mapstructure:"vertexnormalsepsilon"`

	Extra map[string]any `mapstructure:",remain"`
}

// Option configures how a Lighting treats unrecognized inputs.
type Option func(*validators.Extensions)

// WithExtensionPolicy selects the policy for unrecognized named inputs. The
// default is validators.ExtensionReject.
func WithExtensionPolicy(policy validators.ExtensionPolicy) Option {
	return func(ext *validators.Extensions) {
		if policy != "" {
			ext.Policy = policy
		}
	}
}

// WithAllowedExtensions admits keys outside the "x-" namespace under
// validators.ExtensionStore.
func WithAllowedExtensions(keys ...string) Option {
	return func(ext *validators.Extensions) {
		ext.Allowed = append(ext.Allowed, keys...)
	}
}

// NewLighting builds a Lighting from args. Declared attributes are assigned in
// schema order and the first rejected value aborts construction.
func NewLighting(args LightingArgs, opts ...Option) (*Lighting, error) {
	l := newLighting(opts)

	assignments := [...]struct {
		name  string
		value any
	}{
		{"ambient", args.Ambient},
		{"diffuse", args.Diffuse},
		{"facenormalsepsilon", args.FaceNormalsEpsilon},
		{"fresnel", args.Fresnel},
		{"roughness", args.Roughness},
		{"specular", args.Specular},
		{"vertexnormalsepsilon", args.VertexNormalsEpsilon},
	}
	for _, a := range assignments {
		if err := l.Set(a.name, a.value); err != nil {
			return nil, err
		}
	}

	if err := l.applyExtra(args.Extra); err != nil {
		return nil, err
	}
	return l, nil
}

// NewLightingFromMap decodes a loosely typed map (for example a parsed YAML
// block) into LightingArgs and builds a Lighting. Keys match attribute names
// case-insensitively; two keys naming the same attribute are rejected with
// validators.ErrDuplicateProperty. Unmatched keys go through the extension
// policy.
func NewLightingFromMap(values map[string]any, opts ...Option) (*Lighting, error) {
	var args LightingArgs
	if len(values) > 0 {
		folded, err := foldKeys(values)
		if err != nil {
			return nil, err
		}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &args,
			TagName: "mapstructure",
		})
		if err != nil {
			return nil, fmt.Errorf("mesh3d lighting: decoder: %w", err)
		}
		if err := decoder.Decode(folded); err != nil {
			return nil, fmt.Errorf("mesh3d lighting: decode: %w", err)
		}
	}
	return NewLighting(args, opts...)
}

// foldKeys rewrites declared attribute keys to their wire names so decoding
// never depends on map iteration order. Extension keys are kept verbatim.
func foldKeys(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	seen := make(map[string]string, len(values))
	for _, key := range validators.SortedKeys(values) {
		attr, ok := LightingSchema.Attribute(key)
		if !ok {
			out[key] = values[key]
			continue
		}
		if first, dup := seen[attr.Name]; dup {
			return nil, validators.DuplicateProperty(LightingSchema.AttributePath(attr.Name), first, key)
		}
		seen[attr.Name] = key
		out[attr.Name] = values[key]
	}
	return out, nil
}

func newLighting(opts []Option) *Lighting {
	l := &Lighting{policy: validators.Extensions{Policy: validators.ExtensionReject}}
	for _, opt := range opts {
		if opt != nil {
			opt(&l.policy)
		}
	}
	return l
}

// Get returns the stored value of the named attribute.
func (l *Lighting) Get(name string) (any, bool) {
	slot, _, ok := l.slot(name)
	if !ok || *slot == nil {
		return nil, false
	}
	return **slot, true
}

// Set validates value and stores the normalized result under the named
// attribute. A nil value clears the attribute. On error the stored value is
// left unchanged.
func (l *Lighting) Set(name string, value any) error {
	slot, attr, ok := l.slot(name)
	if !ok {
		return validators.UnknownProperty(LightingSchema.Path(), name, LightingSchema.Names())
	}
	normalized, err := lightingValidators[attr.Name].Validate(value)
	if err != nil {
		return err
	}
	if normalized == nil {
		*slot = nil
		return nil
	}
	f := normalized.(float64)
	*slot = &f
	return nil
}

// Clear unsets the named attribute.
func (l *Lighting) Clear(name string) error {
	return l.Set(name, nil)
}

// Update applies several assignments at once. Keys are resolved like
// constructor inputs. Either every assignment succeeds or none is applied.
func (l *Lighting) Update(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	folded, err := foldKeys(values)
	if err != nil {
		return err
	}
	next := l.Clone()
	if err := next.applyExtra(folded); err != nil {
		return err
	}
	*l = *next
	return nil
}

// Clone returns an independent copy of l, including its extension inputs and
// policy.
func (l *Lighting) Clone() *Lighting {
	out := &Lighting{
		ambient:              clonePtr(l.ambient),
		diffuse:              clonePtr(l.diffuse),
		faceNormalsEpsilon:   clonePtr(l.faceNormalsEpsilon),
		fresnel:              clonePtr(l.fresnel),
		roughness:            clonePtr(l.roughness),
		specular:             clonePtr(l.specular),
		vertexNormalsEpsilon: clonePtr(l.vertexNormalsEpsilon),
		extensions:           l.Extensions(),
		policy: validators.Extensions{
			Policy:  l.policy.Policy,
			Allowed: append([]string(nil), l.policy.Allowed...),
		},
	}
	return out
}

// Values returns the set attributes keyed by wire name. The parent trace reads
// this map when assembling the chart specification.
func (l *Lighting) Values() map[string]any {
	out := make(map[string]any)
	for _, name := range LightingSchema.Names() {
		if v, ok := l.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

// IsEmpty reports whether no attribute and no extension input is set.
func (l *Lighting) IsEmpty() bool {
	return len(l.Values()) == 0 && len(l.extensions) == 0
}

// Extensions returns a copy of the extension inputs stored under
// validators.ExtensionStore.
func (l *Lighting) Extensions() map[string]any {
	if len(l.extensions) == 0 {
		return nil
	}
	out := make(map[string]any, len(l.extensions))
	for key, value := range l.extensions {
		out[key] = value
	}
	return out
}

// Extension looks up a stored extension input.
func (l *Lighting) Extension(key string) (any, bool) {
	value, ok := l.extensions[key]
	return value, ok
}

// Policy reports the extension handling configured for l.
func (l *Lighting) Policy() validators.ExtensionPolicy {
	return l.policy.Policy
}

// ParentPath returns the location this container attaches to.
func (l *Lighting) ParentPath() string { return LightingSchema.ParentPath }

// PlotlyName returns the property name of the container under its parent.
func (l *Lighting) PlotlyName() string { return LightingSchema.Name }

// Schema returns the attribute declarations backing l.
func (l *Lighting) Schema() schema.Object { return LightingSchema }

// Describe returns the human-readable description of every attribute.
func (l *Lighting) Describe() string { return describe.Text(LightingSchema) }

// String renders the set attributes in schema order, e.g.
// "mesh3d.Lighting{ambient: 0.8, fresnel: 0.2}".
func (l *Lighting) String() string {
	var parts []string
	for _, name := range LightingSchema.Names() {
		if v, ok := l.Get(name); ok {
			parts = append(parts, name+": "+strconv.FormatFloat(v.(float64), 'f', -1, 64))
		}
	}
	for _, key := range validators.SortedKeys(l.extensions) {
		parts = append(parts, fmt.Sprintf("%s: %v", key, l.extensions[key]))
	}
	return "mesh3d.Lighting{" + strings.Join(parts, ", ") + "}"
}

func (l *Lighting) applyExtra(extra map[string]any) error {
	for _, key := range validators.SortedKeys(extra) {
		if _, _, ok := l.slot(key); ok {
			if err := l.Set(key, extra[key]); err != nil {
				return err
			}
			continue
		}
		store, err := l.policy.Admit(LightingSchema.Path(), key, LightingSchema.Names())
		if err != nil {
			return err
		}
		if !store {
			continue
		}
		if l.extensions == nil {
			l.extensions = make(map[string]any)
		}
		l.extensions[key] = extra[key]
	}
	return nil
}

func (l *Lighting) slot(name string) (**float64, schema.Attribute, bool) {
	attr, ok := LightingSchema.Attribute(name)
	if !ok {
		return nil, schema.Attribute{}, false
	}
	switch attr.Name {
	case "ambient":
		return &l.ambient, attr, true
	case "diffuse":
		return &l.diffuse, attr, true
	case "facenormalsepsilon":
		return &l.faceNormalsEpsilon, attr, true
	case "fresnel":
		return &l.fresnel, attr, true
	case "roughness":
		return &l.roughness, attr, true
	case "specular":
		return &l.specular, attr, true
	case "vertexnormalsepsilon":
		return &l.vertexNormalsEpsilon, attr, true
	}
	return nil, schema.Attribute{}, false
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
