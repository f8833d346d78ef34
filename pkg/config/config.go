package config

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/goliatone/go-chartspec/internal/loader"
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/traces/mesh3d"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

// File mirrors the on-disk config document:
//
//	extensions: store
//	allowedExtensions: [preset]
//	mesh3d:
//	  lighting:
//	    ambient: 0.8
type File struct {
	Extensions        string   `mapstructure:"extensions"`
	AllowedExtensions []string `mapstructure:"allowedExtensions"`
	Mesh3D            Mesh3D   `mapstructure:"mesh3d"`
}

// Mesh3D holds the raw inputs of the mesh3d containers.
type Mesh3D struct {
	Lighting map[string]any `mapstructure:"lighting"`
}

// Config is a decoded, validated config document.
type Config struct {
	Location          string
	Policy            validators.ExtensionPolicy
	AllowedExtensions []string
	Lighting          *mesh3d.Lighting
}

// LightingOptions returns the container options implied by the document's
// extension settings.
func (c *Config) LightingOptions() []mesh3d.Option {
	return []mesh3d.Option{
		mesh3d.WithExtensionPolicy(c.Policy),
		mesh3d.WithAllowedExtensions(c.AllowedExtensions...),
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger injects the logger used for debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithFileSystem enables fs.FS sources.
func WithFileSystem(fsys fs.FS) Option {
	return func(l *Loader) {
		l.sourceOpts.FileSystem = fsys
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.sourceOpts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources using a default client with timeout.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(l *Loader) {
		l.sourceOpts.AllowHTTP = true
		l.sourceOpts.RequestTimeout = timeout
	}
}

// WithMaxSize caps the document size in bytes for every source kind.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		l.sourceOpts.MaxSize = n
	}
}

// WithPolicyOverride forces an extension policy regardless of the document.
func WithPolicyOverride(policy validators.ExtensionPolicy) Option {
	return func(l *Loader) {
		l.override = policy
	}
}

// Loader reads config documents and builds the containers they describe.
type Loader struct {
	logger     *zap.SugaredLogger
	sourceOpts loader.Options
	override   validators.ExtensionPolicy
	sources    *loader.Loader
}

// NewLoader constructs a Loader. Without options it reads local files only
// and logs nothing.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	l.sources = loader.New(l.sourceOpts)
	return l
}

// Load fetches src and parses it.
func (l *Loader) Load(ctx context.Context, src schema.Source) (*Config, error) {
	doc, err := l.sources.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return l.Parse(doc)
}

// Parse decodes doc and builds its containers. The first invalid value fails
// the whole document; use pkg/validation to collect every issue instead.
func (l *Loader) Parse(doc schema.Document) (*Config, error) {
	file, err := Decode(doc)
	if err != nil {
		return nil, err
	}

	policy, err := validators.ParseExtensionPolicy(file.Extensions)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", doc.Location(), err)
	}
	if l.override != "" {
		policy = l.override
	}

	cfg := &Config{
		Location:          doc.Location(),
		Policy:            policy,
		AllowedExtensions: append([]string(nil), file.AllowedExtensions...),
	}

	lighting, err := mesh3d.NewLightingFromMap(file.Mesh3D.Lighting, cfg.LightingOptions()...)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", doc.Location(), err)
	}
	cfg.Lighting = lighting

	l.logExtensions(cfg, file.Mesh3D.Lighting)
	l.logger.Debugw("config loaded",
		"location", cfg.Location,
		"policy", string(cfg.Policy),
		"lighting", lighting.String(),
	)
	return cfg, nil
}

func (l *Loader) logExtensions(cfg *Config, raw map[string]any) {
	stored := cfg.Lighting.Extensions()
	var skipped []string
	for _, key := range validators.SortedKeys(raw) {
		if _, ok := mesh3d.LightingSchema.Attribute(key); ok {
			continue
		}
		if _, ok := stored[key]; ok {
			continue
		}
		skipped = append(skipped, key)
	}
	if len(stored) > 0 {
		l.logger.Debugw("stored extension inputs", "path", mesh3d.LightingSchema.Path(), "keys", validators.SortedKeys(stored))
	}
	if len(skipped) > 0 {
		l.logger.Debugw("skipped unrecognized inputs", "path", mesh3d.LightingSchema.Path(), "keys", skipped)
	}
}

// Decode parses doc (YAML or JSON, chosen by doc.Format()) into a File.
// Unknown top-level or mesh3d keys are errors.
func Decode(doc schema.Document) (File, error) {
	generic, err := loader.DecodeDocument(doc)
	if err != nil {
		return File{}, err
	}

	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &file,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return File{}, fmt.Errorf("config: decoder: %w", err)
	}
	if err := decoder.Decode(generic); err != nil {
		return File{}, fmt.Errorf("config: %s: %w", doc.Location(), err)
	}
	return file, nil
}
