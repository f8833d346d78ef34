package chartspec

import (
	"context"

	"github.com/goliatone/go-chartspec/internal/loader"
	"github.com/goliatone/go-chartspec/pkg/config"
	"github.com/goliatone/go-chartspec/pkg/openapi"
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/traces/mesh3d"
	"github.com/goliatone/go-chartspec/pkg/validation"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

// Lighting aliases the mesh3d lighting container for callers that only import
// the root package.
type Lighting = mesh3d.Lighting

// LightingArgs aliases the named construction inputs of Lighting.
type LightingArgs = mesh3d.LightingArgs

// Issue and Result alias the document validation report.
type (
	Issue  = validation.Issue
	Result = validation.Result
)

// NewLighting builds a lighting container, see mesh3d.NewLighting.
func NewLighting(args LightingArgs, opts ...mesh3d.Option) (*Lighting, error) {
	return mesh3d.NewLighting(args, opts...)
}

// NewConfigLoader exposes the config loader constructor from the top-level
// module.
func NewConfigLoader(options ...config.Option) *config.Loader {
	return config.NewLoader(options...)
}

// LoadConfig reads the config document at path (a file or, with
// config.WithHTTPFallback, a URL) and builds its containers.
func LoadConfig(ctx context.Context, path string, options ...config.Option) (*config.Config, error) {
	src, err := schema.ParseSource(path)
	if err != nil {
		return nil, err
	}
	return config.NewLoader(options...).Load(ctx, src)
}

// ValidateFile reads the local document at path and reports every issue.
func ValidateFile(ctx context.Context, path string, opts validation.Options) (Result, error) {
	doc, err := loader.New(loader.Options{}).Load(ctx, schema.SourceFromFile(path))
	if err != nil {
		return Result{}, err
	}
	return validation.ValidateDocument(ctx, doc.Source(), doc.Raw(), opts), nil
}

// OpenAPIDocument renders every registered container schema as an OpenAPI
// document.
func OpenAPIDocument(title, version string, policy validators.ExtensionPolicy) ([]byte, error) {
	return openapi.MarshalDocument(title, version, policy, mesh3d.LightingSchema)
}
