package mesh3d

import (
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

// ParentPath locates every container in this package inside a chart
// specification.
const ParentPath = "mesh3d"

// LightingSchema declares the mesh3d.lighting attributes in assignment order.
var LightingSchema = schema.Object{
	Name:        "lighting",
	ParentPath:  ParentPath,
	Description: "Shading parameters applied when the mesh surface is lit.",
	Attributes: []schema.Attribute{
		number("ambient", "Ambient", 0, 1,
			"Ambient light increases overall color visibility but can wash out the image."),
		number("diffuse", "Diffuse", 0, 1,
			"Represents the extent that incident rays are reflected in a range of angles."),
		number("facenormalsepsilon", "FaceNormalsEpsilon", 0, 1,
			"Epsilon for face normals calculation avoids math issues arising from degenerate geometry."),
		number("fresnel", "Fresnel", 0, 5,
			"Represents the reflectance as a dependency of the viewing angle; e.g. paper is reflective when viewing it from the edge of the paper (almost 90 degrees), causing shine."),
		number("roughness", "Roughness", 0, 1,
			"Alters specular reflection; the rougher the surface, the wider and less contrasty the shine."),
		number("specular", "Specular", 0, 2,
			"Represents the level that incident rays are reflected in a single direction, causing shine."),
		number("vertexnormalsepsilon", "VertexNormalsEpsilon", 0, 1,
			"Epsilon for vertex normals calculation avoids math issues arising from degenerate geometry."),
	},
}

// lightingValidators is keyed by wire name and fixed at package init.
var lightingValidators = buildValidators(LightingSchema)

func init() {
	for _, name := range LightingSchema.Names() {
		validators.Default.Register(LightingSchema.AttributePath(name), lightingValidators[name])
	}
}

func number(name, field string, lo, hi float64, description string) schema.Attribute {
	minimum, maximum := schema.Range(lo, hi)
	return schema.Attribute{
		Name:        name,
		Field:       field,
		Type:        schema.ValueTypeNumber,
		Description: description,
		Minimum:     minimum,
		Maximum:     maximum,
	}
}

func buildValidators(obj schema.Object) map[string]validators.Validator {
	out := make(map[string]validators.Validator, len(obj.Attributes))
	for _, attr := range obj.Attributes {
		lo, hi, _ := attr.Bounds()
		out[attr.Name] = validators.NewNumber(obj.AttributePath(attr.Name), lo, hi)
	}
	return out
}
