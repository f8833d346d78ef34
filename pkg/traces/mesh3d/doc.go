// Package mesh3d holds the attribute containers nested under the mesh3d trace
// of a chart specification. Lighting configures surface shading; each of its
// attributes is validated against a closed interval on assignment, and
// unrecognized construction inputs are handled by an explicit extension
// policy (reject by default, skip, or store "x-" keys).
package mesh3d
