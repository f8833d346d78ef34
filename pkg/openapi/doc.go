// Package openapi exports attribute objects as OpenAPI 3 component schemas
// (kin-openapi) so help tooling and external editors can introspect their
// bounds and descriptions, and parses such documents back into attribute
// objects.
package openapi
