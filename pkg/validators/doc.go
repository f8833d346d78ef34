// Package validators provides the per-attribute validation capabilities used
// by the generated trace containers: the closed-interval Number validator, the
// ValueError taxonomy (out of range, wrong type, unknown property), the
// extension policy applied to unrecognized named inputs, and a Registry keyed
// by dotted attribute path for tooling.
package validators
