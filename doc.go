// Package chartspec provides schema-backed chart attribute containers. The
// root package re-exports the common entry points; the containers live under
// pkg/traces and the supporting layers under pkg/.
package chartspec
