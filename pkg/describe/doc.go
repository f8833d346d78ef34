// Package describe renders the static attribute documentation carried by
// schema objects, either as the indented text block shown by help tooling or
// as a sanitized HTML definition list.
package describe
