// Package schema declares the attribute IR shared by the generated trace
// containers, validators, OpenAPI export, and help tooling. An Object lists
// its attributes in declaration order together with their value type, closed
// numeric interval, and human-readable description. Document and Source wrap
// config payloads so loaders can read them from files, fs.FS entries, or URLs.
package schema
