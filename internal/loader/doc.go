// Package loader fetches config documents for pkg/config from the local
// filesystem, an fs.FS, or (when explicitly enabled) HTTP.
package loader
