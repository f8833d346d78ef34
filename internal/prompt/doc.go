// Package prompt fills attribute containers interactively.
package prompt
