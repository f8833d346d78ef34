// Package config loads chart attribute settings from YAML or JSON documents.
// A document selects the extension policy for unrecognized inputs and carries
// the raw values of each container, e.g. mesh3d.lighting. Loading is strict:
// the first invalid value aborts with an error that wraps the validator's
// *validators.ValueError.
package config
