package validators

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps dotted attribute paths (e.g. "mesh3d.lighting.ambient") to
// validators so tooling can validate values without importing every trace
// package. Containers keep their own static maps and do not consult it.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Validator
}

// Default is the process-wide registry populated by trace packages at init.
var Default = NewRegistry()

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Validator)}
}

// Register binds a validator to path. The latest registration wins.
func (r *Registry) Register(path string, validator Validator) {
	if r == nil || validator == nil {
		return
	}
	key := strings.TrimSpace(path)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rules == nil {
		r.rules = make(map[string]Validator)
	}
	r.rules[key] = validator
}

// Lookup returns the validator registered for path.
func (r *Registry) Lookup(path string) (Validator, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.rules[strings.TrimSpace(path)]
	return v, ok
}

// Validate runs the validator registered for path. Unregistered paths are
// reported as unknown properties.
func (r *Registry) Validate(path string, value any) (any, error) {
	v, ok := r.Lookup(path)
	if !ok {
		parent, key := splitPath(path)
		return nil, UnknownProperty(parent, key, nil)
	}
	return v.Validate(value)
}

// Paths returns the registered paths sorted lexically. A non-empty prefix
// limits the result to paths under it.
func (r *Registry) Paths(prefix string) []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix = strings.TrimSpace(prefix)
	var out []string
	for path := range r.rules {
		if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+".") {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func splitPath(path string) (string, string) {
	trimmed := strings.TrimSpace(path)
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return "", trimmed
	}
	return trimmed[:idx], trimmed[idx+1:]
}
