package validators

import (
	"fmt"
	"sort"
	"strings"
)

// ExtensionPolicy decides what happens to named inputs that do not match any
// declared attribute.
type ExtensionPolicy string

const (
	// ExtensionReject fails the assignment for every unrecognized key.
	ExtensionReject ExtensionPolicy = "reject"
	// ExtensionSkip drops unrecognized keys without error.
	ExtensionSkip ExtensionPolicy = "skip"
	// ExtensionStore keeps keys from the extension namespace (or explicitly
	// allowed keys) and rejects the rest.
	ExtensionStore ExtensionPolicy = "store"
)

// ExtensionNamespace is the key prefix admitted under ExtensionStore.
const ExtensionNamespace = "x-"

// ParseExtensionPolicy maps config strings onto a policy. The empty string
// selects ExtensionReject.
func ParseExtensionPolicy(raw string) (ExtensionPolicy, error) {
	switch ExtensionPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExtensionReject:
		return ExtensionReject, nil
	case ExtensionSkip:
		return ExtensionSkip, nil
	case ExtensionStore:
		return ExtensionStore, nil
	default:
		return "", fmt.Errorf("validators: unknown extension policy %q (supported: reject, skip, store)", raw)
	}
}

// Extensions pairs a policy with the keys it admits besides the namespace.
type Extensions struct {
	Policy  ExtensionPolicy
	Allowed []string
}

// Admit reports whether key should be stored. A false result with a nil error
// means the key is dropped. parent is used for error paths, valid lists the
// declared attribute names for the error message.
func (e Extensions) Admit(parent, key string, valid []string) (bool, error) {
	switch e.Policy {
	case ExtensionSkip:
		return false, nil
	case ExtensionStore:
		if e.IsExtensionKey(key) {
			return true, nil
		}
	}
	return false, UnknownProperty(parent, key, valid)
}

// IsExtensionKey reports whether key belongs to the extension namespace or the
// explicit allow list.
func (e Extensions) IsExtensionKey(key string) bool {
	trimmed := strings.TrimSpace(key)
	if len(trimmed) > len(ExtensionNamespace) && strings.HasPrefix(trimmed, ExtensionNamespace) {
		return true
	}
	for _, allowed := range e.Allowed {
		if strings.TrimSpace(allowed) == trimmed && trimmed != "" {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of m in lexical order so extension handling is
// deterministic.
func SortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
