package validators

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange marks values outside the attribute's declared interval.
	ErrOutOfRange = errors.New("value out of range")
	// ErrWrongType marks values that are not coercible to the attribute type.
	ErrWrongType = errors.New("wrong value type")
	// ErrUnknownProperty marks named inputs that match no declared attribute
	// and are not admitted by the extension policy.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrDuplicateProperty marks two named inputs that resolve to the same
	// attribute, e.g. "Ambient" and "AMBIENT".
	ErrDuplicateProperty = errors.New("duplicate property")
)

// ValueError reports a rejected assignment. Kind is one of the sentinel errors
// above so callers can branch with errors.Is.
type ValueError struct {
	Path   string
	Value  any
	Reason string
	Kind   error
}

func (e *ValueError) Error() string {
	if e == nil {
		return "<nil>"
	}
	kind := "invalid value"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}
	switch {
	case e.Reason == "":
		return fmt.Sprintf("%s: %s", e.Path, kind)
	case e.Value == nil:
		return fmt.Sprintf("%s: %s: %s", e.Path, kind, e.Reason)
	default:
		return fmt.Sprintf("%s: %s: %s (received %v of type %T)", e.Path, kind, e.Reason, e.Value, e.Value)
	}
}

// Unwrap exposes the sentinel kind.
func (e *ValueError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func outOfRange(path string, value any, reason string) error {
	return &ValueError{Path: path, Value: value, Reason: reason, Kind: ErrOutOfRange}
}

func wrongType(path string, value any, reason string) error {
	return &ValueError{Path: path, Value: value, Reason: reason, Kind: ErrWrongType}
}

// UnknownProperty builds the error returned for unrecognized named inputs.
func UnknownProperty(parent, key string, valid []string) error {
	reason := fmt.Sprintf("%q is not a valid property", key)
	if len(valid) > 0 {
		reason = fmt.Sprintf("%s; valid properties: %v", reason, valid)
	}
	return &ValueError{Path: parent, Reason: reason, Kind: ErrUnknownProperty}
}

// DuplicateProperty builds the error returned when keys first and second both
// resolve to the attribute at path.
func DuplicateProperty(path, first, second string) error {
	return &ValueError{
		Path:   path,
		Reason: fmt.Sprintf("%q and %q name the same property", first, second),
		Kind:   ErrDuplicateProperty,
	}
}
