package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-chartspec/pkg/describe"
	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

var (
	// ErrAborted signals the user interrupted input (Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrDiscarded is returned when the user declines the collected values.
	ErrDiscarded = errors.New("prompt: values discarded")
)

// Collect asks for every attribute of obj in declaration order and returns the
// answered values keyed by wire name. Blank answers leave the attribute
// unset. Validation happens per answer, so an accepted map always passes the
// container's validators.
func Collect(ctx context.Context, driver Driver, obj schema.Object) (map[string]any, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}

	values := make(map[string]any)
	for _, attr := range obj.Attributes {
		validator := numberValidator(obj, attr)
		help, _ := describe.Property(obj, attr.Name)

		answer, err := driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%s)", obj.AttributePath(attr.Name), describe.Constraint(attr)),
			Help:    help,
			Validator: func(raw string) error {
				_, err := parseAnswer(validator, raw)
				return err
			},
		})
		if err != nil {
			return nil, err
		}

		value, err := parseAnswer(validator, answer)
		if err != nil {
			return nil, err
		}
		if value != nil {
			values[attr.Name] = value
		}
	}

	if len(values) == 0 {
		return values, nil
	}

	ok, err := driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Keep %d %s value(s)?", len(values), obj.Path()),
		Default: true,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDiscarded
	}
	return values, nil
}

func numberValidator(obj schema.Object, attr schema.Attribute) validators.Validator {
	if v, ok := validators.Default.Lookup(obj.AttributePath(attr.Name)); ok {
		return v
	}
	lo, hi, _ := attr.Bounds()
	return validators.NewNumber(obj.AttributePath(attr.Name), lo, hi)
}

func parseAnswer(validator validators.Validator, raw string) (any, error) {
	parsed, err := validators.ParseNumber(strings.TrimSpace(raw))
	if err != nil || parsed == nil {
		return nil, err
	}
	return validator.Validate(parsed)
}
