package describe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

const wrapWidth = 60

// Text renders the property description block for obj: each attribute name
// followed by its indented, wrapped description. It panics only if the
// embedded templates are broken; use Renderer.Text to handle errors.
func Text(obj schema.Object) string {
	return mustRender(func(r *Renderer) (string, error) { return r.Text(obj) })
}

// Property renders the help text for a single attribute, including its
// accepted values. ok is false when obj has no such attribute.
func Property(obj schema.Object, name string) (string, bool) {
	if _, found := obj.Attribute(name); !found {
		return "", false
	}
	var ok bool
	out := mustRender(func(r *Renderer) (string, error) {
		text, found, err := r.Property(obj, name)
		ok = found
		return text, err
	})
	return out, ok
}

// Constraint describes the accepted values of attr in one line.
func Constraint(attr schema.Attribute) string {
	switch attr.Type {
	case schema.ValueTypeNumber, schema.ValueTypeInteger:
		kind := "An int or float"
		if attr.Type == schema.ValueTypeInteger {
			kind = "An int"
		}
		switch {
		case attr.Minimum != nil && attr.Maximum != nil:
			return fmt.Sprintf("%s in the interval [%s, %s]", kind, formatFloat(*attr.Minimum), formatFloat(*attr.Maximum))
		case attr.Minimum != nil:
			return fmt.Sprintf("%s in the interval [%s, inf]", kind, formatFloat(*attr.Minimum))
		case attr.Maximum != nil:
			return fmt.Sprintf("%s in the interval [-inf, %s]", kind, formatFloat(*attr.Maximum))
		}
		return kind
	case schema.ValueTypeBoolean:
		return "A boolean value"
	default:
		return "A string"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var (
		lines   []string
		current strings.Builder
	)
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
