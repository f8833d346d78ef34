package describe

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	textTemplate     = "text"
	htmlTemplate     = "html"
	propertyTemplate = "property"
)

// TemplatesFS exposes the embedded template bundle so callers can copy or
// override the layouts.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

type templateEngine interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// Renderer renders attribute documentation through a go-template engine.
type Renderer struct {
	engine templateEngine
}

// NewRenderer builds a Renderer over files, which must provide text.tpl,
// html.tpl and property.tpl. A nil files uses the embedded templates.
func NewRenderer(files fs.FS) (*Renderer, error) {
	if files == nil {
		files = TemplatesFS()
	}
	engine, err := gotemplate.NewRenderer(
		gotemplate.WithFS(files),
		gotemplate.WithExtension(".tpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("describe: template engine: %w", err)
	}
	return &Renderer{engine: engine}, nil
}

// Text renders the indented property description block for obj.
func (r *Renderer) Text(obj schema.Object) (string, error) {
	attributes := make([]any, 0, len(obj.Attributes))
	for _, attr := range obj.Attributes {
		lines := make([]any, 0, 4)
		for _, line := range wrap(attr.Description, wrapWidth) {
			lines = append(lines, line)
		}
		attributes = append(attributes, map[string]any{
			"name":  attr.Name,
			"lines": lines,
		})
	}
	return r.render(textTemplate, map[string]any{
		"path":       obj.Path(),
		"attributes": attributes,
	})
}

// HTML renders obj as a definition list. Descriptions are stripped of markup
// before rendering and the result is sanitized again.
func (r *Renderer) HTML(obj schema.Object) (string, error) {
	text, markup := policies()

	attributes := make([]any, 0, len(obj.Attributes))
	for _, attr := range obj.Attributes {
		attributes = append(attributes, map[string]any{
			"name":        attr.Name,
			"description": strings.TrimSpace(text.Sanitize(attr.Description)),
			"constraint":  Constraint(attr),
		})
	}
	out, err := r.render(htmlTemplate, map[string]any{
		"path":       obj.Path(),
		"attributes": attributes,
	})
	if err != nil {
		return "", err
	}
	return markup.Sanitize(out), nil
}

// Property renders the help text for the named attribute of obj. ok is false
// when obj has no such attribute.
func (r *Renderer) Property(obj schema.Object, name string) (string, bool, error) {
	attr, found := obj.Attribute(name)
	if !found {
		return "", false, nil
	}
	out, err := r.render(propertyTemplate, map[string]any{
		"name":        attr.Name,
		"type":        string(attr.Type),
		"description": strings.TrimSpace(attr.Description),
		"constraint":  Constraint(attr),
	})
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

func (r *Renderer) render(name string, data map[string]any) (string, error) {
	if r == nil || r.engine == nil {
		return "", fmt.Errorf("describe: renderer is not initialized")
	}
	out, err := r.engine.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("describe: render %s: %w", name, err)
	}
	return out, nil
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// Default returns the shared Renderer over the embedded templates.
func Default() (*Renderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = NewRenderer(nil)
	})
	return defaultRenderer, defaultErr
}

func mustRender(render func(*Renderer) (string, error)) string {
	r, err := Default()
	if err == nil {
		var out string
		if out, err = render(r); err == nil {
			return out
		}
	}
	panic(err)
}
