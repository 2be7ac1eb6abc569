// Package render turns composed components into a complete HTML document.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/teresa-solution/site-builder-service/internal/model"
)

//go:embed page.html
var pageTemplateSource string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateSource))

const (
	defaultThemeColor = "#3b82f6"
	defaultFont       = "Inter"
)

// Document is one page to render.
type Document struct {
	Title       string
	Description string
	Theme       model.Theme
	Components  []model.ComponentConfig

	// EmptyHeading and EmptyMessage replace the body when Components is empty.
	EmptyHeading string
	EmptyMessage string
}

type placeholder struct {
	Heading string
	Message string
}

type pageView struct {
	Title       string
	Description string
	ThemeColor  string
	FontFamily  string
	Body        template.HTML
	Placeholder *placeholder
}

// Renderer writes full HTML documents using a component Registry.
type Renderer struct {
	registry *Registry
}

// NewRenderer returns a Renderer. A nil registry uses Default().
func NewRenderer(registry *Registry) *Renderer {
	if registry == nil {
		registry = Default()
	}
	return &Renderer{registry: registry}
}

// Page renders doc. Nothing is written to w when rendering fails.
func (r *Renderer) Page(w io.Writer, doc Document) error {
	view := pageView{
		Title:       doc.Title,
		Description: doc.Description,
		ThemeColor:  orDefault(doc.Theme.PrimaryColor, defaultThemeColor),
		FontFamily:  orDefault(doc.Theme.FontFamily, defaultFont),
	}

	if len(doc.Components) == 0 {
		view.Placeholder = &placeholder{Heading: doc.EmptyHeading, Message: doc.EmptyMessage}
	} else {
		var body bytes.Buffer
		for _, c := range doc.Components {
			html, err := r.registry.Render(c, doc.Theme)
			if err != nil {
				return fmt.Errorf("component %s: %w", c.ID, err)
			}
			body.WriteString(string(html))
			body.WriteByte('\n')
		}
		view.Body = template.HTML(body.String())
	}
	return execute(w, view)
}

// NotFound renders the page shown for unknown hosts and paths.
func (r *Renderer) NotFound(w io.Writer) error {
	return r.status(w, "Site Not Found", "The site you are looking for does not exist.")
}

// Failure renders the page shown when tenant data cannot be loaded.
func (r *Renderer) Failure(w io.Writer) error {
	return r.status(w, "Error Loading Site", "There was an error loading this site. Please try again later.")
}

func (r *Renderer) status(w io.Writer, heading, message string) error {
	return execute(w, pageView{
		Title:       heading,
		ThemeColor:  defaultThemeColor,
		FontFamily:  defaultFont,
		Placeholder: &placeholder{Heading: heading, Message: message},
	})
}

func execute(w io.Writer, view pageView) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
