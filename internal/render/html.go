// Package render projects a plan into printable HTML, a terminal card grid
// and Markdown. Renderers never mutate the plan they are given.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/julianstephens/workplan/internal/models"
)

// DefaultTitle heads the printable page
const DefaultTitle = "Action Plan"

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("plan.html").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/plan.html"))

// HTMLOptions controls the printable page
type HTMLOptions struct {
	Title string
	// AutoPrint opens the browser print dialog once the page has loaded
	AutoPrint bool
}

type pageData struct {
	Title     string
	Plan      models.Plan
	AutoPrint bool
}

// HTML writes the printable page for p to w
func HTML(w io.Writer, p models.Plan, opts HTMLOptions) error {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	data := pageData{
		Title:     opts.Title,
		Plan:      p,
		AutoPrint: opts.AutoPrint,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
