package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"slices"

	"github.com/codeGROOVE-dev/tzgrid/pkg/grid"
	"github.com/codeGROOVE-dev/tzgrid/pkg/tzconvert"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

// Static returns the stylesheet and other assets with the static/ directory
// as the root, so the stylesheet is "style.css".
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // "static" is a valid, embedded path
	}
	return sub
}

type option struct {
	Name   string
	Active bool
}

type exportLinks struct {
	Markdown template.URL
	CSV      template.URL
	JSON     template.URL
}

type pageData struct {
	Grid       *grid.Grid
	Export     exportLinks
	Title      string
	Selected   string
	StartDate  string
	EndDate    string
	StartValue string
	EndValue   string
	Zones      []string
	Options    []option
}

// Renderer writes the visualizer page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").ParseFS(templateFiles, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the controls and the grid table for m.
func (r *Renderer) Render(w io.Writer, m *Model) error {
	active := m.Zones()
	opts := make([]option, 0, len(m.Options()))
	for _, name := range m.Options() {
		opts = append(opts, option{Name: name, Active: slices.Contains(active, name)})
	}

	rng := m.Range()
	q := m.Query()
	encoded := q.Encode()
	data := pageData{
		Title:      "Time Zone Visualizer",
		Options:    opts,
		Selected:   m.Selected(),
		Zones:      active,
		StartDate:  tzconvert.DayLabel(rng.Start, m.Reference()),
		EndDate:    tzconvert.DayLabel(rng.End, m.Reference()),
		StartValue: q.Get(ParamStart),
		EndValue:   q.Get(ParamEnd),
		Grid:       m.Grid(),
		Export: exportLinks{
			// Built from url.Values.Encode, so the query is already escaped.
			Markdown: template.URL("/export.md?" + encoded), //nolint:gosec // escaped by url.Values
			CSV:      template.URL("/export.csv?" + encoded), //nolint:gosec // escaped by url.Values
			JSON:     template.URL("/api/v1/grid?" + encoded), //nolint:gosec // escaped by url.Values
		},
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
