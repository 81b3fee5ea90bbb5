// Package render produces the HTML and JSON report documents.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"htmlreporter/internal/domain"
	"htmlreporter/internal/report"
)

// ErrTemplate is returned when a template cannot be parsed
var ErrTemplate = errors.New("invalid report template")

// Data is the set of named values available to a report template
type Data struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	RunID       string               `json:"run_id"`
	Result      domain.RunCounts     `json:"result"`
	StartTime   time.Time            `json:"start_time"`
	StopTime    time.Time            `json:"stop_time"`
	Summary     report.Summary       `json:"summary"`
	Groups      []report.GroupReport `json:"groups"`
}

// HTMLRenderer renders report data through an html/template
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the template text
func NewHTMLRenderer(text string) (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Funcs(FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render executes the template against data
func (r *HTMLRenderer) Render(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderHTML loads the template at templatePath (falling back to the
// built-in one) and renders data with it
func RenderHTML(templatePath string, data Data) ([]byte, error) {
	r, err := NewHTMLRenderer(LoadTemplate(templatePath))
	if err != nil {
		return nil, err
	}
	return r.Render(data)
}
