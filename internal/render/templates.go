package render

import (
	"embed"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const defaultTemplateName = "templates/report.html.tmpl"

// DefaultTemplate returns the built-in report template
func DefaultTemplate() string {
	data, err := templateFS.ReadFile(defaultTemplateName)
	if err != nil {
		// embedded at build time
		panic(fmt.Sprintf("default template missing: %v", err))
	}
	return string(data)
}

// LoadTemplate reads the template at path. An empty path, or a path that
// cannot be read, yields the built-in template.
func LoadTemplate(path string) string {
	if path == "" {
		return DefaultTemplate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("Template", path).Warn("Template wasn't loaded, loading default template")
		return DefaultTemplate()
	}
	if len(data) == 0 {
		logrus.WithField("Template", path).Warn("Template is empty, loading default template")
		return DefaultTemplate()
	}
	return string(data)
}
