package reports

import (
	"embed"
	"fmt"
)

//go:embed templates/dashboard.html templates/styles.css
var templateFS embed.FS

// TemplateLoader handles loading HTML templates and CSS styles
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate loads the dashboard page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	content, err := templateFS.ReadFile("templates/dashboard.html")
	if err != nil {
		return "", fmt.Errorf("failed to read dashboard template: %w", err)
	}
	return string(content), nil
}

// LoadCSSStyles loads the page stylesheet
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	content, err := templateFS.ReadFile("templates/styles.css")
	if err != nil {
		return "", fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return string(content), nil
}
