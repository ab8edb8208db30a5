// Package templates renders changelog entry text from issue metadata using
// Go's text/template engine.
package templates

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/PatrickPedersen/autoChangelog/internal/forge"
)

// DefaultTemplate renders the standard one-line changelog entry.
const DefaultTemplate = `* {{ .Title }}. Issue [#{{ .Number }}]({{ .HTMLURL }}) by [@{{ .User.Login }}]({{ .User.HTMLURL }}).`

// RenderMessage renders the entry template with the issue's metadata.
// Missing fields are errors rather than silent empty strings.
func RenderMessage(templateText string, issue *forge.Issue) (string, error) {
	tpl, err := template.New("entry").Option("missingkey=error").Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("parse entry template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, issue); err != nil {
		return "", fmt.Errorf("render entry template: %w", err)
	}
	return buf.String(), nil
}

// LoadTemplate returns the template text from path, or DefaultTemplate when
// path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read entry template %s: %w", path, err)
	}
	return string(data), nil
}
