package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"ticketcheckin/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// A message named "checkin_confirmation" is made of three files under
// templates/: checkin_confirmation_subject.txt, checkin_confirmation.html
// and checkin_confirmation.txt.
const (
	subjectSuffix = "_subject.txt"
	htmlSuffix    = ".html"
	textSuffix    = ".txt"
)

type executor interface {
	Execute(w *bytes.Buffer, data any) error
}

type textExec struct{ t *texttemplate.Template }

func (e textExec) Execute(w *bytes.Buffer, data any) error { return e.t.Execute(w, data) }

type htmlExec struct{ t *htmltemplate.Template }

func (e htmlExec) Execute(w *bytes.Buffer, data any) error { return e.t.Execute(w, data) }

// templateRenderer implements domain.EmailTemplateRenderer over the embedded
// templates. HTML bodies are escaped with html/template.
type templateRenderer struct{}

// NewTemplateRenderer returns the renderer for the embedded check-in mail templates.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

// Render executes the three parts of the named message with data. The subject
// is trimmed so a trailing newline in its file does not reach the mail header.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	parts := []struct {
		file string
		html bool
		out  *string
	}{
		{templateName + subjectSuffix, false, &subject},
		{templateName + htmlSuffix, true, &htmlBody},
		{templateName + textSuffix, false, &textBody},
	}
	for _, p := range parts {
		if *p.out, err = renderFile(p.file, data, p.html); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", templateName, err)
		}
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func renderFile(name string, data any, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("template %s not found", name)
	}
	var exec executor
	if html {
		t, err := htmltemplate.New(name).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", name, err)
		}
		exec = htmlExec{t}
	} else {
		t, err := texttemplate.New(name).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", name, err)
		}
		exec = textExec{t}
	}
	var buf bytes.Buffer
	if err := exec.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.String(), nil
}
