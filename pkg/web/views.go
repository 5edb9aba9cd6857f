// Package web provides infrastructure for serving web views with Go templates.
// Templates are parsed once at startup; each view is rendered either inside
// its layout for full page loads or as a bare fragment for in-page navigation.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ContentTemplate is the template name a view defines and a layout renders
// as its outlet. Layouts declare it with {{ block "content" . }}{{ end }} so
// the layout alone renders an empty outlet.
const ContentTemplate = "content"

// ViewDef defines a view with its route, template file, title, and bundle name.
// Name identifies the view in route tables.
type ViewDef struct {
	Name     string
	Route    string
	Template string
	Title    string
	Bundle   string
}

// PageData contains the data passed to templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type PageData struct {
	Title    string
	Bundle   string
	BasePath string
	View     string
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
type TemplateSet struct {
	views    map[string]*template.Template
	shell    *template.Template
	basePath string
}

// NewTemplateSet parses the layout templates once and clones them for each view.
// Parsing at startup surfaces template errors before the server accepts requests.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		if _, ok := viewTemplates[v.Template]; ok {
			continue
		}
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err = t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		viewTemplates[v.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		shell:    layouts,
		basePath: basePath,
	}, nil
}

// BasePath returns the base path included in PageData.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes the named layout template with the view in its outlet.
// Output is buffered so a template failure never produces a partial page.
func (ts *TemplateSet) Render(w http.ResponseWriter, layout, view string, data PageData) error {
	var buf bytes.Buffer
	if err := ts.execute(&buf, view, layout, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// RenderFragment executes only the view's content template.
func (ts *TemplateSet) RenderFragment(w http.ResponseWriter, view string, data PageData) error {
	var buf bytes.Buffer
	if err := ts.execute(&buf, view, ContentTemplate, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// RenderShell executes the layout with an empty outlet.
func (ts *TemplateSet) RenderShell(w http.ResponseWriter, layout string, data PageData) error {
	var buf bytes.Buffer
	if err := ts.shell.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("render shell: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

func (ts *TemplateSet) execute(buf *bytes.Buffer, view, name string, data PageData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}
	if err := t.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}
	return nil
}
