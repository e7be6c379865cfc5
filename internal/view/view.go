// Package view renders the HTML pages of the catalog.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"bookstore/internal/httpx"
)

//go:embed templates/*.html
var files embed.FS

// Page names.
const (
	Index      = "index"
	NewBook    = "new-book"
	UpdateBook = "update-book"
	Error      = "error"
)

// Renderer executes page templates. Each page is parsed together with the
// shared layout and form partials.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	base, err := template.ParseFS(files, "templates/layout.html", "templates/form.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{Index, NewBook, UpdateBook, Error} {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(files, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name with data and the given status. The page is
// executed into a buffer first so a template failure leaves w untouched.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("view: execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

// RenderError writes the error page. It satisfies httpx.ErrorRenderer.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, status int, message string) {
	data := errorPage{Title: "Error", Status: status, Message: message}
	if status == http.StatusNotFound {
		data.Title = "Page Not Found"
	}
	if err := r.Render(w, status, Error, data); err != nil {
		log.Printf("render error page: request_id=%s error=%v", httpx.RequestIDFrom(req), err)
		http.Error(w, message, status)
	}
}

var _ httpx.ErrorRenderer = (*Renderer)(nil)
