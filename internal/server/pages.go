package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// IndexView is the data for the credential form.
type IndexView struct {
	Title       string
	RedirectURI string
}

// ResultView is the data for the token page. The client secret is never part of it.
type ResultView struct {
	Title        string
	UserID       string
	AccessToken  string
	RefreshToken string
	Refreshed    bool
}

// ErrorView is the data for an error page.
type ErrorView struct {
	Title   string
	Message string
	Detail  string
}

// render buffers the page; a template failure sends a plain 500 instead of a partial page.
func render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
