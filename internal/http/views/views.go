// Package views holds the server-rendered pages.
package views

import (
	"embed"
	"html/template"
	"time"

	"notes-server/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"joinTags": domain.JoinTags,
	"stamp": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04")
	},
}

// Templates parses every page. Each page is addressed by its file name, e.g. "notes.html".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))
}
