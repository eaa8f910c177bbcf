// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/css/*.css static/js/*.js
var staticFS embed.FS

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"isodate": func(t time.Time) string {
		return t.Format(time.DateOnly)
	},
	"join":  strings.Join,
	"lower": strings.ToLower,
	"year":  func() int { return time.Now().Year() },
	"indent": func(level int) int {
		return (level - 2) * 16
	},
}

// Templates parses every page template. Templates are addressed by file
// name, e.g. "about.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}
