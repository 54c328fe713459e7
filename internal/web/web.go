// Package web holds the HTML templates and their helper functions.
package web

import (
	"embed"
	"html/template"
	"time"

	"stock_simulator/internal/utils"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available inside templates
var Funcs = template.FuncMap{
	"usd": utils.USD,
	"abs": func(n int64) int64 {
		if n < 0 {
			return -n
		}
		return n
	},
	"timestamp": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
}

// Templates parses every page template
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
