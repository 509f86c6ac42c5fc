// Package views holds the HTML templates of the directory.
package views

import (
	"embed"
	"html/template"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"comma": humanize.Comma,
}

// Templates parses every page. Each page is addressed by its file name,
// e.g. "cuisine_list.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
