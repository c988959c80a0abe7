// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// FuncMap holds the helpers available to every template
var FuncMap = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"upload": func(name string) string {
		if name == "" {
			return ""
		}
		return "/uploads/" + url.PathEscape(name)
	},
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
	"deref": func(n *int) int {
		if n == nil {
			return 0
		}
		return *n
	},
}

// Templates parses every embedded page template
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(templateFS, "templates/*.html")
}

// Static returns the embedded /static tree
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
