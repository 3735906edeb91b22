// Package views holds the embedded page templates and stylesheet.
package views

import (
	"embed"
	"io/fs"
)

//go:embed *.html
var pages embed.FS

//go:embed static
var static embed.FS

// Pages returns the page templates
func Pages() fs.FS {
	return pages
}

// Static returns the files served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
