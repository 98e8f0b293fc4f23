// Package web provides the embedded browser form for the reply drafter.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// StaticFS returns the embedded assets with "static" as the root, so files
// are accessed directly (e.g., "index.html").
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
