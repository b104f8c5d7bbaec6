package web

import (
	"embed"
	"io/fs"
)

//go:embed views public
var assetsFS embed.FS

// TemplatesFS exposes the embedded templates rooted at the views directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(assetsFS, "views")
	if err != nil {
		panic("embedded views are missing: " + err.Error())
	}
	return sub
}

// PublicFS exposes the embedded static assets rooted at the public directory.
func PublicFS() fs.FS {
	sub, err := fs.Sub(assetsFS, "public")
	if err != nil {
		panic("embedded assets are missing: " + err.Error())
	}
	return sub
}
