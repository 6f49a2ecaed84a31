package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static templates
var assets embed.FS

// subFS returns the embedded directory dir as an http.FileSystem rooted at dir.
func subFS(dir string) http.FileSystem {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		// dir is a constant embedded above
		panic(err)
	}

	return http.FS(sub)
}
