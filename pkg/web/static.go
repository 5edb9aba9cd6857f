package web

import (
	"io/fs"
	"net/http"
)

// PublicRoute is a static file route produced by PublicFileRoutes.
type PublicRoute struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// DistServer serves files from subdir of fsys under the URL prefix.
func DistServer(fsys fs.FS, subdir, prefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return http.NotFound
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub))).ServeHTTP
}

// PublicFile serves a single file from subdir of fsys.
func PublicFile(fsys fs.FS, subdir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := fs.Sub(fsys, subdir)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, sub, name)
	}
}

// PublicFileRoutes builds a GET route at the root for each named file.
func PublicFileRoutes(fsys fs.FS, subdir string, names ...string) []PublicRoute {
	routes := make([]PublicRoute, 0, len(names))
	for _, name := range names {
		routes = append(routes, PublicRoute{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: PublicFile(fsys, subdir, name),
		})
	}
	return routes
}
