package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the exported library files under root. Directory
// requests resolve to the directory's index.html; anything that escapes
// root or does not exist is a 404.
func StaticHandler(root string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			SendError(c, http.StatusNotFound, ErrorCodeFileNotFound, "Not found")
			return
		}

		requested := strings.TrimPrefix(c.Request.URL.Path, "/")
		if requested == "" {
			requested = "index.html"
		}

		target, ok := resolveWithin(root, requested)
		if !ok {
			SendError(c, http.StatusNotFound, ErrorCodeFileNotFound, "Not found")
			return
		}

		info, err := os.Stat(target)
		if err != nil {
			SendError(c, http.StatusNotFound, ErrorCodeFileNotFound, "Not found")
			return
		}
		if info.IsDir() {
			target = filepath.Join(target, "index.html")
			info, err = os.Stat(target)
			if err != nil {
				SendError(c, http.StatusNotFound, ErrorCodeFileNotFound, "Not found")
				return
			}
		}

		// http.ServeFile would redirect paths ending in /index.html, so the
		// resolved file is served directly.
		f, err := os.Open(target)
		if err != nil {
			SendError(c, http.StatusNotFound, ErrorCodeFileNotFound, "Not found")
			return
		}
		defer f.Close()
		http.ServeContent(c.Writer, c.Request, filepath.Base(target), info.ModTime(), f)
	}
}

// resolveWithin joins a request path onto root, rejecting anything that
// would escape it.
func resolveWithin(root, requested string) (string, bool) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(requested))
	target := filepath.Join(root, cleaned)

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}
