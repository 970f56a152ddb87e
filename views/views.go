// Package views embeds the HTML templates and static assets served by the app.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var templates embed.FS

//go:embed static
var static embed.FS

// NewEngine returns the html engine over the embedded templates.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(templates), ".html")
}

// Static returns the embedded assets rooted at the static directory.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
