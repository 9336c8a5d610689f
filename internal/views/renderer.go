package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages rendered through the shared layout
var pages = []string{
	"login.html",
	"signup.html",
	"feed.html",
	"messages.html",
	"profile.html",
	"user_profile.html",
	"notifications.html",
}

var videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".avi": true}

var funcs = template.FuncMap{
	"upload": func(name string) string {
		return "/uploads/" + url.PathEscape(name)
	},
	"pathEscape": url.PathEscape,
	"isVideo": func(name string) bool {
		return videoExtensions[strings.ToLower(filepath.Ext(name))]
	},
	"timefmt": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
}

// Renderer implements echo.Renderer over the embedded page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page against the layout
func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		t, err := base.ParseFS(templateFS, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes the named page. echo.Map data gains the viewer and pending flashes.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("views: unknown page %q", name)
	}
	if m, ok := data.(echo.Map); ok {
		m["Viewer"] = session.FromContext(c)
		m["Flashes"] = session.PopFlashes(c)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
