package webapp

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/analytica/webapp/pkg/backend"
)

//go:embed templates/*.html
var templateFS embed.FS

// BaseView carries the chrome every page shares: title, theme, and the
// signed-in user when known.
type BaseView struct {
	Title  string
	Theme  Theme
	Authed bool
	User   *backend.User
}

// ThemeStyle exposes the theme tokens as a trusted style attribute value.
func (v BaseView) ThemeStyle() template.CSS {
	return template.CSS(v.Theme.CSSVariablesInline())
}

// UserLabel is the navbar display name; the profile may be absent even for
// a valid session.
func (v BaseView) UserLabel() string {
	if v.User == nil {
		return ""
	}
	if v.User.FullName != "" {
		return v.User.FullName
	}
	return v.User.Email
}

// Renderer executes embedded page templates against the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout plus one template set per page.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"formatTime": func(t interface{ Format(string) string }) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}
	base, err := template.New("layout").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("webapp: parse layout: %w", err)
	}
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("webapp: glob templates: %w", err)
	}
	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimSuffix(path.Base(entry), ".html")
		if name == "layout" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("webapp: clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(templateFS, entry)
		if err != nil {
			return nil, fmt.Errorf("webapp: parse template %s: %w", name, err)
		}
		pages[name] = page
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page into the response.
func (r *Renderer) Render(c *fiber.Ctx, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("webapp: unknown page template %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("webapp: render %s: %w", page, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
