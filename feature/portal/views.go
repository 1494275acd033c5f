package portal

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"reservation-portal/core/history"
	"reservation-portal/core/reports"
	"reservation-portal/core/session"

	"github.com/gofiber/fiber/v2"
)

// Page names.
const (
	PageUnauthorized = "unauthorized"
	PageUpload       = "upload"
	PageReports      = "reports"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the model shared by every page.
type PageData struct {
	Title    string
	Session  session.Snapshot
	Error    string
	Sections []reports.Section
	// Total is the number of files across Sections.
	Total int
	Runs     []history.Run
}

// Views holds one parsed template set per page, each combined with the layout.
type Views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"downloadURL": downloadURL,
	"timestamp":   func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

// LoadViews parses the embedded templates.
func LoadViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageUnauthorized, PageUpload, PageReports} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		v.pages[page] = t
	}
	return v, nil
}

// Render writes page with the given status.
func (v *Views) Render(c *fiber.Ctx, status int, page string, data PageData) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func downloadURL(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/downloads/" + strings.Join(segments, "/")
}
