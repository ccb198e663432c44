// Package templates renders the console's HTML pages. Every page is parsed
// together with the shared layout.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/adcsa/ged/sdk/authx"
	"github.com/pkg/errors"
)

//go:embed html/*.html
var files embed.FS

// Page names.
const (
	PageLogin          = "login"
	PageResetRequest   = "reset_request"
	PageResetForm      = "reset_form"
	PageFirstPassword  = "first_password"
	PageChangePassword = "change_password"
	PageSessionExpired = "session_expired"
	PageUnauthorized   = "unauthorized"
	PageDashboard      = "dashboard"
	PageProfile        = "profile"
	PageSettings       = "settings"
)

var pages = []string{
	PageLogin,
	PageResetRequest,
	PageResetForm,
	PageFirstPassword,
	PageChangePassword,
	PageSessionExpired,
	PageUnauthorized,
	PageDashboard,
	PageProfile,
	PageSettings,
}

// Layout is what the shared layout needs to know about every page.
type Layout struct {
	Title         string
	Active        string
	Authenticated bool
	User          *authx.User
	Version       string
	// Refresh, when set, makes the browser load RefreshURL after that delay.
	Refresh    time.Duration
	RefreshURL string
}

// Page is the data a page template executes with.
type Page struct {
	Layout
	Content interface{}
}

// Renderer executes the parsed pages.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"datetime": func(t *authx.LocalTime) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006 15:04")
	},
	"seconds": func(d time.Duration) int {
		return int(d.Seconds())
	},
	"join": strings.Join,
}

// NewRenderer parses every page with the layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		pages: map[string]*template.Template{},
	}
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			files,
			"html/layout.html",
			"html/"+page+".html",
		)
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing page %q", page)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes the page to w with the given status. The page is executed
// into a buffer first so a failing template never yields half a page.
func (r *Renderer) Render(
	w http.ResponseWriter,
	status int,
	page string,
	data Page,
) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return errors.Errorf("no such page %q", page)
	}
	buf := &bytes.Buffer{}
	if err := tmpl.ExecuteTemplate(buf, "layout.html", data); err != nil {
		return errors.Wrapf(err, "error rendering page %q", page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
