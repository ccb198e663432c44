package webmachinery

import (
	"net/http"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/internal/version"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// Endpoints is an interface to be implemented by all groups of pages.
type Endpoints interface {
	// Register is invoked to register the pages with a router.
	Register(router *mux.Router)
}

// BaseEndpoints provides what every group of pages needs.
type BaseEndpoints struct {
	Renderer   *templates.Renderer
	AuthFilter Filter
}

// PageRequest describes one page to render.
type PageRequest struct {
	W       http.ResponseWriter
	R       *http.Request
	Page    string
	Title   string
	Status  int
	Content interface{}
	Layout  *templates.Layout
}

// ServePage renders a page inside the layout, which shows the navigation
// only to authenticated sessions.
func (b *BaseEndpoints) ServePage(req PageRequest) {
	layout := templates.Layout{}
	if req.Layout != nil {
		layout = *req.Layout
	}
	layout.Title = req.Title
	layout.Active = req.R.URL.Path
	layout.Version = version.Version()
	if holder := session.FromContext(req.R.Context()); holder != nil {
		layout.Authenticated = holder.IsAuthenticated()
		layout.User = holder.CurrentUser()
	}
	status := req.Status
	if status == 0 {
		status = http.StatusOK
	}
	if err := b.Renderer.Render(
		req.W,
		status,
		req.Page,
		templates.Page{
			Layout:  layout,
			Content: req.Content,
		},
	); err != nil {
		glog.Errorf("error rendering %s: %s", req.R.URL.Path, err)
		http.Error(
			req.W,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
	}
}

// FollowNavigation redirects the browser if something asked for a
// navigation while the request was being served, for instance the API
// refusing the session. It returns true if it did.
func (b *BaseEndpoints) FollowNavigation(
	w http.ResponseWriter,
	r *http.Request,
) bool {
	recorder := navigation.RecorderFromContext(r.Context())
	if recorder == nil {
		return false
	}
	target, ok := recorder.Target()
	if !ok {
		return false
	}
	Redirect(w, r, target)
	return true
}

// Redirect answers with a 303 to target, so a POST is followed by a GET.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
