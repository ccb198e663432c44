package rest

import (
	"net/http"

	"github.com/adcsa/ged/internal/documents"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

type dashboard struct {
	Stats      []documents.Stat
	Query      string
	Category   string
	Categories []string
	Documents  []documents.Document
}

type dashboardEndpoints struct {
	*webmachinery.BaseEndpoints
	catalog documents.Catalog
}

// NewDashboardEndpoints returns the dashboard listing the documents of
// catalog.
func NewDashboardEndpoints(
	baseEndpoints *webmachinery.BaseEndpoints,
	catalog documents.Catalog,
) webmachinery.Endpoints {
	return &dashboardEndpoints{
		BaseEndpoints: baseEndpoints,
		catalog:       catalog,
	}
}

func (d *dashboardEndpoints) Register(router *mux.Router) {
	// Home
	router.HandleFunc(
		navigation.RouteHome,
		d.AuthFilter.Decorate(d.home),
	).Methods(http.MethodGet)

	// Dashboard
	router.HandleFunc(
		navigation.RouteDashboard,
		d.AuthFilter.Decorate(d.dashboard),
	).Methods(http.MethodGet)
}

func (d *dashboardEndpoints) home(w http.ResponseWriter, r *http.Request) {
	webmachinery.Redirect(w, r, navigation.RouteDashboard)
}

func (d *dashboardEndpoints) dashboard(
	w http.ResponseWriter,
	r *http.Request,
) {
	query := r.URL.Query()
	filter := documents.Filter{
		Query:    query.Get("q"),
		Category: query.Get("category"),
	}
	if filter.Category == "" {
		filter.Category = documents.AllCategories
	}
	stats, err := d.catalog.Stats(r.Context())
	if err != nil {
		glog.Errorf("error retrieving dashboard figures: %s", err)
		http.Error(
			w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}
	docs, err := d.catalog.List(r.Context(), filter)
	if err != nil {
		glog.Errorf("error listing documents: %s", err)
		http.Error(
			w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}
	d.ServePage(
		webmachinery.PageRequest{
			W:     w,
			R:     r,
			Page:  templates.PageDashboard,
			Title: "Tableau de bord",
			Content: dashboard{
				Stats:      stats,
				Query:      filter.Query,
				Category:   filter.Category,
				Categories: d.catalog.Categories(),
				Documents:  docs,
			},
		},
	)
}
