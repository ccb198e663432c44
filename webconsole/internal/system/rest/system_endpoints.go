package rest

import (
	"net/http"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/gorilla/mux"
)

// RoleAdmin is the role allowed into the settings page.
const RoleAdmin = "ADMIN"

type systemEndpoints struct {
	*webmachinery.BaseEndpoints
	adminFilter webmachinery.Filter
}

// NewSystemEndpoints returns the informational pages plus the profile and
// settings pages.
func NewSystemEndpoints(
	baseEndpoints *webmachinery.BaseEndpoints,
) webmachinery.Endpoints {
	return &systemEndpoints{
		BaseEndpoints: baseEndpoints,
		adminFilter:   webmachinery.NewRoleFilter(RoleAdmin),
	}
}

func (s *systemEndpoints) Register(router *mux.Router) {
	// Session expired
	router.HandleFunc(
		navigation.RouteSessionExpired,
		s.page(templates.PageSessionExpired, "Session expirée"),
	).Methods(http.MethodGet)

	// Unauthorized
	router.HandleFunc(
		navigation.RouteUnauthorized,
		s.page(templates.PageUnauthorized, "Accès refusé"),
	).Methods(http.MethodGet)

	// Profile
	router.HandleFunc(
		navigation.RouteProfile,
		s.AuthFilter.Decorate(s.page(templates.PageProfile, "Mon profil")),
	).Methods(http.MethodGet)

	// Settings
	router.HandleFunc(
		navigation.RouteSettings,
		s.adminFilter.Decorate(s.page(templates.PageSettings, "Paramètres")),
	).Methods(http.MethodGet)
}

func (s *systemEndpoints) page(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ServePage(
			webmachinery.PageRequest{
				W:     w,
				R:     r,
				Page:  page,
				Title: title,
			},
		)
	}
}
