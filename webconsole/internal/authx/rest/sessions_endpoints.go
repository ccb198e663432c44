package rest

import (
	"net/http"
	"strings"

	"github.com/adcsa/ged/internal/forms"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// queryResetDone is set on the login route after a successful reset.
const queryResetDone = "reset"

type loginForm struct {
	Username string
	Notice   string
	Error    string
	Fields   forms.Errors
}

type sessionsEndpoints struct {
	*webmachinery.BaseEndpoints
	homeURL string
}

// NewSessionsEndpoints returns the login and logout pages. homeURL is where
// users land after logging in.
func NewSessionsEndpoints(
	baseEndpoints *webmachinery.BaseEndpoints,
	homeURL string,
) webmachinery.Endpoints {
	return &sessionsEndpoints{
		BaseEndpoints: baseEndpoints,
		homeURL:       homeURL,
	}
}

func (s *sessionsEndpoints) Register(router *mux.Router) {
	// Login form
	router.HandleFunc(
		navigation.RouteLogin,
		s.loginForm,
	).Methods(http.MethodGet)

	// Login
	router.HandleFunc(
		navigation.RouteLogin,
		s.login,
	).Methods(http.MethodPost)

	// Logout
	router.HandleFunc(
		navigation.RouteLogout,
		s.logout,
	).Methods(http.MethodGet, http.MethodPost)
}

func (s *sessionsEndpoints) loginForm(
	w http.ResponseWriter,
	r *http.Request,
) {
	if session.FromContext(r.Context()).IsAuthenticated() {
		webmachinery.Redirect(w, r, navigation.RouteHome)
		return
	}
	form := loginForm{}
	query := r.URL.Query()
	switch {
	case query.Get(navigation.ParamReason) == navigation.ReasonSessionExpired:
		form.Notice = forms.MsgSessionExpired
	case query.Get(navigation.ParamError) ==
		navigation.ErrorInsufficientPermission:
		form.Notice = forms.MsgInsufficientRights
	case query.Get(queryResetDone) != "":
		form.Notice = forms.MsgPasswordReset
	}
	s.serveLoginForm(w, r, http.StatusOK, form)
}

func (s *sessionsEndpoints) login(w http.ResponseWriter, r *http.Request) {
	holder := session.FromContext(r.Context())
	if holder.IsAuthenticated() {
		webmachinery.Redirect(w, r, navigation.RouteHome)
		return
	}
	credentials := authx.Credentials{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	// The password is never sent back to the browser.
	form := loginForm{
		Username: credentials.Username,
	}
	if form.Fields = forms.Login(
		credentials.Username,
		credentials.Password,
	); !form.Fields.Valid() {
		s.serveLoginForm(w, r, http.StatusBadRequest, form)
		return
	}
	resp, err := holder.Login(r.Context(), credentials)
	if err != nil {
		if !session.IsInvalidCredentials(err) {
			glog.Errorf("error logging in %q: %s", credentials.Username, err)
		}
		form.Error = forms.LoginFeedback(err).Message
		status := http.StatusBadGateway
		if session.IsInvalidCredentials(err) {
			status = http.StatusUnauthorized
		}
		s.serveLoginForm(w, r, status, form)
		return
	}
	if resp.IsFirstLogin() {
		webmachinery.Redirect(w, r, navigation.RouteFirstPassword)
		return
	}
	webmachinery.Redirect(w, r, s.homeURL)
}

func (s *sessionsEndpoints) logout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Logout(r.Context())
	if !s.FollowNavigation(w, r) {
		webmachinery.Redirect(w, r, navigation.RouteLogin)
	}
}

func (s *sessionsEndpoints) serveLoginForm(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form loginForm,
) {
	s.ServePage(
		webmachinery.PageRequest{
			W:       w,
			R:       r,
			Page:    templates.PageLogin,
			Title:   "Connexion",
			Status:  status,
			Content: form,
		},
	)
}
