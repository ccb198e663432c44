package rest

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adcsa/ged/internal/forms"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// resetRedirectDelay is how long the confirmation of a reset request stays
// on screen before the browser moves on to the reset form.
const resetRedirectDelay = 3 * time.Second

type passwordForm struct {
	Notice   string
	Success  string
	Error    string
	Fields   forms.Errors
	Strength *forms.Strength
}

type resetRequestForm struct {
	Email  string
	Sent   string
	Error  string
	Fields forms.Errors
}

type resetForm struct {
	Token    string
	Error    string
	Fields   forms.Errors
	Strength *forms.Strength
}

type passwordsEndpoints struct {
	*webmachinery.BaseEndpoints
	passwords authx.PasswordsClient
	homeURL   string
}

// NewPasswordsEndpoints returns the pages where passwords are replaced or
// recovered.
func NewPasswordsEndpoints(
	baseEndpoints *webmachinery.BaseEndpoints,
	passwords authx.PasswordsClient,
	homeURL string,
) webmachinery.Endpoints {
	return &passwordsEndpoints{
		BaseEndpoints: baseEndpoints,
		passwords:     passwords,
		homeURL:       homeURL,
	}
}

func (p *passwordsEndpoints) Register(router *mux.Router) {
	// First login
	router.HandleFunc(
		navigation.RouteFirstPassword,
		p.AuthFilter.Decorate(p.firstPasswordForm),
	).Methods(http.MethodGet)
	router.HandleFunc(
		navigation.RouteFirstPassword,
		p.AuthFilter.Decorate(p.firstPassword),
	).Methods(http.MethodPost)

	// Change
	router.HandleFunc(
		navigation.RouteChangePassword,
		p.AuthFilter.Decorate(p.changePasswordForm),
	).Methods(http.MethodGet)
	router.HandleFunc(
		navigation.RouteChangePassword,
		p.AuthFilter.Decorate(p.changePassword),
	).Methods(http.MethodPost)

	// Reset request
	router.HandleFunc(
		navigation.RouteResetRequest,
		p.resetRequestForm,
	).Methods(http.MethodGet)
	router.HandleFunc(
		navigation.RouteResetRequest,
		p.requestReset,
	).Methods(http.MethodPost)

	// Reset
	router.HandleFunc(
		navigation.RouteResetForm,
		p.resetForm,
	).Methods(http.MethodGet)
	router.HandleFunc(
		navigation.RouteResetForm,
		p.reset,
	).Methods(http.MethodPost)
}

func (p *passwordsEndpoints) firstPasswordForm(
	w http.ResponseWriter,
	r *http.Request,
) {
	p.serveFirstPassword(
		w,
		r,
		http.StatusOK,
		passwordForm{Notice: forms.MsgFirstPasswordNotice},
	)
}

func (p *passwordsEndpoints) firstPassword(
	w http.ResponseWriter,
	r *http.Request,
) {
	change := authx.FirstPasswordChange{
		CurrentPassword: r.PostFormValue(forms.FieldCurrentPassword),
		NewPassword:     r.PostFormValue(forms.FieldNewPassword),
		ConfirmPassword: r.PostFormValue(forms.FieldConfirmPassword),
	}
	form := passwordForm{
		Notice:   forms.MsgFirstPasswordNotice,
		Strength: strengthOf(change.NewPassword),
	}
	if form.Fields = forms.FirstPassword(
		change.CurrentPassword,
		change.NewPassword,
		change.ConfirmPassword,
	); !form.Fields.Valid() {
		p.serveFirstPassword(w, r, http.StatusBadRequest, form)
		return
	}
	holder := session.FromContext(r.Context())
	resp, err := p.passwords.FirstChange(r.Context(), change)
	if p.FollowNavigation(w, r) {
		return
	}
	if err != nil {
		glog.Errorf("error changing first login password: %s", err)
		feedback := forms.APIFeedback(err)
		form.Error = feedback.Message
		form.Fields = feedback.Fields
		p.serveFirstPassword(w, r, http.StatusBadRequest, form)
		return
	}
	if err = holder.ReplaceCredential(r.Context(), resp); err != nil {
		glog.Errorf("error storing renewed credential: %s", err)
	}
	holder.FirstPasswordChanged()
	webmachinery.Redirect(w, r, p.homeURL)
}

func (p *passwordsEndpoints) serveFirstPassword(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form passwordForm,
) {
	p.ServePage(
		webmachinery.PageRequest{
			W:       w,
			R:       r,
			Page:    templates.PageFirstPassword,
			Title:   "Configuration initiale",
			Status:  status,
			Content: form,
		},
	)
}

func (p *passwordsEndpoints) changePasswordForm(
	w http.ResponseWriter,
	r *http.Request,
) {
	p.serveChangePassword(w, r, http.StatusOK, passwordForm{})
}

func (p *passwordsEndpoints) changePassword(
	w http.ResponseWriter,
	r *http.Request,
) {
	current := r.PostFormValue(forms.FieldCurrentPassword)
	newPassword := r.PostFormValue(forms.FieldNewPassword)
	form := passwordForm{
		Strength: strengthOf(newPassword),
	}
	if form.Fields = forms.FirstPassword(
		current,
		newPassword,
		r.PostFormValue(forms.FieldConfirmPassword),
	); !form.Fields.Valid() {
		p.serveChangePassword(w, r, http.StatusBadRequest, form)
		return
	}
	_, err := p.passwords.Change(
		r.Context(),
		authx.PasswordChange{
			OldPassword: current,
			NewPassword: newPassword,
		},
	)
	if p.FollowNavigation(w, r) {
		return
	}
	if err != nil {
		glog.Errorf("error changing password: %s", err)
		feedback := forms.APIFeedback(err)
		form.Error = feedback.Message
		form.Fields = feedback.Fields
		p.serveChangePassword(w, r, http.StatusBadRequest, form)
		return
	}
	p.serveChangePassword(
		w,
		r,
		http.StatusOK,
		passwordForm{Success: forms.MsgPasswordChanged},
	)
}

func (p *passwordsEndpoints) serveChangePassword(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form passwordForm,
) {
	p.ServePage(
		webmachinery.PageRequest{
			W:       w,
			R:       r,
			Page:    templates.PageChangePassword,
			Title:   "Changer de mot de passe",
			Status:  status,
			Content: form,
		},
	)
}

func (p *passwordsEndpoints) resetRequestForm(
	w http.ResponseWriter,
	r *http.Request,
) {
	p.serveResetRequest(w, r, http.StatusOK, resetRequestForm{}, nil)
}

func (p *passwordsEndpoints) requestReset(
	w http.ResponseWriter,
	r *http.Request,
) {
	form := resetRequestForm{
		Email: strings.TrimSpace(r.PostFormValue(forms.FieldEmail)),
	}
	if form.Fields = forms.ResetRequest(form.Email); !form.Fields.Valid() {
		p.serveResetRequest(w, r, http.StatusBadRequest, form, nil)
		return
	}
	_, err := p.passwords.RequestReset(r.Context(), form.Email)
	if p.FollowNavigation(w, r) {
		return
	}
	if err != nil {
		glog.Errorf("error requesting password reset: %s", err)
		feedback := forms.APIFeedback(err)
		form.Error = feedback.Message
		form.Fields = feedback.Fields
		p.serveResetRequest(w, r, http.StatusBadRequest, form, nil)
		return
	}
	p.serveResetRequest(
		w,
		r,
		http.StatusOK,
		resetRequestForm{Sent: forms.MsgResetRequestSent},
		&templates.Layout{
			Refresh:    resetRedirectDelay,
			RefreshURL: navigation.RouteResetForm,
		},
	)
}

func (p *passwordsEndpoints) serveResetRequest(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form resetRequestForm,
	layout *templates.Layout,
) {
	p.ServePage(
		webmachinery.PageRequest{
			W:       w,
			R:       r,
			Page:    templates.PageResetRequest,
			Title:   "Récupération du mot de passe",
			Status:  status,
			Content: form,
			Layout:  layout,
		},
	)
}

func (p *passwordsEndpoints) resetForm(w http.ResponseWriter, r *http.Request) {
	p.serveReset(
		w,
		r,
		http.StatusOK,
		resetForm{Token: r.URL.Query().Get(forms.FieldToken)},
	)
}

func (p *passwordsEndpoints) reset(w http.ResponseWriter, r *http.Request) {
	reset := authx.PasswordReset{
		Token:           strings.TrimSpace(r.PostFormValue(forms.FieldToken)),
		NewPassword:     r.PostFormValue(forms.FieldNewPassword),
		ConfirmPassword: r.PostFormValue(forms.FieldConfirmPassword),
	}
	form := resetForm{
		Token:    reset.Token,
		Strength: strengthOf(reset.NewPassword),
	}
	if form.Fields = forms.ResetPassword(
		reset.Token,
		reset.NewPassword,
		reset.ConfirmPassword,
	); !form.Fields.Valid() {
		p.serveReset(w, r, http.StatusBadRequest, form)
		return
	}
	_, err := p.passwords.Reset(r.Context(), reset)
	if p.FollowNavigation(w, r) {
		return
	}
	if err != nil {
		glog.Errorf("error resetting password: %s", err)
		feedback := forms.APIFeedback(err)
		form.Error = feedback.Message
		form.Fields = feedback.Fields
		p.serveReset(w, r, http.StatusBadRequest, form)
		return
	}
	webmachinery.Redirect(
		w,
		r,
		navigation.URL(
			navigation.RouteLogin,
			url.Values{queryResetDone: []string{"success"}},
		),
	)
}

func (p *passwordsEndpoints) serveReset(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form resetForm,
) {
	p.ServePage(
		webmachinery.PageRequest{
			W:       w,
			R:       r,
			Page:    templates.PageResetForm,
			Title:   "Nouveau mot de passe",
			Status:  status,
			Content: form,
		},
	)
}

func strengthOf(password string) *forms.Strength {
	if password == "" {
		return nil
	}
	strength := forms.PasswordStrength(password)
	return &strength
}
