// Package authz decorates outgoing GED API requests with the session
// credential and reacts to the API refusing it.
package authz

import (
	"net/http"
	"net/url"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/golang/glog"
)

// Transport is an http.RoundTripper that attaches the credential of the
// session found in each request's context.
//
// A 401 answer to a request that carried a credential means the API no
// longer honors it: the session is logged out and the user is sent to the
// login screen. A 403 answer sends the user to the unauthorized screen and
// keeps the session. In both cases the response itself is returned
// unchanged, so the caller still sees the failure.
type Transport struct {
	// Base is the underlying RoundTripper. http.DefaultTransport is used when
	// it is nil.
	Base http.RoundTripper
	// Navigator is told where to send the user.
	Navigator navigation.Navigator
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	holder := session.FromContext(ctx)
	var attached bool
	if holder != nil {
		token, err := holder.Token(ctx)
		if err != nil {
			glog.Errorf("error reading credential for %s: %s", req.URL.Path, err)
		} else if token != nil {
			// RoundTrippers must not modify the request they were handed.
			req = req.Clone(ctx)
			token.SetAuthHeader(req)
			attached = true
		}
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return resp, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if attached {
			glog.V(1).Infof("credential refused by %s; logging out", req.URL.Path)
			holder.Logout(ctx)
			t.navigate(req, navigation.RouteLogin, navigation.SessionExpiredQuery())
		}
	case http.StatusForbidden:
		t.navigate(req, navigation.RouteUnauthorized, nil)
	}
	return resp, nil
}

func (t *Transport) navigate(
	req *http.Request,
	route string,
	query url.Values,
) {
	if t.Navigator != nil {
		t.Navigator.Navigate(req.Context(), route, query)
	}
}

// Wrap returns a function installing a Transport around the client's own
// transport, suitable for restmachinery's WrapTransport option.
func Wrap(navigator navigation.Navigator) func(http.RoundTripper) http.RoundTripper {
	return func(base http.RoundTripper) http.RoundTripper {
		return &Transport{
			Base:      base,
			Navigator: navigator,
		}
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
