// Package navigation names the screens of the console and lets the session
// and request machinery send the user to one of them without knowing which
// front end is showing it.
package navigation

import (
	"context"
	"net/url"
)

// Routes of the console.
const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RouteDashboard      = "/dashboard"
	RouteResetRequest   = "/reset-request"
	RouteResetForm      = "/reset-form"
	RouteFirstPassword  = "/first-password"
	RouteChangePassword = "/change-password"
	RouteSessionExpired = "/session-expired"
	RouteUnauthorized   = "/unauthorized"
	RouteProfile        = "/profile"
	RouteSettings       = "/settings"
)

// Query parameters attached to the login route to explain a redirect.
const (
	ParamReason = "reason"
	ParamError  = "error"

	ReasonSessionExpired        = "session_expired"
	ErrorInsufficientPermission = "insufficient_permissions"
)

// Navigator sends the user to a route.
type Navigator interface {
	Navigate(ctx context.Context, route string, query url.Values)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, route string, query url.Values)

// Navigate implements Navigator.
func (n NavigatorFunc) Navigate(
	ctx context.Context,
	route string,
	query url.Values,
) {
	n(ctx, route, query)
}

// URL renders a route and its query as a relative URL.
func URL(route string, query url.Values) string {
	if len(query) == 0 {
		return route
	}
	return route + "?" + query.Encode()
}

// SessionExpiredQuery is the query the login route receives after a session
// was revoked by the API.
func SessionExpiredQuery() url.Values {
	return url.Values{ParamReason: []string{ReasonSessionExpired}}
}

// InsufficientPermissionsQuery is the query the login route receives when a
// role requirement was not met.
func InsufficientPermissionsQuery() url.Values {
	return url.Values{ParamError: []string{ErrorInsufficientPermission}}
}
