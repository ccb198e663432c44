// Package guard decides whether the current session may enter a route.
// Front ends turn a refusal into whatever "go elsewhere" means for them.
package guard

import (
	"net/url"

	"github.com/adcsa/ged/internal/navigation"
)

// Session is the part of session.Holder the guards look at.
type Session interface {
	IsAuthenticated() bool
	HasAnyRole(roles ...string) bool
}

// Decision is the outcome of a guard.
type Decision struct {
	Allowed bool
	// Route and Query say where to send the user when not Allowed.
	Route string
	Query url.Values
}

// Redirect returns the URL a refused user is sent to.
func (d Decision) Redirect() string {
	return navigation.URL(d.Route, d.Query)
}

// Guard evaluates a session.
type Guard func(Session) Decision

var allow = Decision{Allowed: true}

// Auth admits authenticated sessions and sends everyone else to the login
// screen.
func Auth(s Session) Decision {
	if s != nil && s.IsAuthenticated() {
		return allow
	}
	return Decision{Route: navigation.RouteLogin}
}

// Role returns a Guard admitting sessions whose user carries at least one of
// roles. An empty list admits everyone. The user record is only known after
// a login in the current process, so a session restored from storage is
// refused until it logs in again.
func Role(roles ...string) Guard {
	return func(s Session) Decision {
		if len(roles) == 0 {
			return allow
		}
		if s != nil && s.HasAnyRole(roles...) {
			return allow
		}
		return Decision{
			Route: navigation.RouteLogin,
			Query: navigation.InsufficientPermissionsQuery(),
		}
	}
}

// All returns a Guard that admits a session only if every guard does. The
// first refusal wins.
func All(guards ...Guard) Guard {
	return func(s Session) Decision {
		for _, g := range guards {
			if d := g(s); !d.Allowed {
				return d
			}
		}
		return allow
	}
}
