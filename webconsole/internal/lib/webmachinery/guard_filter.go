package webmachinery

import (
	"net/http"

	"github.com/adcsa/ged/internal/guard"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
)

type guardFilter struct {
	guard guard.Guard
}

// NewGuardFilter returns a Filter that lets a request through only if the
// browser's session passes g, and redirects it otherwise.
func NewGuardFilter(g guard.Guard) Filter {
	return &guardFilter{
		guard: g,
	}
}

// NewAuthFilter returns a Filter admitting authenticated sessions only.
func NewAuthFilter() Filter {
	return NewGuardFilter(guard.Auth)
}

// NewRoleFilter returns a Filter admitting authenticated sessions whose user
// carries one of roles.
func NewRoleFilter(roles ...string) Filter {
	return NewGuardFilter(guard.All(guard.Auth, guard.Role(roles...)))
}

func (g *guardFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		holder := session.FromContext(r.Context())
		if holder == nil {
			Redirect(w, r, navigation.RouteLogin)
			return
		}
		if decision := g.guard(holder); !decision.Allowed {
			Redirect(w, r, decision.Redirect())
			return
		}
		handle(w, r)
	}
}
