package webmachinery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/stretchr/testify/require"
)

func TestGuardFilters(t *testing.T) {
	admin := &authx.User{Username: "admin", Roles: []string{"ADMIN"}}
	agent := &authx.User{Username: "agent", Roles: []string{"AGENT"}}
	testCases := []struct {
		name     string
		filter   Filter
		user     *authx.User
		noHolder bool
		location string
	}{
		{
			name:     "no session at all",
			filter:   NewAuthFilter(),
			noHolder: true,
			location: "/login",
		},
		{
			name:     "anonymous",
			filter:   NewAuthFilter(),
			location: "/login",
		},
		{
			name:   "authenticated",
			filter: NewAuthFilter(),
			user:   agent,
		},
		{
			name:     "anonymous on a role page",
			filter:   NewRoleFilter("ADMIN"),
			location: "/login",
		},
		{
			name:     "missing role",
			filter:   NewRoleFilter("ADMIN"),
			user:     agent,
			location: "/login?error=insufficient_permissions",
		},
		{
			name:   "role",
			filter: NewRoleFilter("ADMIN", "SUPERVISEUR"),
			user:   admin,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/settings", nil)
			if !testCase.noHolder {
				holder := session.NewHolder(
					context.Background(),
					storage.NewMemoryStore(),
					mockAuthenticator{user: testCase.user},
					navigation.ContextNavigator{},
				)
				if testCase.user != nil {
					_, err := holder.Login(context.Background(), authx.Credentials{})
					require.NoError(t, err)
				}
				req = req.WithContext(session.WithHolder(req.Context(), holder))
			}
			var handled bool
			rr := httptest.NewRecorder()
			testCase.filter.Decorate(
				func(http.ResponseWriter, *http.Request) {
					handled = true
				},
			)(rr, req)
			if testCase.location == "" {
				require.True(t, handled)
				return
			}
			require.False(t, handled)
			require.Equal(t, http.StatusSeeOther, rr.Code)
			require.Equal(t, testCase.location, rr.Header().Get("Location"))
		})
	}
}
