package guard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mockSession struct {
	authenticated bool
	roles         []string
}

func (m mockSession) IsAuthenticated() bool {
	return m.authenticated
}

func (m mockSession) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range m.roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

func TestAuth(t *testing.T) {
	require.True(t, Auth(mockSession{authenticated: true}).Allowed)
	d := Auth(mockSession{})
	require.False(t, d.Allowed)
	require.Equal(t, "/login", d.Redirect())
	require.False(t, Auth(nil).Allowed)
}

func TestRole(t *testing.T) {
	testCases := []struct {
		name       string
		guard      Guard
		session    Session
		assertions func(t *testing.T, d Decision)
	}{
		{
			name:    "no roles required",
			guard:   Role(),
			session: mockSession{},
			assertions: func(t *testing.T, d Decision) {
				require.True(t, d.Allowed)
			},
		},
		{
			name:    "role held",
			guard:   Role("ADMIN", "ARCHIVISTE"),
			session: mockSession{authenticated: true, roles: []string{"ARCHIVISTE"}},
			assertions: func(t *testing.T, d Decision) {
				require.True(t, d.Allowed)
			},
		},
		{
			name:    "role missing",
			guard:   Role("ADMIN"),
			session: mockSession{authenticated: true, roles: []string{"USER"}},
			assertions: func(t *testing.T, d Decision) {
				require.False(t, d.Allowed)
				require.Equal(t, "/login?error=insufficient_permissions", d.Redirect())
			},
		},
		{
			name:    "no user record",
			guard:   Role("ADMIN"),
			session: mockSession{authenticated: true},
			assertions: func(t *testing.T, d Decision) {
				require.False(t, d.Allowed)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(t, testCase.guard(testCase.session))
		})
	}
}

func TestAll(t *testing.T) {
	g := All(Auth, Role("ADMIN"))
	require.Equal(t, "/login", g(mockSession{roles: []string{"ADMIN"}}).Redirect())
	require.Equal(
		t,
		"/login?error=insufficient_permissions",
		g(mockSession{authenticated: true}).Redirect(),
	)
	require.True(
		t,
		g(mockSession{authenticated: true, roles: []string{"ADMIN"}}).Allowed,
	)
}
