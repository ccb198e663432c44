package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const testHomeURL = "/dashboard"

type mockAuthenticator struct {
	LoginFn func(context.Context, authx.Credentials) (authx.LoginResponse, error)
}

func (m *mockAuthenticator) Login(
	ctx context.Context,
	credentials authx.Credentials,
) (authx.LoginResponse, error) {
	return m.LoginFn(ctx, credentials)
}

type mockPasswordsClient struct {
	FirstChangeFn func(
		context.Context,
		authx.FirstPasswordChange,
	) (authx.LoginResponse, error)
	ChangeFn func(
		context.Context,
		authx.PasswordChange,
	) (authx.MessageResponse, error)
	RequestResetFn func(context.Context, string) (authx.MessageResponse, error)
	ResetFn        func(
		context.Context,
		authx.PasswordReset,
	) (authx.MessageResponse, error)
}

func (m *mockPasswordsClient) FirstChange(
	ctx context.Context,
	change authx.FirstPasswordChange,
) (authx.LoginResponse, error) {
	return m.FirstChangeFn(ctx, change)
}

func (m *mockPasswordsClient) Change(
	ctx context.Context,
	change authx.PasswordChange,
) (authx.MessageResponse, error) {
	return m.ChangeFn(ctx, change)
}

func (m *mockPasswordsClient) RequestReset(
	ctx context.Context,
	email string,
) (authx.MessageResponse, error) {
	return m.RequestResetFn(ctx, email)
}

func (m *mockPasswordsClient) Reset(
	ctx context.Context,
	reset authx.PasswordReset,
) (authx.MessageResponse, error) {
	return m.ResetFn(ctx, reset)
}

// testConsole serves one group of pages for a single browser.
type testConsole struct {
	holder  *session.Holder
	handler http.Handler
}

func newTestConsole(
	t *testing.T,
	authenticator session.Authenticator,
	newEndpoints func(*webmachinery.BaseEndpoints) webmachinery.Endpoints,
) *testConsole {
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	holder := session.NewHolder(
		context.Background(),
		storage.NewMemoryStore(),
		authenticator,
		navigation.ContextNavigator{},
	)
	router := mux.NewRouter()
	newEndpoints(
		&webmachinery.BaseEndpoints{
			Renderer:   renderer,
			AuthFilter: webmachinery.NewAuthFilter(),
		},
	).Register(router)
	return &testConsole{
		holder: holder,
		handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := session.WithHolder(r.Context(), holder)
			ctx, _ = navigation.WithRecorder(ctx)
			router.ServeHTTP(w, r.WithContext(ctx))
		}),
	}
}

func (c *testConsole) login(t *testing.T) {
	_, err := c.holder.Login(
		context.Background(),
		authx.Credentials{Username: "jdupont", Password: "secret"},
	)
	require.NoError(t, err)
}

func (c *testConsole) get(path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func (c *testConsole) post(
	path string,
	form url.Values,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(
		http.MethodPost,
		path,
		strings.NewReader(form.Encode()),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

// loginAs returns an authenticator accepting any credentials for user.
func loginAs(user *authx.User) *mockAuthenticator {
	return &mockAuthenticator{
		LoginFn: func(
			context.Context,
			authx.Credentials,
		) (authx.LoginResponse, error) {
			return authx.LoginResponse{
				AccessToken: "opaque-token",
				User:        user,
			}, nil
		},
	}
}
