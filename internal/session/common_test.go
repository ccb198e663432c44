package session

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	LoginFn func(context.Context, authx.Credentials) (authx.LoginResponse, error)
}

func (m *mockAuthenticator) Login(
	ctx context.Context,
	credentials authx.Credentials,
) (authx.LoginResponse, error) {
	return m.LoginFn(ctx, credentials)
}

type mockNavigator struct {
	targets []string
}

func (m *mockNavigator) Navigate(
	_ context.Context,
	route string,
	query url.Values,
) {
	m.targets = append(m.targets, navigation.URL(route, query))
}

type mockStore struct {
	storage.Store
	SetErr    error
	DeleteErr error
	GetErr    error
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	return m.Store.Get(ctx, key)
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	return m.Store.Set(ctx, key, value)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return m.Store.Delete(ctx, key)
}

var errBoom = errors.New("boom")

func newTestToken(t *testing.T, expiresAt time.Time) string {
	token, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": "jdupont",
			"exp": expiresAt.Unix(),
		},
	).SignedString([]byte("not-the-api-secret"))
	require.NoError(t, err)
	return token
}

func storedToken(t *testing.T, store storage.Store) (string, bool) {
	value, ok, err := store.Get(context.Background(), TokenKey)
	require.NoError(t, err)
	return value, ok
}
