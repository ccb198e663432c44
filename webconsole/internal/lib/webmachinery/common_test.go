package webmachinery

import (
	"context"

	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
)

type mockAuthenticator struct {
	user *authx.User
}

func (m mockAuthenticator) Login(
	context.Context,
	authx.Credentials,
) (authx.LoginResponse, error) {
	return authx.LoginResponse{
		AccessToken: "opaque-token",
		User:        m.user,
	}, nil
}

type mockBackend struct {
	storage.Backend
	CheckHealthFn func(context.Context) error
}

func (m *mockBackend) CheckHealth(ctx context.Context) error {
	return m.CheckHealthFn(ctx)
}
