package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adcsa/ged/internal/documents"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct{}

func (mockAuthenticator) Login(
	context.Context,
	authx.Credentials,
) (authx.LoginResponse, error) {
	return authx.LoginResponse{
		AccessToken: "opaque-token",
		User:        &authx.User{Username: "jdupont"},
	}, nil
}

type failingCatalog struct {
	documents.Catalog
}

func (failingCatalog) Stats(context.Context) ([]documents.Stat, error) {
	return nil, errors.New("boom")
}

func serveDashboard(
	t *testing.T,
	catalog documents.Catalog,
	authenticated bool,
	path string,
) *httptest.ResponseRecorder {
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	holder := session.NewHolder(
		context.Background(),
		storage.NewMemoryStore(),
		mockAuthenticator{},
		navigation.ContextNavigator{},
	)
	if authenticated {
		_, err = holder.Login(context.Background(), authx.Credentials{})
		require.NoError(t, err)
	}
	router := mux.NewRouter()
	NewDashboardEndpoints(
		&webmachinery.BaseEndpoints{
			Renderer:   renderer,
			AuthFilter: webmachinery.NewAuthFilter(),
		},
		catalog,
	).Register(router)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(session.WithHolder(req.Context(), holder))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestDashboard(t *testing.T) {
	testCases := []struct {
		name          string
		catalog       documents.Catalog
		authenticated bool
		path          string
		assertions    func(*httptest.ResponseRecorder)
	}{
		{
			name:    "not authenticated",
			catalog: documents.NewMockCatalog(),
			path:    "/dashboard",
			assertions: func(rr *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, rr.Code)
				require.Equal(t, "/login", rr.Header().Get("Location"))
			},
		},
		{
			name:          "home",
			catalog:       documents.NewMockCatalog(),
			authenticated: true,
			path:          "/",
			assertions: func(rr *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusSeeOther, rr.Code)
				require.Equal(t, "/dashboard", rr.Header().Get("Location"))
			},
		},
		{
			name:          "everything",
			catalog:       documents.NewMockCatalog(),
			authenticated: true,
			path:          "/dashboard",
			assertions: func(rr *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rr.Code)
				body := rr.Body.String()
				require.Contains(t, body, "Rapport_Securite_Q1_2025.pdf")
				require.Contains(t, body, "Procedures_Embarquement.docx")
				require.Contains(t, body, "Documents Total")
			},
		},
		{
			name:          "filtered",
			catalog:       documents.NewMockCatalog(),
			authenticated: true,
			path:          "/dashboard?q=rapport&category=S%C3%A9curit%C3%A9",
			assertions: func(rr *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rr.Code)
				body := rr.Body.String()
				require.Contains(t, body, "Rapport_Securite_Q1_2025.pdf")
				require.NotContains(t, body, "Procedures_Embarquement.docx")
				require.Contains(t, body, `value="rapport"`)
			},
		},
		{
			name:          "nothing matches",
			catalog:       documents.NewMockCatalog(),
			authenticated: true,
			path:          "/dashboard?q=introuvable",
			assertions: func(rr *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rr.Code)
				require.Contains(t, rr.Body.String(), "Aucun document")
			},
		},
		{
			name:          "catalog failure",
			catalog:       failingCatalog{Catalog: documents.NewMockCatalog()},
			authenticated: true,
			path:          "/dashboard",
			assertions: func(rr *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, rr.Code)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(
				serveDashboard(
					t,
					testCase.catalog,
					testCase.authenticated,
					testCase.path,
				),
			)
		})
	}
}
