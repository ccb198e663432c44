package authx

import "github.com/adcsa/ged/sdk/internal/restmachinery"

// APIClientOptions encapsulates optional API client configuration.
type APIClientOptions = restmachinery.APIClientOptions

// APIClient is the root of a tree of more specialized API clients for the
// authentication endpoints of the GED API.
type APIClient interface {
	// Sessions returns a specialized client for signing in.
	Sessions() SessionsClient
	// Passwords returns a specialized client for password management.
	Passwords() PasswordsClient
}

type apiClient struct {
	sessionsClient  SessionsClient
	passwordsClient PasswordsClient
}

// NewAPIClient returns an APIClient for the GED API at apiAddress, for
// instance "http://localhost:8085/api".
func NewAPIClient(apiAddress string, opts *APIClientOptions) APIClient {
	return &apiClient{
		sessionsClient:  NewSessionsClient(apiAddress, opts),
		passwordsClient: NewPasswordsClient(apiAddress, opts),
	}
}

func (a *apiClient) Sessions() SessionsClient {
	return a.sessionsClient
}

func (a *apiClient) Passwords() PasswordsClient {
	return a.passwordsClient
}
