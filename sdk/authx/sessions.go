package authx

import (
	"context"
	"net/http"

	"github.com/adcsa/ged/sdk/internal/restmachinery"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/oauth2"
)

// loginResponseSchema is what a usable login response must look like. A
// response that passes with a 200 but carries no access token is rejected
// here rather than treated as a login.
const loginResponseSchema = `{
	"type": "object",
	"required": ["accessToken"],
	"properties": {
		"accessToken": {"type": "string", "minLength": 1},
		"refreshToken": {"type": ["string", "null"]},
		"tokenType": {"type": ["string", "null"]},
		"isFirstLogin": {"type": ["boolean", "null"]},
		"utilisateur": {
			"type": ["object", "null"],
			"properties": {
				"username": {"type": "string"},
				"roles": {"type": ["array", "null"], "items": {"type": "string"}}
			}
		}
	}
}`

// Credentials are what a user types into the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the GED API's answer to a successful login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType,omitempty"`
	User         *User  `json:"utilisateur,omitempty"`
	// FirstLogin is set by some API versions at the top level instead of on
	// the user record.
	FirstLogin *bool `json:"isFirstLogin,omitempty"`
}

// IsFirstLogin returns true if either the response or the user record says
// the user still has to replace their initial password.
func (l LoginResponse) IsFirstLogin() bool {
	if l.FirstLogin != nil && *l.FirstLogin {
		return true
	}
	return l.User != nil && l.User.IsFirstLogin
}

// Token returns the session credential carried by the response.
func (l LoginResponse) Token() *oauth2.Token {
	tokenType := l.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  l.AccessToken,
		TokenType:    tokenType,
		RefreshToken: l.RefreshToken,
	}
}

// SessionsClient is the specialized client for signing in to the GED API.
type SessionsClient interface {
	// Login exchanges credentials for a session credential. Wrong credentials
	// yield a *meta.ErrAuthentication.
	Login(context.Context, Credentials) (LoginResponse, error)
}

type sessionsClient struct {
	*restmachinery.BaseClient
	loginResponseSchemaLoader gojsonschema.JSONLoader
}

// NewSessionsClient returns a specialized client for signing in to the GED
// API.
func NewSessionsClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) SessionsClient {
	return &sessionsClient{
		BaseClient:                restmachinery.NewBaseClient(apiAddress, opts),
		loginResponseSchemaLoader: gojsonschema.NewStringLoader(loginResponseSchema),
	}
}

func (s *sessionsClient) Login(
	ctx context.Context,
	credentials Credentials,
) (LoginResponse, error) {
	resp := LoginResponse{}
	return resp, s.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:           http.MethodPost,
			Path:             "auth/login",
			ReqBodyObj:       credentials,
			SuccessCode:      http.StatusOK,
			RespObj:          &resp,
			RespSchemaLoader: s.loginResponseSchemaLoader,
		},
	)
}
