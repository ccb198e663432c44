package authx

import (
	"context"
	"net/http"

	"github.com/adcsa/ged/sdk/internal/restmachinery"
)

// FirstPasswordChange replaces the initial password handed to a new user.
type FirstPasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PasswordChange replaces the password of a signed in user.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// PasswordReset completes a reset using the token mailed to the user.
type PasswordReset struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// MessageResponse is the acknowledgement several endpoints answer with.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// PasswordsClient is the specialized client for GED password management.
type PasswordsClient interface {
	// FirstChange replaces a first-login password. The API may answer with a
	// fresh session, in which case the returned response carries a token.
	FirstChange(context.Context, FirstPasswordChange) (LoginResponse, error)
	// Change replaces the signed in user's password.
	Change(context.Context, PasswordChange) (MessageResponse, error)
	// RequestReset asks the API to mail a reset link to the given address.
	RequestReset(ctx context.Context, email string) (MessageResponse, error)
	// Reset completes a reset.
	Reset(context.Context, PasswordReset) (MessageResponse, error)
}

type passwordsClient struct {
	*restmachinery.BaseClient
}

// NewPasswordsClient returns a specialized client for GED password
// management.
func NewPasswordsClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) PasswordsClient {
	return &passwordsClient{
		BaseClient: restmachinery.NewBaseClient(apiAddress, opts),
	}
}

func (p *passwordsClient) FirstChange(
	ctx context.Context,
	change FirstPasswordChange,
) (LoginResponse, error) {
	resp := LoginResponse{}
	return resp, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/first-password-change",
			ReqBodyObj:  change,
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	)
}

func (p *passwordsClient) Change(
	ctx context.Context,
	change PasswordChange,
) (MessageResponse, error) {
	resp := MessageResponse{}
	return resp, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/change-password",
			ReqBodyObj:  change,
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	)
}

func (p *passwordsClient) RequestReset(
	ctx context.Context,
	email string,
) (MessageResponse, error) {
	resp := MessageResponse{}
	return resp, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method: http.MethodPost,
			Path:   "auth/reset-request",
			ReqBodyObj: struct {
				Email string `json:"email"`
			}{
				Email: email,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	)
}

func (p *passwordsClient) Reset(
	ctx context.Context,
	reset PasswordReset,
) (MessageResponse, error) {
	resp := MessageResponse{}
	return resp, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "auth/reset-password",
			ReqBodyObj:  reset,
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	)
}
