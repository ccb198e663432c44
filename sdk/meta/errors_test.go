package meta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testErrorReason = "Identifiants invalides"

func TestErrAuthentication(t *testing.T) {
	err := &ErrAuthentication{
		Reason: testErrorReason,
	}
	require.Contains(t, err.Error(), testErrorReason)
	require.Contains(t, (&ErrAuthentication{}).Error(), "authenticate")
}

func TestErrAuthorization(t *testing.T) {
	err := &ErrAuthorization{}
	require.Contains(t, err.Error(), "not authorized")
}

func TestErrBadRequest(t *testing.T) {
	testCases := []struct {
		name       string
		err        *ErrBadRequest
		assertions func(t *testing.T, err *ErrBadRequest)
	}{
		{
			name: "without details",
			err: &ErrBadRequest{
				Reason: testErrorReason,
			},
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Contains(t, err.Error(), testErrorReason)
				require.Empty(t, err.Fields())
			},
		},
		{
			name: "with details",
			err: &ErrBadRequest{
				Reason: testErrorReason,
				Details: map[string]string{
					"newPassword": "trop court",
					"email":       "format invalide",
				},
			},
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Contains(t, err.Error(), testErrorReason)
				require.Contains(t, err.Error(), "trop court")
				require.Contains(t, err.Error(), "format invalide")
				require.Equal(t, []string{"email", "newPassword"}, err.Fields())
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(t, testCase.err)
		})
	}
}

func TestErrorBodyDecoding(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		assertions func(t *testing.T, err *ErrBadRequest)
	}{
		{
			name: "message and field data",
			body: `{"success":false,"message":"Validation échouée","data":{"email":"Email invalide"}}`, // nolint: lll
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Equal(t, "Validation échouée", err.Reason)
				require.Equal(t, map[string]string{"email": "Email invalide"}, err.Details)
			},
		},
		{
			name: "error only",
			body: `{"error":"Token invalide"}`,
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Equal(t, "Token invalide", err.Reason)
				require.Empty(t, err.Details)
			},
		},
		{
			name: "non object data",
			body: `{"message":"oops","data":null}`,
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Equal(t, "oops", err.Reason)
				require.Empty(t, err.Details)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := &ErrBadRequest{}
			require.NoError(t, json.Unmarshal([]byte(testCase.body), err))
			testCase.assertions(t, err)
		})
	}
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Reason: "Utilisateur"}
	require.Contains(t, err.Error(), "Utilisateur")
}

func TestErrConflict(t *testing.T) {
	err := &ErrConflict{Reason: testErrorReason}
	require.Contains(t, err.Error(), testErrorReason)
}

func TestErrInternalServer(t *testing.T) {
	err := &ErrInternalServer{}
	require.Contains(t, err.Error(), "internal server error")
}
