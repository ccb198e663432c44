package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestExpiresAt(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	testCases := []struct {
		name       string
		token      func(t *testing.T) string
		assertions func(t *testing.T, expiresAt time.Time, err error)
	}{
		{
			name: "token with expiry",
			token: func(t *testing.T) string {
				return newTestToken(t, expiry)
			},
			assertions: func(t *testing.T, expiresAt time.Time, err error) {
				require.NoError(t, err)
				require.True(t, expiry.Equal(expiresAt))
			},
		},
		{
			name: "token without expiry",
			token: func(t *testing.T) string {
				token, err := jwt.NewWithClaims(
					jwt.SigningMethodHS256,
					jwt.MapClaims{"sub": "jdupont"},
				).SignedString([]byte("secret"))
				require.NoError(t, err)
				return token
			},
			assertions: func(t *testing.T, _ time.Time, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "no expiry")
			},
		},
		{
			name: "malformed token",
			token: func(*testing.T) string {
				return "not-a-jwt"
			},
			assertions: func(t *testing.T, _ time.Time, err error) {
				require.Error(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			expiresAt, err := ExpiresAt(testCase.token(t))
			testCase.assertions(t, expiresAt, err)
		})
	}
}
