package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenKey is the storage key the session credential is kept under.
const TokenKey = "auth_token"

// ExpiresAt decodes the "exp" claim of a JWT credential. The signature is not
// verified; only the API can do that. Tokens that cannot be decoded or carry
// no expiry yield an error.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, errors.Wrap(err, "error decoding credential")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "error reading credential expiry")
	}
	if exp == nil {
		return time.Time{}, errors.New("credential carries no expiry")
	}
	return exp.Time, nil
}
