package session

import (
	"context"

	"github.com/adcsa/ged/sdk/authx"
	"github.com/adcsa/ged/sdk/meta"
	"github.com/pkg/errors"
)

// State is where a Holder stands in the sign in lifecycle.
type State int

const (
	// Unauthenticated means no usable credential is held.
	Unauthenticated State = iota
	// Authenticating means a login call is in flight.
	Authenticating
	// Authenticated means a credential was stored and is presumed usable.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Snapshot is what observers are told after every change.
type Snapshot struct {
	State State
	// User is a copy of the in-memory user record. It is nil whenever the
	// record is not known, which includes an Authenticated state restored
	// from storage.
	User *authx.User
}

// Observer is notified synchronously of every Snapshot.
type Observer func(Snapshot)

// Authenticator is the remote authority credentials are checked against.
// authx.SessionsClient satisfies it.
type Authenticator interface {
	Login(context.Context, authx.Credentials) (authx.LoginResponse, error)
}

// IsInvalidCredentials returns true if err says the API refused the
// credentials, as opposed to any other failure.
func IsInvalidCredentials(err error) bool {
	_, ok := errors.Cause(err).(*meta.ErrAuthentication)
	return ok
}

type holderContextKey struct{}

// WithHolder returns a copy of ctx carrying h.
func WithHolder(ctx context.Context, h *Holder) context.Context {
	return context.WithValue(ctx, holderContextKey{}, h)
}

// FromContext returns the Holder carried by ctx, or nil.
func FromContext(ctx context.Context) *Holder {
	h, _ := ctx.Value(holderContextKey{}).(*Holder)
	return h
}
