package session

import (
	"context"
	"sync"
	"time"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Holder is the authentication state of one user of the console: the state,
// the user record and the observers interested in both. The credential itself
// lives in storage and is read from there every time it is needed.
type Holder struct {
	store         storage.Store
	authenticator Authenticator
	navigator     navigation.Navigator
	now           func() time.Time

	mu             sync.RWMutex
	state          State
	user           *authx.User
	observers      map[int]Observer
	nextObserverID int
}

// NewHolder returns a Holder whose state reflects the credential found in
// store. A credential that is expired, carries no expiry or cannot be decoded
// is deleted and the Holder starts Unauthenticated. The user record is never
// restored; it is only known after a Login in this process.
func NewHolder(
	ctx context.Context,
	store storage.Store,
	authenticator Authenticator,
	navigator navigation.Navigator,
) *Holder {
	h := &Holder{
		store:         store,
		authenticator: authenticator,
		navigator:     navigator,
		now:           time.Now,
		observers:     map[int]Observer{},
	}
	h.restore(ctx)
	return h
}

func (h *Holder) restore(ctx context.Context) {
	token, ok, err := h.store.Get(ctx, TokenKey)
	if err != nil {
		glog.Errorf("error reading stored credential: %s", err)
		return
	}
	if !ok || token == "" {
		return
	}
	expiresAt, err := ExpiresAt(token)
	if err == nil && h.now().Before(expiresAt) {
		h.state = Authenticated
		return
	}
	if err != nil {
		glog.V(2).Infof("discarding stored credential: %s", err)
	} else {
		glog.V(2).Infof("discarding credential that expired at %s", expiresAt)
	}
	if err := h.store.Delete(ctx, TokenKey); err != nil {
		glog.Errorf("error deleting stored credential: %s", err)
	}
}

// Login sends credentials to the remote authority. Observers first see
// Authenticating. On success the credential is stored before the state turns
// Authenticated; on failure nothing is stored, the state is Unauthenticated
// and the error is returned as is.
func (h *Holder) Login(
	ctx context.Context,
	credentials authx.Credentials,
) (authx.LoginResponse, error) {
	h.transition(Authenticating, nil, false)
	resp, err := h.authenticator.Login(ctx, credentials)
	if err == nil && resp.AccessToken == "" {
		err = errors.New("login response carried no credential")
	}
	if err != nil {
		h.transition(Unauthenticated, nil, true)
		return resp, err
	}
	if err = h.store.Set(ctx, TokenKey, resp.AccessToken); err != nil {
		h.transition(Unauthenticated, nil, true)
		return resp, errors.Wrap(err, "error storing credential")
	}
	h.transition(Authenticated, resp.User, true)
	return resp, nil
}

// Logout forgets the credential and the user and sends the user to the login
// screen. It never fails; storage errors are only logged.
func (h *Holder) Logout(ctx context.Context) {
	if err := h.store.Delete(ctx, TokenKey); err != nil {
		glog.Errorf("error deleting stored credential: %s", err)
	}
	h.mu.RLock()
	changed := h.state != Unauthenticated || h.user != nil
	h.mu.RUnlock()
	if changed {
		h.transition(Unauthenticated, nil, true)
	}
	h.navigator.Navigate(ctx, navigation.RouteLogin, nil)
}

// ReplaceCredential stores the credential a password change answered with.
// The user record is replaced when the response carries one. Responses
// without a credential leave everything as it was.
func (h *Holder) ReplaceCredential(
	ctx context.Context,
	resp authx.LoginResponse,
) error {
	if resp.AccessToken == "" {
		return nil
	}
	if err := h.store.Set(ctx, TokenKey, resp.AccessToken); err != nil {
		return errors.Wrap(err, "error storing credential")
	}
	user := resp.User
	if user == nil {
		h.mu.RLock()
		user = h.user
		h.mu.RUnlock()
	}
	h.transition(Authenticated, user, true)
	return nil
}

// FirstPasswordChanged records that the user replaced their initial password.
func (h *Holder) FirstPasswordChanged() {
	h.mu.Lock()
	if h.user == nil || !h.user.IsFirstLogin {
		h.mu.Unlock()
		return
	}
	user := *h.user
	user.IsFirstLogin = false
	user.IsFirstLoginExpired = false
	h.mu.Unlock()
	h.transition(Authenticated, &user, true)
}

// Token returns the stored credential, or nil when there is none.
func (h *Holder) Token(ctx context.Context) (*oauth2.Token, error) {
	value, ok, err := h.store.Get(ctx, TokenKey)
	if err != nil {
		return nil, errors.Wrap(err, "error reading stored credential")
	}
	if !ok || value == "" {
		return nil, nil
	}
	token := &oauth2.Token{
		AccessToken: value,
		TokenType:   "Bearer",
	}
	if expiresAt, err := ExpiresAt(value); err == nil {
		token.Expiry = expiresAt
	}
	return token, nil
}

// IsAuthenticated returns true if the state is Authenticated.
func (h *Holder) IsAuthenticated() bool {
	return h.State() == Authenticated
}

// State returns the current state.
func (h *Holder) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// CurrentUser returns a copy of the in-memory user record, or nil.
func (h *Holder) CurrentUser() *authx.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copyUser(h.user)
}

// HasRole returns true if the in-memory user record carries role. It is
// false whenever no user record is loaded, credential or not.
func (h *Holder) HasRole(role string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return false
	}
	for _, r := range h.user.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole returns true if the user carries at least one of roles.
func (h *Holder) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if h.HasRole(role) {
			return true
		}
	}
	return false
}

// Subscribe registers observer. It is called at once with the current
// Snapshot and then after every change, until the returned function is
// called.
func (h *Holder) Subscribe(observer Observer) func() {
	h.mu.Lock()
	id := h.nextObserverID
	h.nextObserverID++
	h.observers[id] = observer
	snapshot := h.snapshot()
	h.mu.Unlock()
	observer(snapshot)
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.observers, id)
	}
}

// transition sets the state and, when setUser is true, the user record, then
// tells every observer. Observers run outside of the lock.
func (h *Holder) transition(state State, user *authx.User, setUser bool) {
	h.mu.Lock()
	h.state = state
	if setUser {
		h.user = copyUser(user)
	}
	snapshot := h.snapshot()
	observers := make([]Observer, 0, len(h.observers))
	for _, observer := range h.observers {
		observers = append(observers, observer)
	}
	h.mu.Unlock()
	for _, observer := range observers {
		observer(snapshot)
	}
}

// snapshot must be called with the lock held.
func (h *Holder) snapshot() Snapshot {
	return Snapshot{
		State: h.state,
		User:  copyUser(h.user),
	}
}

func copyUser(user *authx.User) *authx.User {
	if user == nil {
		return nil
	}
	c := *user
	c.Roles = append([]string(nil), user.Roles...)
	return &c
}
