package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/adcsa/ged/internal/authz"
	"github.com/adcsa/ged/internal/guard"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// userKey is where the CLI keeps the user record next to the credential, so
// commands run after login still know who is logged in.
const userKey = "utilisateur"

// apiSession bundles what a command needs to talk to the GED API on behalf
// of the user.
type apiSession struct {
	client authx.APIClient
	holder *session.Holder
	store  storage.Store
	// ctx carries holder, so requests made with it are authorized.
	ctx context.Context
}

// getAPISession returns an apiSession for the API address given by --server
// or, failing that, saved by the last login.
func getAPISession(c *cli.Context) (*apiSession, error) {
	address := c.String(flagServer)
	if address == "" {
		config, err := getConfig()
		if err != nil {
			return nil, errors.Wrap(err, "error retrieving configuration")
		}
		address = config.APIAddress
	}
	return newAPISession(c, address)
}

func newAPISession(c *cli.Context, address string) (*apiSession, error) {
	sessionFile, err := getSessionFile()
	if err != nil {
		return nil, err
	}
	store := storage.NewFileStore(sessionFile)
	navigator := newTerminalNavigator(os.Stderr)
	client := authx.NewAPIClient(
		address,
		&authx.APIClientOptions{
			AllowInsecureConnections: c.Bool(flagInsecure),
			WrapTransport:            authz.Wrap(navigator),
		},
	)
	holder := session.NewHolder(c.Context, store, client.Sessions(), navigator)
	return &apiSession{
		client: client,
		holder: holder,
		store:  store,
		ctx:    session.WithHolder(c.Context, holder),
	}, nil
}

// user returns the user record saved at login, or nil.
func (a *apiSession) user() (*authx.User, error) {
	if !a.holder.IsAuthenticated() {
		return nil, nil
	}
	if user := a.holder.CurrentUser(); user != nil {
		return user, nil
	}
	value, ok, err := a.store.Get(a.ctx, userKey)
	if err != nil || !ok {
		return nil, err
	}
	user := &authx.User{}
	if err := json.Unmarshal([]byte(value), user); err != nil {
		return nil, errors.Wrap(err, "error decoding saved user record")
	}
	return user, nil
}

// saveUser keeps the holder's user record for later commands.
func (a *apiSession) saveUser() error {
	user := a.holder.CurrentUser()
	if user == nil {
		return nil
	}
	return a.saveUserRecord(user)
}

func (a *apiSession) saveUserRecord(user *authx.User) error {
	userBytes, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "error encoding user record")
	}
	return a.store.Set(a.ctx, userKey, string(userBytes))
}

// forget removes the credential and the saved user record.
func (a *apiSession) forget() {
	a.holder.Logout(a.ctx)
	_ = a.store.Delete(a.ctx, userKey)
}

// sessionGuard adapts a saved user record to the guards.
type sessionGuard struct {
	authenticated bool
	user          *authx.User
}

func (s sessionGuard) IsAuthenticated() bool {
	return s.authenticated
}

func (s sessionGuard) HasAnyRole(roles ...string) bool {
	if s.user == nil {
		return false
	}
	for _, want := range roles {
		for _, role := range s.user.Roles {
			if role == want {
				return true
			}
		}
	}
	return false
}

// guarded runs action only if the session passes g. A refusal is reported
// the way the console would report it.
func guarded(
	g guard.Guard,
	action func(*cli.Context, *apiSession) error,
) cli.ActionFunc {
	return func(c *cli.Context) error {
		apiSession, err := getAPISession(c)
		if err != nil {
			return err
		}
		user, err := apiSession.user()
		if err != nil {
			return err
		}
		decision := g(
			sessionGuard{
				authenticated: apiSession.holder.IsAuthenticated(),
				user:          user,
			},
		)
		if !decision.Allowed {
			return refusal(decision)
		}
		return action(c, apiSession)
	}
}

func refusal(decision guard.Decision) error {
	if decision.Route == navigation.RouteLogin &&
		decision.Query.Get(navigation.ParamError) ==
			navigation.ErrorInsufficientPermission {
		return errors.New(
			"Vous n'avez pas les droits nécessaires pour exécuter cette commande.",
		)
	}
	return errors.New(
		"Vous n'êtes pas connecté. Utilisez `ged login` pour vous connecter.",
	)
}
