package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/adcsa/ged/internal/forms"
	"github.com/adcsa/ged/internal/navigation"
)

// terminalNavigator stands in for the console's screens: it tells the user
// what happened and which command to run next.
type terminalNavigator struct {
	out  io.Writer
	mu   sync.Mutex
	last string
}

func newTerminalNavigator(out io.Writer) *terminalNavigator {
	return &terminalNavigator{
		out: out,
	}
}

// Navigate implements navigation.Navigator.
func (t *terminalNavigator) Navigate(
	_ context.Context,
	route string,
	query url.Values,
) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = navigation.URL(route, query)
	switch route {
	case navigation.RouteLogin:
		switch {
		case query.Get(navigation.ParamReason) == navigation.ReasonSessionExpired:
			fmt.Fprintf(
				t.out,
				"%s\nUtilisez `ged login` pour vous reconnecter.\n",
				forms.MsgSessionExpired,
			)
		case query.Get(navigation.ParamError) ==
			navigation.ErrorInsufficientPermission:
			fmt.Fprintln(t.out, forms.MsgInsufficientRights)
		}
	case navigation.RouteUnauthorized:
		fmt.Fprintln(t.out, forms.MsgInsufficientRights)
	}
}

// Last returns the URL of the last navigation, if any.
func (t *terminalNavigator) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
