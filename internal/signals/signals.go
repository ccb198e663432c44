package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a context that is canceled when the process receives
// SIGINT or SIGTERM. A second signal exits immediately.
func Context() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	signalCh := make(chan os.Signal, 2)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		cancel()
		<-signalCh
		os.Exit(1)
	}()
	return ctx
}
