package navigation

import (
	"context"
	"net/url"
	"sync"
)

// Recorder remembers the last navigation requested while one HTTP request
// was being served, so the handler can answer it with a redirect.
type Recorder struct {
	mu     sync.Mutex
	target string
}

type recorderContextKey struct{}

// WithRecorder returns a copy of ctx carrying a fresh Recorder.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	r := &Recorder{}
	return context.WithValue(ctx, recorderContextKey{}, r), r
}

// RecorderFromContext returns the Recorder carried by ctx, or nil.
func RecorderFromContext(ctx context.Context) *Recorder {
	r, _ := ctx.Value(recorderContextKey{}).(*Recorder)
	return r
}

// Target returns the URL of the last recorded navigation, if any.
func (r *Recorder) Target() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.target != ""
}

func (r *Recorder) record(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
}

// ContextNavigator records navigations in the Recorder of the context it is
// handed. Navigations requested outside of any request are dropped; the
// browser will be redirected by the guards on its next request instead.
type ContextNavigator struct{}

// Navigate implements Navigator.
func (ContextNavigator) Navigate(
	ctx context.Context,
	route string,
	query url.Values,
) {
	if r := RecorderFromContext(ctx); r != nil {
		r.record(URL(route, query))
	}
}
