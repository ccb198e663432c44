package webmachinery

import (
	"net/http"

	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/session"
	uuid "github.com/satori/go.uuid"
)

// BrowserSessions identifies browsers by a random ID kept in a cookie and
// puts each request's session.Holder and a navigation.Recorder in the
// request context.
type BrowserSessions struct {
	Config   Config
	Registry *session.Registry
}

// Decorate implements Filter.
func (b *BrowserSessions) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browserID := b.browserID(w, r)
		ctx := r.Context()
		holder := b.Registry.Get(ctx, browserID)
		ctx = session.WithHolder(ctx, holder)
		ctx, _ = navigation.WithRecorder(ctx)
		handle(w, r.WithContext(ctx))
	}
}

func (b *BrowserSessions) browserID(
	w http.ResponseWriter,
	r *http.Request,
) string {
	if cookie, err := r.Cookie(b.Config.SessionCookieName()); err == nil {
		if id, err := uuid.FromString(cookie.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewV4().String()
	http.SetCookie(
		w,
		&http.Cookie{
			Name:     b.Config.SessionCookieName(),
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   b.Config.SessionCookieSecure(),
			SameSite: http.SameSiteLaxMode,
		},
	)
	return id
}
