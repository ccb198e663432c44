package webmachinery

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/adcsa/ged/internal/file"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/storage"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server is an interface for the component that serves the console.
type Server interface {
	// ListenAndServe serves HTTP requests until ctx is canceled or an error
	// occurs.
	ListenAndServe(ctx context.Context) error
	// Handler returns the fully decorated handler.
	Handler() http.Handler
}

type server struct {
	config  Config
	storage storage.Backend
	handler http.Handler
}

// NewServer returns the console's HTTP server. Every page gets the browser's
// session in its request context; /healthz does not.
func NewServer(
	config Config,
	sessions Filter,
	storageBackend storage.Backend,
	endpoints []Endpoints,
) Server {
	router := mux.NewRouter()
	router.StrictSlash(true)

	s := &server{
		config:  config,
		storage: storageBackend,
	}

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	pages := router.NewRoute().Subrouter()
	pages.Use(func(next http.Handler) http.Handler {
		return sessions.Decorate(next.ServeHTTP)
	})
	for _, eps := range endpoints {
		eps.Register(pages)
	}
	// Anything else lands on the login screen.
	router.NotFoundHandler = http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			Redirect(w, r, navigation.RouteLogin)
		},
	)

	s.handler = logRequests(
		cors.New(
			cors.Options{
				AllowedOrigins:   config.AllowedOrigins(),
				AllowedMethods:   []string{http.MethodGet, http.MethodPost},
				AllowCredentials: true,
			},
		).Handler(router),
	)
	return s
}

func (s *server) Handler() http.Handler {
	return s.handler
}

func (s *server) ListenAndServe(ctx context.Context) error {
	address := fmt.Sprintf(":%d", s.config.Port())
	srv := &http.Server{
		Addr:              address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	tlsEnabled := s.config.TLSEnabled() &&
		file.Exists(s.config.TLSCertPath()) &&
		file.Exists(s.config.TLSKeyPath())
	if !tlsEnabled {
		srv.Handler = h2c.NewHandler(s.handler, &http2.Server{})
	}
	errCh := make(chan error, 1)
	go func() {
		if tlsEnabled {
			glog.Infof(
				"Console is listening with TLS enabled on 0.0.0.0:%d",
				s.config.Port(),
			)
			errCh <- srv.ListenAndServeTLS(
				s.config.TLSCertPath(),
				s.config.TLSKeyPath(),
			)
			return
		}
		glog.Infof(
			"Console is listening without TLS on 0.0.0.0:%d",
			s.config.Port(),
		)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "error shutting down console")
	}
	return ctx.Err()
}

func (s *server) checkHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.CheckHealth(r.Context()); err != nil {
		glog.Errorf("health check failed: %s", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, "{}")
}
