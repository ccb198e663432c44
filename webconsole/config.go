package main

import (
	"context"
	"time"

	"github.com/adcsa/ged/internal/authz"
	"github.com/adcsa/ged/internal/documents"
	"github.com/adcsa/ged/internal/mongodb"
	"github.com/adcsa/ged/internal/navigation"
	"github.com/adcsa/ged/internal/redis"
	"github.com/adcsa/ged/internal/session"
	"github.com/adcsa/ged/internal/storage"
	"github.com/adcsa/ged/sdk/authx"
	authxREST "github.com/adcsa/ged/webconsole/internal/authx/rest"
	documentsREST "github.com/adcsa/ged/webconsole/internal/documents/rest"
	"github.com/adcsa/ged/webconsole/internal/lib/webmachinery"
	systemREST "github.com/adcsa/ged/webconsole/internal/system/rest"
	"github.com/adcsa/ged/webconsole/internal/templates"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "GED"

// Storage backends the console can keep browser credentials in.
const (
	storageMemory  = "memory"
	storageRedis   = "redis"
	storageMongoDB = "mongodb"
)

// apiConfig says how to reach the GED API and where to keep credentials.
type apiConfig struct {
	APIAddress         string        `envconfig:"API_ADDRESS" default:"http://localhost:8085/api"` // nolint: lll
	APITimeout         time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	InsecureAPI        bool          `envconfig:"API_INSECURE"`
	Storage            string        `envconfig:"STORAGE" default:"memory"`
	StorageTTL         time.Duration `envconfig:"STORAGE_TTL" default:"24h"`
	RedisKeyPrefix     string        `envconfig:"REDIS_KEY_PREFIX" default:"ged:console"`
	SessionSweepPeriod time.Duration `envconfig:"SESSION_SWEEP_PERIOD" default:"5m"`
}

func getAPIConfigFromEnvironment() (apiConfig, error) {
	c := apiConfig{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return c, errors.Wrap(err, "error reading GED API configuration")
	}
	if c.SessionSweepPeriod <= 0 {
		return c, errors.New("GED_SESSION_SWEEP_PERIOD must be positive")
	}
	return c, nil
}

func getStorageBackend(
	ctx context.Context,
	c apiConfig,
) (storage.Backend, error) {
	switch c.Storage {
	case storageMemory:
		return storage.NewMemoryBackend(c.StorageTTL), nil
	case storageRedis:
		client, err := redis.Client()
		if err != nil {
			return nil, err
		}
		return redis.NewBackend(client, c.RedisKeyPrefix, c.StorageTTL), nil
	case storageMongoDB:
		database, err := mongodb.Database(ctx)
		if err != nil {
			return nil, err
		}
		return mongodb.NewBackend(ctx, database, c.StorageTTL)
	}
	return nil, errors.Errorf(
		"unrecognized value %q for GED_STORAGE; use %q, %q or %q",
		c.Storage,
		storageMemory,
		storageRedis,
		storageMongoDB,
	)
}

// consoleComponents is everything main needs to run.
type consoleComponents struct {
	server      webmachinery.Server
	registry    *session.Registry
	sweepPeriod time.Duration
}

func getConsoleFromEnvironment(ctx context.Context) (consoleComponents, error) {
	components := consoleComponents{}

	// Console config
	consoleConfig, err := webmachinery.GetConfigFromEnvironment()
	if err != nil {
		return components, err
	}

	// GED API
	apiCfg, err := getAPIConfigFromEnvironment()
	if err != nil {
		return components, err
	}
	apiClient := authx.NewAPIClient(
		apiCfg.APIAddress,
		&authx.APIClientOptions{
			AllowInsecureConnections: apiCfg.InsecureAPI,
			Timeout:                  apiCfg.APITimeout,
			WrapTransport:            authz.Wrap(navigation.ContextNavigator{}),
		},
	)

	// Browser sessions
	storageBackend, err := getStorageBackend(ctx, apiCfg)
	if err != nil {
		return components, err
	}
	registry := session.NewRegistry(
		storageBackend,
		apiClient.Sessions(),
		navigation.ContextNavigator{},
		consoleConfig.SessionIdleTTL(),
	)

	// Pages
	renderer, err := templates.NewRenderer()
	if err != nil {
		return components, err
	}
	baseEndpoints := &webmachinery.BaseEndpoints{
		Renderer:   renderer,
		AuthFilter: webmachinery.NewAuthFilter(),
	}

	components.server = webmachinery.NewServer(
		consoleConfig,
		&webmachinery.BrowserSessions{
			Config:   consoleConfig,
			Registry: registry,
		},
		storageBackend,
		[]webmachinery.Endpoints{
			authxREST.NewSessionsEndpoints(
				baseEndpoints,
				consoleConfig.HomeURL(),
			),
			authxREST.NewPasswordsEndpoints(
				baseEndpoints,
				apiClient.Passwords(),
				consoleConfig.HomeURL(),
			),
			documentsREST.NewDashboardEndpoints(
				baseEndpoints,
				documents.NewMockCatalog(),
			),
			systemREST.NewSystemEndpoints(baseEndpoints),
		},
	)
	components.registry = registry
	components.sweepPeriod = apiCfg.SessionSweepPeriod
	return components, nil
}
