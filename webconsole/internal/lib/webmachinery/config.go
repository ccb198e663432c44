package webmachinery

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "CONSOLE"

// Config governs the console's HTTP server and browser sessions. An exported
// interface guards the underlying struct.
type Config interface {
	Port() int
	TLSEnabled() bool
	TLSCertPath() string
	TLSKeyPath() string
	// SessionCookieName names the cookie carrying the browser ID.
	SessionCookieName() string
	// SessionCookieSecure marks the cookie Secure.
	SessionCookieSecure() bool
	// SessionIdleTTL is how long an unused browser session is kept in memory.
	SessionIdleTTL() time.Duration
	// AllowedOrigins lists the origins allowed cross-origin requests.
	AllowedOrigins() []string
	// HomeURL is where users land after logging in.
	HomeURL() string
}

type config struct {
	PortAttr                int           `envconfig:"PORT"`
	TLSEnabledAttr          bool          `envconfig:"TLS_ENABLED"`
	TLSCertPathAttr         string        `envconfig:"TLS_CERT_PATH"`
	TLSKeyPathAttr          string        `envconfig:"TLS_KEY_PATH"`
	SessionCookieNameAttr   string        `envconfig:"SESSION_COOKIE_NAME"`
	SessionCookieSecureAttr bool          `envconfig:"SESSION_COOKIE_SECURE"`
	SessionIdleTTLAttr      time.Duration `envconfig:"SESSION_IDLE_TTL"`
	AllowedOriginsAttr      []string      `envconfig:"ALLOWED_ORIGINS"`
	HomeURLAttr             string        `envconfig:"HOME_URL"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied.
func NewConfigWithDefaults() Config {
	return &config{
		PortAttr:              4200,
		SessionCookieNameAttr: "ged_session",
		SessionIdleTTLAttr:    8 * time.Hour,
		HomeURLAttr:           "/dashboard",
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults().(*config)
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, errors.Wrap(err, "error reading console configuration")
	}
	if c.TLSEnabledAttr {
		if c.TLSCertPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"CONSOLE_TLS_CERT_PATH environment variable",
			)
		}
		if c.TLSKeyPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"CONSOLE_TLS_KEY_PATH environment variable",
			)
		}
	}
	if c.SessionIdleTTLAttr <= 0 {
		return c, errors.New("CONSOLE_SESSION_IDLE_TTL must be positive")
	}
	return c, nil
}

func (c *config) Port() int {
	return c.PortAttr
}

func (c *config) TLSEnabled() bool {
	return c.TLSEnabledAttr
}

func (c *config) TLSCertPath() string {
	return c.TLSCertPathAttr
}

func (c *config) TLSKeyPath() string {
	return c.TLSKeyPathAttr
}

func (c *config) SessionCookieName() string {
	return c.SessionCookieNameAttr
}

func (c *config) SessionCookieSecure() bool {
	return c.SessionCookieSecureAttr || c.TLSEnabledAttr
}

func (c *config) SessionIdleTTL() time.Duration {
	return c.SessionIdleTTLAttr
}

func (c *config) AllowedOrigins() []string {
	return c.AllowedOriginsAttr
}

func (c *config) HomeURL() string {
	return c.HomeURLAttr
}
