package redis

import (
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "REDIS"

// config says how the web console reaches the Redis instance it keeps browser
// credentials in. Credentials are kept apart from other data in DB 1 by
// default.
type config struct {
	Host        string        `envconfig:"HOST" default:"localhost"`
	Port        int           `envconfig:"PORT" default:"6379"`
	Password    string        `envconfig:"PASSWORD"`
	DB          int           `envconfig:"DB" default:"1"`
	EnableTLS   bool          `envconfig:"ENABLE_TLS" default:"false"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	PoolSize    int           `envconfig:"POOL_SIZE" default:"10"`
}

func getConfigFromEnvironment() (config, error) {
	c := config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting redis configuration from environment",
		)
	}
	if c.DB < 0 || c.DB > 15 {
		return c, errors.Errorf("REDIS_DB %d is out of range 0-15", c.DB)
	}
	return c, nil
}

func (c config) options() *redis.Options {
	opts := &redis.Options{
		Addr:        net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Password:    c.Password,
		DB:          c.DB,
		MaxRetries:  5,
		DialTimeout: c.DialTimeout,
		PoolSize:    c.PoolSize,
	}
	if c.EnableTLS {
		opts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}
	return opts
}

// Client returns a Redis client configured from REDIS_* environment
// variables. It does not connect until first used.
func Client() (*redis.Client, error) {
	c, err := getConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	return redis.NewClient(c.options()), nil
}
