package redis

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetConfigFromEnvironment(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		if os.Getenv("REDIS_HOST") != "" || os.Getenv("REDIS_DB") != "" {
			t.Skip("redis configured in the environment")
		}
		c, err := getConfigFromEnvironment()
		require.NoError(t, err)
		opts := c.options()
		require.Equal(t, "localhost:6379", opts.Addr)
		require.Equal(t, 1, opts.DB)
		require.Equal(t, 5*time.Second, opts.DialTimeout)
		require.Nil(t, opts.TLSConfig)
	})

	t.Run("tls", func(t *testing.T) {
		t.Setenv("REDIS_HOST", "redis.ged.adcsa.cm")
		t.Setenv("REDIS_PORT", "6380")
		t.Setenv("REDIS_ENABLE_TLS", "true")
		c, err := getConfigFromEnvironment()
		require.NoError(t, err)
		opts := c.options()
		require.Equal(t, "redis.ged.adcsa.cm:6380", opts.Addr)
		require.NotNil(t, opts.TLSConfig)
		require.Equal(t, "redis.ged.adcsa.cm", opts.TLSConfig.ServerName)
	})

	t.Run("db out of range", func(t *testing.T) {
		t.Setenv("REDIS_DB", "16")
		_, err := getConfigFromEnvironment()
		require.Error(t, err)
		require.Contains(t, err.Error(), "out of range")
	})
}
