package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/adcsa/ged/internal/storage"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

// Each owner's values live in one hash. The hash expires after ttl without
// writes, the way an abandoned browser's data eventually goes away.
type backend struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewBackend returns a storage.Backend keeping every owner's values in a
// Redis hash named "<keyPrefix>:<owner>". A ttl of zero disables expiry.
func NewBackend(
	client *redis.Client,
	keyPrefix string,
	ttl time.Duration,
) storage.Backend {
	return &backend{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (b *backend) Store(owner string) storage.Store {
	return &store{
		backend: b,
		key:     fmt.Sprintf("%s:%s", b.keyPrefix, owner),
	}
}

func (b *backend) CheckHealth(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := b.client.WithContext(pingCtx).Ping().Err(); err != nil {
		return errors.Wrap(err, "error pinging redis")
	}
	return nil
}

type store struct {
	backend *backend
	key     string
}

func (s *store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.backend.client.WithContext(ctx).HGet(s.key, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "error reading %q from redis", key)
	}
	return value, true, nil
}

func (s *store) Set(ctx context.Context, key string, value string) error {
	if _, err := s.backend.client.WithContext(ctx).TxPipelined(
		func(pipe redis.Pipeliner) error {
			pipe.HSet(s.key, key, value)
			if s.backend.ttl > 0 {
				pipe.Expire(s.key, s.backend.ttl)
			}
			return nil
		},
	); err != nil {
		return errors.Wrapf(err, "error writing %q to redis", key)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if err := s.backend.client.WithContext(ctx).HDel(s.key, key).Err(); err != nil {
		return errors.Wrapf(err, "error deleting %q from redis", key)
	}
	return nil
}
