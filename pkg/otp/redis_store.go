package otp

import (
	"context"
	"time"

	"github.com/minilms/backend/pkg/redis"
)

// RedisStore keeps pending codes in redis so step-2 verification works
// regardless of which server instance handled step 1. The TTL is
// enforced by redis itself.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(email string) string {
	return s.prefix + email
}

func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(email), code, ttl)
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, bool, error) {
	return s.client.Get(ctx, s.key(email))
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Delete(ctx, s.key(email))
}
