// internal/storage/redis.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisStore keeps snapshots in Redis under a namespace, the same way the
// backend keeps guest cart sessions. Useful when the client runs somewhere
// without a writable filesystem.
type RedisStore struct {
	client    *redis.Client
	namespace string
	log       *logrus.Logger
}

// NewRedisStore returns a Redis-backed snapshot store
func NewRedisStore(client *redis.Client, namespace string, log *logrus.Logger) *RedisStore {
	return &RedisStore{client: client, namespace: namespace, log: log}
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:snapshot:%s", s.namespace, key)
}

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}

// Get returns the stored value for key and whether it was present
func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := s.ctx()
	defer cancel()

	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to read snapshot")
		return nil, false
	}
	return value, true
}

// Set stores value under key, replacing any previous value
func (s *RedisStore) Set(key string, value []byte) {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to write snapshot")
	}
}

// Delete removes key if present
func (s *RedisStore) Delete(key string) {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to delete snapshot")
	}
}

// ClearAll removes every snapshot key
func (s *RedisStore) ClearAll() {
	for _, key := range []string{KeyToken, KeyUser, KeyCart} {
		s.Delete(key)
	}
}
