package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore parks sessions in Redis with a TTL, for deployments where
// logins must survive process restarts or span multiple instances.
type RedisStore struct {
	db  redis.UniversalClient
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed session store. Parked sessions expire
// after ttl; a non-positive ttl falls back to the default idle timeout.
func NewRedisStore(redisClient redis.UniversalClient, ttl time.Duration) *RedisStore {
	if redisClient == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultConfig().IdleTimeout()
	}
	return &RedisStore{db: redisClient, ttl: ttl}
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, token string, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Set(ctx, redisKeyPrefix+token, payload, s.ttl).Err()
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, token string) (Session, error) {
	payload, err := s.db.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, errors.Join(ErrSessionNotFound, err)
	}
	return sess, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.db.Del(ctx, redisKeyPrefix+token).Err()
}
