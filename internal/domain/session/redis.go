package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "staffsync:session:"

type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: defaultPrefix, ttl: ttl}
}

func (s *RedisStore) Key(sessionID string) string {
	return s.prefix + sessionID + ":" + KeyLoggedInEmployee
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (Session, error) {
	employeeID, err := s.client.Get(ctx, s.Key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return Session{ID: sessionID, EmployeeID: employeeID}, nil
}

func (s *RedisStore) SetEmployee(ctx context.Context, sessionID, employeeID string) error {
	return s.client.Set(ctx, s.Key(sessionID), employeeID, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.Key(sessionID)).Err()
}
