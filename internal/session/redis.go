package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "menuvi:session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Get(ctx context.Context, sid string) (*Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+sid).Bytes()
	if err == redis.Nil {
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt blob is treated as an expired session.
		return &Session{}, nil
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, sid string, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+sid, raw, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, sid string) error {
	return r.client.Del(ctx, keyPrefix+sid).Err()
}
