package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	applog "github.com/janisto/contact-card/internal/platform/logging"
)

// NewRedisClient parses url, connects and verifies the server answers PING.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps the record as a JSON string under a single key.
// A SET is atomic, so readers never observe a partial record.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Load fetches the record with GET.
func (s *RedisStore) Load(ctx context.Context) (Profile, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		applog.LogStoreEvent(ctx, "load", "redis", s.key, "absent", nil)
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, s.fail(ctx, "load", err)
	}

	p, err := decodeRecord(data)
	if err != nil {
		return Profile{}, false, s.fail(ctx, "load", err)
	}
	applog.LogStoreEvent(ctx, "load", "redis", s.key, "success", nil)
	return p, true, nil
}

// Save overwrites the key without expiry.
func (s *RedisStore) Save(ctx context.Context, p Profile) error {
	data, err := encodeRecord(p)
	if err != nil {
		return s.fail(ctx, "save", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return s.fail(ctx, "save", err)
	}
	applog.LogStoreEvent(ctx, "save", "redis", s.key, "success", nil)
	return nil
}

func (s *RedisStore) fail(ctx context.Context, action string, err error) error {
	applog.LogStoreEvent(ctx, action, "redis", s.key, "failure",
		map[string]any{"error": categorizeError(err)})
	return storeError(action, err)
}

var _ Store = (*RedisStore)(nil)
