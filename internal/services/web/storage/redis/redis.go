// Package redis provides a draft store shared between site replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/educonsult/site/internal/lead"
	"github.com/educonsult/site/internal/platform/timeouts"
	webstorage "github.com/educonsult/site/internal/services/web/storage"
)

// KeyPrefix namespaces draft keys.
const KeyPrefix = "educonsult:draft:"

// Options configures the Redis connection.
type Options struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Store keeps drafts as JSON values with Redis-managed expiry.
type Store struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection. Addr may be host:port
// or a redis:// or rediss:// URL.
func New(ctx context.Context, opts Options) (*Store, error) {
	clientOpts, err := clientOptions(opts)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(clientOpts)

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.StoreDial)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", clientOpts.Addr, err)
	}
	return &Store{client: client}, nil
}

// clientOptions builds the connection settings. Credentials and the DB
// index in a URL apply unless Password or DB are set explicitly.
func clientOptions(opts Options) (*redis.Options, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	clientOpts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		clientOpts = parsed
	}
	if opts.Password != "" {
		clientOpts.Password = opts.Password
	}
	if opts.DB != 0 {
		clientOpts.DB = opts.DB
	}
	clientOpts.DialTimeout = timeouts.StoreDial
	return clientOpts, nil
}

func key(id string) string {
	return KeyPrefix + strings.TrimSpace(id)
}

// GetDraft loads a draft. Expired drafts are gone from Redis.
func (s *Store) GetDraft(ctx context.Context, id string) (lead.Draft, bool, error) {
	if strings.TrimSpace(id) == "" {
		return lead.Draft{}, false, fmt.Errorf("draft id is required")
	}
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return lead.Draft{}, false, nil
		}
		return lead.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}
	draft, err := webstorage.DecodeDraft(payload)
	if err != nil {
		return lead.Draft{}, false, err
	}
	return draft, true, nil
}

// PutDraft stores a draft for ttl. A zero ttl keeps it until deleted.
func (s *Store) PutDraft(ctx context.Context, draft lead.Draft, ttl time.Duration) error {
	if strings.TrimSpace(draft.ID) == "" {
		return fmt.Errorf("draft id is required")
	}
	payload, err := webstorage.EncodeDraft(draft)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(draft.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

// DeleteDraft removes a draft.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// TTL reports the remaining lifetime of a draft.
func (s *Store) TTL(ctx context.Context, id string) (time.Duration, error) {
	return s.client.TTL(ctx, key(id)).Result()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ webstorage.DraftStore = (*Store)(nil)
