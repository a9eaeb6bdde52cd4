package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tokengen/internal/models"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/redis/go-redis/v9"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

// RedisSessionStore stores each session as JSON under keyPrefix+id with the idle window as TTL.
type RedisSessionStore struct {
	client    redis.UniversalClient
	keyPrefix string
	idle      time.Duration
	now       models.Clock
}

// NewRedisSessionStore dials Redis from cfg and verifies the connection.
func NewRedisSessionStore(ctx context.Context, cfg shared.RedisConfig, idle time.Duration) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  DefaultDialTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: failed to connect to redis: %v", shared.ErrServiceUnavailable, err)
	}

	return NewRedisSessionStoreWithClient(client, cfg.KeyPrefix, idle, nil), nil
}

// NewRedisSessionStoreWithClient wraps a pre-configured client, e.g. one pointed at miniredis.
func NewRedisSessionStoreWithClient(client redis.UniversalClient, keyPrefix string, idle time.Duration, now models.Clock) *RedisSessionStore {
	return &RedisSessionStore{client: client, keyPrefix: keyPrefix, idle: idle, now: clockOrNow(now)}
}

func (r *RedisSessionStore) key(id string) string {
	return r.keyPrefix + id
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, session *models.Session) error {
	if err := checkSave(session, r.now()); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(session.ID), data, r.idle).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Prune is a no-op: Redis expires keys on its own.
func (r *RedisSessionStore) Prune(context.Context) (int, error) {
	return 0, nil
}

// Close releases the underlying client.
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}
