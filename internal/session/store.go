package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the opaque session cookie handed to the client.
const CookieName = "donelist_session"

const keyPrefix = "session:"

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("session not found")

// Store binds authenticated users to opaque session ids. The payload is
// identifier-only, so concurrent requests may reload it freely.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, id string) (uint, error)
	Refresh(ctx context.Context, id string) error
	Destroy(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis; expiry of the inactivity window is
// enforced by the store itself via key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()

	err := s.client.Set(ctx, keyPrefix+id, strconv.FormatUint(uint64(userID), 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (uint, error) {
	value, err := s.client.Get(ctx, keyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}

	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed session payload: %w", err)
	}

	return uint(userID), nil
}

// Refresh restarts the inactivity window on an active session.
func (s *RedisStore) Refresh(ctx context.Context, id string) error {
	return s.client.Expire(ctx, keyPrefix+id, s.ttl).Err()
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
