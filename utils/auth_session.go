package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotCached means the auth cache has no entry for the user; callers
// fall back to the stored token hash.
var ErrSessionNotCached = errors.New("auth session not cached")

// SessionStore caches the hash of each user's current access token.
type SessionStore interface {
	Save(ctx context.Context, userID, tokenHash string) error
	Lookup(ctx context.Context, userID string) (string, error)
	Revoke(ctx context.Context, userID string) error
}

// RedisSessionStore keeps token hashes under AuthCachePrefix+userID.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: AuthCacheTTL}
}

func (s *RedisSessionStore) Save(ctx context.Context, userID, tokenHash string) error {
	if err := s.Client.Set(ctx, AuthCachePrefix+userID, tokenHash, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// Lookup returns the cached hash and refreshes its TTL.
func (s *RedisSessionStore) Lookup(ctx context.Context, userID string) (string, error) {
	key := AuthCachePrefix + userID
	hash, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotCached
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth session: %w", err)
	}
	_ = s.Client.Expire(ctx, key, s.TTL).Err()
	return hash, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, userID string) error {
	return s.Client.Del(ctx, AuthCachePrefix+userID).Err()
}

// MemorySessionStore is a process-local SessionStore used in tests.
type MemorySessionStore struct {
	mu     sync.Mutex
	hashes map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{hashes: make(map[string]string)}
}

func (s *MemorySessionStore) Save(_ context.Context, userID, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[userID] = tokenHash
	return nil
}

func (s *MemorySessionStore) Lookup(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.hashes[userID]
	if !ok {
		return "", ErrSessionNotCached
	}
	return hash, nil
}

func (s *MemorySessionStore) Revoke(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, userID)
	return nil
}
