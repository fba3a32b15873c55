package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"       // Opaque session identifiers
	"github.com/redis/go-redis/v9" // Redis client
)

// Store is the server-side session registry. A session is created at login,
// destroyed at logout, and expires after the idle TTL. Tokens are only
// honored while their session record exists here.
type Store interface {
	// Create registers a session for a user and returns its opaque ID
	Create(ctx context.Context, userID uint) (string, error)
	// Get resolves a session ID to a user ID, refreshing the idle TTL
	Get(ctx context.Context, sessionID string) (uint, bool, error)
	// Destroy removes a session; destroying a missing session is a no-op
	Destroy(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a sliding TTL
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create registers a session for a user and returns its opaque ID
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+id, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get resolves a session ID to a user ID, refreshing the idle TTL
func (s *RedisStore) Get(ctx context.Context, sessionID string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return 0, false, nil // Session expired or never existed
	} else if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	// Sliding expiration: activity keeps the session alive
	_ = s.rdb.Expire(ctx, keyPrefix+sessionID, s.ttl).Err()
	return uint(userID), true, nil
}

// Destroy removes a session; destroying a missing session is a no-op
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}

// MemoryStore is an in-process Store used by tests and local development
// where no Redis is available.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	userID  uint
	expires time.Time
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

// Create registers a session for a user and returns its opaque ID
func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.sessions[id] = memorySession{userID: userID, expires: time.Now().Add(s.ttl)}
	return id, nil
}

// Get resolves a session ID to a user ID, refreshing the idle TTL
func (s *MemoryStore) Get(_ context.Context, sessionID string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(sess.expires) {
		delete(s.sessions, sessionID)
		return 0, false, nil
	}
	sess.expires = time.Now().Add(s.ttl)
	s.sessions[sessionID] = sess
	return sess.userID, true, nil
}

// Destroy removes a session; destroying a missing session is a no-op
func (s *MemoryStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
