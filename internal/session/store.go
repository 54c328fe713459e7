// Package session keeps login sessions in Redis behind a signed cookie token.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"stock_simulator/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession means the token is missing, invalid, expired or logged out.
var ErrNoSession = errors.New("no active session")

// Store issues and resolves session tokens
type Store struct {
	rdb    redis.Cmdable
	secret string
	ttl    time.Duration
}

func NewStore(rdb redis.Cmdable, secret string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, secret: secret, ttl: ttl}
}

// TTL is the lifetime of new sessions
func (s *Store) TTL() time.Duration { return s.ttl }

func key(sessionID string) string { return "session:" + sessionID }

// Create starts a session for userID and returns its cookie token
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, key(id), strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	token, err := utils.GenerateJWT(userID, id, s.secret, s.ttl)
	if err != nil {
		_ = s.rdb.Del(ctx, key(id)).Err()
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Resolve returns the user behind token. Redis errors are returned as-is
// so callers can tell an outage from a logged-out user.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return 0, ErrNoSession
	}
	val, err := s.rdb.Get(ctx, key(claims.ID)).Result()
	if err == redis.Nil {
		return 0, ErrNoSession
	} else if err != nil {
		return 0, err
	}
	// The stored owner must match the signed claim
	if val != strconv.FormatUint(uint64(claims.UserID), 10) {
		return 0, ErrNoSession
	}
	return claims.UserID, nil
}

// Destroy ends the session behind token. Unknown tokens are ignored.
func (s *Store) Destroy(ctx context.Context, token string) error {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return nil
	}
	return s.rdb.Del(ctx, key(claims.ID)).Err()
}
