// README: Session store backed by Redis keys with a sliding TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"taxi/internal/modules/account"
)

const keyPrefix = "taxi:session:%s"

var ErrNotFound = errors.New("session not found")

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// Create stores sess under a fresh random token and returns the token.
func (s *Store) Create(ctx context.Context, sess account.Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.redis.Set(ctx, key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token and extends its lifetime.
func (s *Store) Get(ctx context.Context, token string) (account.Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return account.Session{}, ErrNotFound
	}
	val, err := s.redis.GetEx(ctx, key(token), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return account.Session{}, ErrNotFound
	}
	if err != nil {
		return account.Session{}, fmt.Errorf("load session: %w", err)
	}
	var sess account.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return account.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return fmt.Sprintf(keyPrefix, token)
}
