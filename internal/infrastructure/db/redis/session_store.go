package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gameforge/auth-core/internal/core/domain"
)

// SessionStore keeps sessions in Redis. Each session is a hash under
// session:<id> with a TTL matching its expiry, and every user has an index
// set user:<id>:sessions so all of a user's sessions can be revoked at once.
// Redis evicts expired keys on its own, which doubles as the periodic sweep.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session store: session already expired")
	}

	skey := sessionKey(session.ID)
	ukey := userSessionsKey(session.UserID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, skey, map[string]any{
			"user_id":    session.UserID,
			"created_at": session.CreatedAt.Unix(),
			"expires_at": session.ExpiresAt.Unix(),
		})
		pipe.Expire(ctx, skey, ttl)
		pipe.SAdd(ctx, ukey, session.ID)
		// The index outlives its members slightly; stale entries are
		// skipped at delete time.
		pipe.Expire(ctx, ukey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session store put: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session store get: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	createdAt, _ := parseUnix(fields["created_at"])
	expiresAt, err := parseUnix(fields["expires_at"])
	if err != nil || fields["user_id"] == "" {
		return nil, fmt.Errorf("session store get: corrupt record for %q", id)
	}

	return &domain.Session{
		ID:        id,
		UserID:    fields["user_id"],
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.SRem(ctx, userSessionsKey(session.UserID), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session store delete: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID string) error {
	ukey := userSessionsKey(userID)
	ids, err := s.client.SMembers(ctx, ukey).Result()
	if err != nil {
		return fmt.Errorf("session store list: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, ukey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session store delete all: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func userSessionsKey(userID string) string {
	return "user:" + userID + ":sessions"
}

func parseUnix(s string) (time.Time, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0).UTC(), nil
}
