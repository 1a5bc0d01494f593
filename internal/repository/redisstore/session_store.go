package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type sessionStore struct {
	client redis.Cmdable
}

func NewSessionStore(client redis.Cmdable) repository.SessionRepository {
	return &sessionStore{client: client}
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return setJSON(ctx, s.client, sessionPrefix+session.ID.String(), session, ttl)
}

func (s *sessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	if err := getJSON(ctx, s.client, sessionPrefix+id.String(), &session, domain.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *sessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionPrefix+id.String()).Err()
}

type oauthStateStore struct {
	client redis.Cmdable
}

func NewOAuthStateStore(client redis.Cmdable) repository.OAuthStateRepository {
	return &oauthStateStore{client: client}
}

func (s *oauthStateStore) Save(ctx context.Context, state *domain.OAuthState, ttl time.Duration) error {
	return setJSON(ctx, s.client, oauthStatePrefix+state.State, state, ttl)
}

func (s *oauthStateStore) Consume(ctx context.Context, state string) (*domain.OAuthState, error) {
	if state == "" {
		return nil, domain.ErrInvalidOAuthState
	}
	data, err := s.client.GetDel(ctx, oauthStatePrefix+state).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidOAuthState
		}
		return nil, err
	}
	var out domain.OAuthState
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal oauth state: %w", err)
	}
	return &out, nil
}
