package redisstore

import (
	"context"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type draftStore struct {
	client redis.Cmdable
}

func NewDraftStore(client redis.Cmdable) repository.DraftRepository {
	return &draftStore{client: client}
}

func (s *draftStore) Get(ctx context.Context, identityID uuid.UUID) (*domain.Draft, error) {
	var draft domain.Draft
	if err := getJSON(ctx, s.client, draftPrefix+identityID.String(), &draft, domain.ErrDraftNotFound); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *draftStore) Save(ctx context.Context, draft *domain.Draft, ttl time.Duration) error {
	return setJSON(ctx, s.client, draftPrefix+draft.IdentityID.String(), draft, ttl)
}

func (s *draftStore) Delete(ctx context.Context, identityID uuid.UUID) error {
	return s.client.Del(ctx, draftPrefix+identityID.String()).Err()
}

// releaseScript deletes the lock only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type submitLock struct {
	client redis.Cmdable
}

func NewSubmitLock(client redis.Cmdable) repository.SubmitLock {
	return &submitLock{client: client}
}

func (l *submitLock) Acquire(ctx context.Context, identityID uuid.UUID, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, submitLockPrefix+identityID.String(), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *submitLock) Release(ctx context.Context, identityID uuid.UUID, token string) error {
	return releaseScript.Run(ctx, l.client, []string{submitLockPrefix + identityID.String()}, token).Err()
}
