package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionStore(t *testing.T) {
	mr, client := newClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	session := &domain.Session{
		ID:        uuid.New(),
		Identity:  domain.Identity{ID: uuid.New(), Provider: domain.ProviderLinkedIn, Subject: "abc", Email: "a@b.c"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().UTC().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, session, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL(sessionPrefix+session.ID.String()))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Identity, got.Identity)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.Error(t, store.Save(ctx, session, 0))
}

func TestSessionStore_Expires(t *testing.T) {
	mr, client := newClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	session := &domain.Session{ID: uuid.New()}
	require.NoError(t, store.Save(ctx, session, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestOAuthStateStore_ConsumeOnce(t *testing.T) {
	_, client := newClient(t)
	store := NewOAuthStateStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.OAuthState{State: "s1", Verifier: "v1"}, 10*time.Minute))

	got, err := store.Consume(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got.Verifier)

	_, err = store.Consume(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrInvalidOAuthState)

	_, err = store.Consume(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidOAuthState)
}

func TestDraftStore(t *testing.T) {
	mr, client := newClient(t)
	store := NewDraftStore(client)
	ctx := context.Background()
	id := uuid.New()

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	draft := &domain.Draft{
		IdentityID:    id,
		Step:          domain.StepProfile,
		Authenticated: true,
		Fields: domain.DraftFields{
			FirstName:  "Ada",
			LookingFor: []domain.FounderType{domain.FounderHacker},
			Skills:     []string{"Python"},
		},
	}
	require.NoError(t, store.Save(ctx, draft, 24*time.Hour))
	assert.Equal(t, 24*time.Hour, mr.TTL(draftPrefix+id.String()))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, draft.Step, got.Step)
	assert.Equal(t, draft.Fields, got.Fields)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestSubmitLock(t *testing.T) {
	mr, client := newClient(t)
	lock := NewSubmitLock(client)
	ctx := context.Background()
	id := uuid.New()

	token, ok, err := lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lock.Release(ctx, id, token))
	_, ok, err = lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(31 * time.Second)
	_, ok, err = lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmitLock_StaleReleaseKeepsNewHolder(t *testing.T) {
	mr, client := newClient(t)
	lock := NewSubmitLock(client)
	ctx := context.Background()
	id := uuid.New()

	stale, ok, err := lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(31 * time.Second)
	current, ok, err := lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, stale, current)

	require.NoError(t, lock.Release(ctx, id, stale))
	assert.True(t, mr.Exists(submitLockPrefix+id.String()))
	_, ok, err = lock.Acquire(ctx, id, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lock.Release(ctx, id, current))
	assert.False(t, mr.Exists(submitLockPrefix+id.String()))
}
