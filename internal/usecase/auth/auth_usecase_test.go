package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdugdh24/cofounders-backend/internal/config"
	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/repository/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeProvider struct {
	state, verifier string
	gotVerifier     string
	err             error
}

func (p *fakeProvider) AuthCodeURL(state, verifier string) string {
	p.state, p.verifier = state, verifier
	return "https://idp.test/authorize?state=" + state
}

func (p *fakeProvider) Exchange(_ context.Context, code, verifier string) (*domain.Identity, error) {
	p.gotVerifier = verifier
	if p.err != nil {
		return nil, p.err
	}
	return &domain.Identity{
		ID:        domain.IdentityID(domain.ProviderLinkedIn, "sub-"+code),
		Provider:  domain.ProviderLinkedIn,
		Subject:   "sub-" + code,
		GivenName: "Ada",
	}, nil
}

type testEnv struct {
	uc       *AuthUseCase
	provider *fakeProvider
	clock    *time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	provider := &fakeProvider{}
	uc := NewAuthUseCase(
		provider,
		redisstore.NewSessionStore(client),
		redisstore.NewOAuthStateStore(client),
		config.JWTConfig{AccessSecret: testSecret, SessionTTL: 48 * time.Hour, RefreshWithin: 12 * time.Hour},
		logging.Nop(),
	)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	env := &testEnv{uc: uc, provider: provider, clock: &now}
	uc.now = func() time.Time { return *env.clock }
	return env
}

func (e *testEnv) advance(d time.Duration) { *e.clock = e.clock.Add(d) }

func (e *testEnv) signIn(t *testing.T) *AuthResponse {
	t.Helper()
	ctx := context.Background()
	_, err := e.uc.SignInURL(ctx)
	require.NoError(t, err)
	resp, err := e.uc.ExchangeCodeForSession(ctx, "abc", e.provider.state)
	require.NoError(t, err)
	return resp
}

func TestSignInURL(t *testing.T) {
	env := newTestEnv(t)

	url, err := env.uc.SignInURL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, url, env.provider.state)
	assert.NotEmpty(t, env.provider.verifier)
	assert.NotEqual(t, env.provider.state, env.provider.verifier)
}

func TestExchangeCodeForSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.signIn(t)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, env.provider.verifier, env.provider.gotVerifier)
	assert.Equal(t, env.clock.Add(48*time.Hour), resp.ExpiresAt)
	assert.Equal(t, "Ada", resp.Session.Identity.GivenName)

	session, err := env.uc.GetUser(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, session.ID)
	assert.Equal(t, domain.IdentityID(domain.ProviderLinkedIn, "sub-abc"), session.Identity.ID)

	// the state was consumed by the first exchange
	_, err = env.uc.ExchangeCodeForSession(ctx, "abc", env.provider.state)
	assert.ErrorIs(t, err, domain.ErrInvalidOAuthState)
}

func TestExchangeCodeForSession_BadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.ExchangeCodeForSession(ctx, "", "whatever")
	assert.ErrorIs(t, err, domain.ErrMissingCode)

	_, err = env.uc.ExchangeCodeForSession(ctx, "abc", "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidOAuthState)

	_, err = env.uc.SignInURL(ctx)
	require.NoError(t, err)
	env.provider.err = errors.New("token endpoint down")
	_, err = env.uc.ExchangeCodeForSession(ctx, "abc", env.provider.state)
	assert.Error(t, err)
}

func TestGetUser_InvalidTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.GetUser(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = env.uc.GetUser(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	resp := env.signIn(t)
	other := newTestEnv(t)
	other.uc.jwtSecret = []byte("ffffffffffffffffffffffffffffffff")
	_, err = other.uc.GetUser(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGetUser_Expired(t *testing.T) {
	env := newTestEnv(t)
	resp := env.signIn(t)

	env.advance(49 * time.Hour)
	_, err := env.uc.GetUser(context.Background(), resp.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp := env.signIn(t)

	same, renewed, err := env.uc.Refresh(ctx, resp.Token)
	require.NoError(t, err)
	assert.False(t, renewed)
	assert.Equal(t, resp.Token, same.Token)

	env.advance(40 * time.Hour)
	fresh, renewed, err := env.uc.Refresh(ctx, resp.Token)
	require.NoError(t, err)
	assert.True(t, renewed)
	assert.NotEqual(t, resp.Token, fresh.Token)
	assert.Equal(t, env.clock.Add(48*time.Hour), fresh.ExpiresAt)

	// past the original expiry the new token still resolves
	env.advance(10 * time.Hour)
	session, err := env.uc.GetUser(ctx, fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, session.ID)
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp := env.signIn(t)

	require.NoError(t, env.uc.SignOut(ctx, resp.Token))
	_, err := env.uc.GetUser(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.NoError(t, env.uc.SignOut(ctx, "garbage"))
}
