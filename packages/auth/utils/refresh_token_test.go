package utils

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"epl-api/packages/auth/models"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokenStore keeps refresh tokens in a map and joins users on lookup.
type memTokenStore struct {
	mu        sync.Mutex
	nextID    uint
	tokens    map[uint]models.RefreshToken
	users     map[uint]models.User
	deleteErr error
	// beforeRotate runs inside Rotate so tests can change the row first.
	beforeRotate func()
}

func newMemTokenStore(users ...models.User) *memTokenStore {
	s := &memTokenStore{tokens: map[uint]models.RefreshToken{}, users: map[uint]models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memTokenStore) Create(_ context.Context, rt *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rt.ID = s.nextID
	s.tokens[rt.ID] = *rt
	return nil
}

func (s *memTokenStore) FindByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range s.tokens {
		if rt.Token == token {
			rt.User = s.users[rt.UserID]
			return &rt, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *memTokenStore) Rotate(_ context.Context, id uint, current, next string, expiresAt time.Time) (bool, error) {
	if s.beforeRotate != nil {
		s.beforeRotate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.tokens[id]
	if !ok || rt.Token != current {
		return false, nil
	}
	rt.Token, rt.ExpiresAt = next, expiresAt
	s.tokens[id] = rt
	return true, nil
}

func (s *memTokenStore) DeleteByID(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.tokens, id)
	return nil
}

func (s *memTokenStore) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rt := range s.tokens {
		if rt.Token == token {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *memTokenStore) DeleteByUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rt := range s.tokens {
		if rt.UserID == userID {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *memTokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, rt := range s.tokens {
		if rt.ExpiresAt.Before(now) {
			delete(s.tokens, id)
			n++
		}
	}
	return n, nil
}

func (s *memTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func newTokenService(store RefreshTokenStore) (*TokenService, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	jwt := NewJWTManager("secret", "epl-api", "epl-web", 15*time.Minute, clock)
	return NewTokenService(store, jwt, 24*time.Hour, clock), clock
}

func enabledUser() models.User {
	u := testUser()
	u.Enabled = true
	return u
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	store := newMemTokenStore(enabledUser())
	svc, clock := newTokenService(store)

	pair, err := svc.GenerateTokenPair(ctx, enabledUser())
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	clock.Advance(time.Hour)
	next, user, err := svc.RefreshAccessToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.NotEmpty(t, next.AccessToken)
	assert.Equal(t, 1, store.count())

	claims, err := svc.jwt.ParseToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)

	_, _, err = svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// the rotated token carries a fresh expiry
	clock.Advance(23*time.Hour + 30*time.Minute)
	_, _, err = svc.RefreshAccessToken(ctx, next.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsDisabledUser(t *testing.T) {
	ctx := context.Background()
	disabled := testUser()
	store := newMemTokenStore(disabled)
	svc, _ := newTokenService(store)

	pair, err := svc.GenerateTokenPair(ctx, disabled)
	require.NoError(t, err)

	_, _, err = svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Equal(t, 1, store.count())
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _ := newTokenService(newMemTokenStore())
	_, _, err := svc.RefreshAccessToken(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshDeletesExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := newMemTokenStore(enabledUser())
	svc, clock := newTokenService(store)

	pair, err := svc.GenerateTokenPair(ctx, enabledUser())
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	_, _, err = svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Equal(t, 0, store.count())
}

func TestRefreshLogsFailedExpiredDelete(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	ctx := context.Background()
	store := newMemTokenStore(enabledUser())
	store.deleteErr = errors.New("connection reset")
	svc, clock := newTokenService(store)

	pair, err := svc.GenerateTokenPair(ctx, enabledUser())
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	_, _, err = svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Contains(t, buf.String(), "failed to delete expired refresh token")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestRefreshLosesConcurrentRotation(t *testing.T) {
	ctx := context.Background()
	store := newMemTokenStore(enabledUser())
	svc, _ := newTokenService(store)

	pair, err := svc.GenerateTokenPair(ctx, enabledUser())
	require.NoError(t, err)

	store.beforeRotate = func() {
		store.beforeRotate = nil
		_, err := store.Rotate(ctx, 1, pair.RefreshToken, "taken-by-other-request", time.Now())
		require.NoError(t, err)
	}
	_, _, err = svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeAndCleanTokens(t *testing.T) {
	ctx := context.Background()
	other := models.User{ID: 7, Enabled: true}
	store := newMemTokenStore(enabledUser(), other)
	svc, clock := newTokenService(store)

	first, err := svc.GenerateTokenPair(ctx, enabledUser())
	require.NoError(t, err)
	_, err = svc.GenerateTokenPair(ctx, enabledUser())
	require.NoError(t, err)
	_, err = svc.GenerateTokenPair(ctx, other)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(ctx, first.RefreshToken))
	assert.Equal(t, 2, store.count())

	require.NoError(t, svc.RevokeAllUserTokens(ctx, 42))
	assert.Equal(t, 1, store.count())

	n, err := svc.CleanExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	clock.Advance(25 * time.Hour)
	n, err = svc.CleanExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, store.count())
}
