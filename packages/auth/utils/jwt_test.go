package utils

import (
	"errors"
	"testing"
	"time"

	"epl-api/packages/auth/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	return models.User{ID: 42, Email: "admin@epl.local", Roles: models.Roles{models.RoleAdmin, models.RoleGuest}}
}

func TestJWTRoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewJWTManager("secret", "epl-api", "epl-web", 15*time.Minute, clock)

	raw, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := m.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@epl.local", claims.Email)
	assert.Equal(t, []string{models.RoleAdmin, models.RoleGuest}, claims.Roles)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	other, err := m.GenerateToken(testUser())
	require.NoError(t, err)
	otherClaims, err := m.ParseToken(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID, "every token gets its own jti")
}

func TestJWTExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewJWTManager("secret", "epl-api", "epl-web", 15*time.Minute, clock)
	raw, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	clock.Advance(14 * time.Minute)
	_, err = m.ParseToken(raw)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = m.ParseToken(raw)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTRejectsForeignTokens(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewJWTManager("secret", "epl-api", "epl-web", time.Hour, clock)

	for name, signer := range map[string]*JWTManager{
		"other secret":   NewJWTManager("not-the-secret", "epl-api", "epl-web", time.Hour, clock),
		"other issuer":   NewJWTManager("secret", "someone-else", "epl-web", time.Hour, clock),
		"other audience": NewJWTManager("secret", "epl-api", "mobile", time.Hour, clock),
	} {
		raw, err := signer.GenerateToken(testUser())
		require.NoError(t, err)
		_, err = m.ParseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}

	_, err := m.ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword("correct horse", hash))
	assert.False(t, CheckPassword("battery staple", hash))
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken()
	require.NoError(t, err)
	b, err := GenerateSecureToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 32)
}
