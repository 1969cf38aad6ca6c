package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesColumn(t *testing.T) {
	v, err := Roles{RoleAdmin, RoleGuest}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["admin","guest"]`, string(v.([]byte)))

	v, err = Roles(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `["guest"]`, string(v.([]byte)))

	var r Roles
	require.NoError(t, r.Scan([]byte(`["admin"]`)))
	assert.True(t, r.Has(RoleAdmin))
	require.NoError(t, r.Scan(`["guest"]`))
	assert.Equal(t, Roles{RoleGuest}, r)
	require.NoError(t, r.Scan(nil))
	assert.Equal(t, Roles{RoleGuest}, r)
}

func TestUserRoles(t *testing.T) {
	u := User{Roles: GetDefaultRoles()}
	assert.False(t, u.HasRole(RoleAdmin))
	u.AddRole(RoleAdmin)
	u.AddRole(RoleAdmin)
	assert.Equal(t, Roles{RoleGuest, RoleAdmin}, u.Roles)
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("owner"))
}

func TestRecordLoginCountsDays(t *testing.T) {
	u := User{}
	morning := time.Date(2025, 8, 16, 9, 0, 0, 0, time.UTC)

	u.RecordLogin(morning)
	u.RecordLogin(morning.Add(3 * time.Hour))
	assert.Equal(t, 1, u.ConnectionCount)

	u.RecordLogin(morning.Add(24 * time.Hour))
	assert.Equal(t, 2, u.ConnectionCount)
	require.NotNil(t, u.LastLogin)
	assert.True(t, u.LastLogin.Equal(morning.Add(24*time.Hour)))
}

func TestPasswordRequestExpiry(t *testing.T) {
	now := time.Date(2025, 8, 16, 9, 0, 0, 0, time.UTC)
	u := User{}
	assert.True(t, u.IsPasswordRequestExpired(now, 2*time.Hour))

	requested := now.Add(-time.Hour)
	u.PasswordRequestedAt = &requested
	assert.False(t, u.IsPasswordRequestExpired(now, 2*time.Hour))
	assert.True(t, u.IsPasswordRequestExpired(now.Add(2*time.Hour), 2*time.Hour))
}

func TestRefreshTokenExpiry(t *testing.T) {
	now := time.Date(2025, 8, 16, 9, 0, 0, 0, time.UTC)
	rt := RefreshToken{ExpiresAt: now}
	assert.False(t, rt.IsExpired(now.Add(-time.Second)))
	assert.True(t, rt.IsExpired(now.Add(time.Second)))
}
