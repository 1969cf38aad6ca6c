package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"epl-api/packages/auth/models"
	"epl-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(jwt *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	}
	r.GET("/me", JWTMiddleware(jwt), ok)
	r.GET("/admin", JWTMiddleware(jwt), RequireRole(models.RoleAdmin), ok)
	r.GET("/staff", JWTMiddleware(jwt), RequireAnyRole("editor", models.RoleAdmin), ok)
	r.GET("/misconfigured", RequireRole(models.RoleAdmin), ok)
	return r
}

func token(t *testing.T, jwt *utils.JWTManager, id uint, roles ...string) string {
	t.Helper()
	raw, err := jwt.GenerateToken(models.User{ID: id, Email: "u@epl.local", Roles: roles})
	require.NoError(t, err)
	return "Bearer " + raw
}

func TestAuthMiddleware(t *testing.T) {
	clock := clockwork.NewFakeClock()
	jwt := utils.NewJWTManager("secret", "epl-api", "epl-web", time.Hour, clock)
	r := newRouter(jwt)

	admin := token(t, jwt, 1, models.RoleAdmin, models.RoleGuest)
	guest := token(t, jwt, 2, models.RoleGuest)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not a bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "/me", guest, http.StatusOK},
		{"lowercase scheme", "/me", "bearer " + guest[len("Bearer "):], http.StatusOK},
		{"guest on admin route", "/admin", guest, http.StatusForbidden},
		{"admin on admin route", "/admin", admin, http.StatusOK},
		{"any role matches", "/staff", admin, http.StatusOK},
		{"no matching role", "/staff", guest, http.StatusForbidden},
		{"role check without auth", "/misconfigured", admin, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"statusCode"`)
			}
		})
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	clock := clockwork.NewFakeClock()
	jwt := utils.NewJWTManager("secret", "epl-api", "epl-web", time.Minute, clock)
	r := newRouter(jwt)
	header := token(t, jwt, 3, models.RoleGuest)

	clock.Advance(2 * time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareAttachesCaller(t *testing.T) {
	jwt := utils.NewJWTManager("secret", "epl-api", "epl-web", time.Hour, clockwork.NewFakeClock())
	r := newRouter(jwt)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", token(t, jwt, 9, models.RoleGuest))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 9}`, w.Body.String())
}
