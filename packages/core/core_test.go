package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"epl-api/config"
	"epl-api/packages/auth/middleware"
	authModels "epl-api/packages/auth/models"
	"epl-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newRouter wires the real route table over a database handle that never
// connects. Requests a guard rejects never reach it.
func newRouter(t *testing.T) (*gin.Engine, *utils.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=epl dbname=epl sslmode=disable connect_timeout=1",
	}), &gorm.Config{DisableAutomaticPing: true, Logger: logger.Discard})
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	jwt := utils.NewJWTManager("secret", "epl-api", "epl-web", time.Hour, clock)
	guard := Guard{
		Authenticated: middleware.JWTMiddleware(jwt),
		Admin:         middleware.RequireRole(authModels.RoleAdmin),
	}

	r := gin.New()
	NewModule(db, config.Default().League, clock, guard).SetupRoutes(r)
	return r, jwt
}

func bearer(t *testing.T, jwt *utils.JWTManager, roles ...string) string {
	t.Helper()
	raw, err := jwt.GenerateToken(authModels.User{ID: 2, Email: "guest@epl.local", Roles: roles})
	require.NoError(t, err)
	return "Bearer " + raw
}

func serve(r *gin.Engine, method, path, auth string) int {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func concrete(path string) string {
	return strings.ReplaceAll(path, ":id", "1")
}

func TestWriteRoutesRequireAdmin(t *testing.T) {
	r, jwt := newRouter(t)
	guest := bearer(t, jwt, authModels.RoleGuest)

	writes := 0
	for _, route := range r.Routes() {
		if route.Method == http.MethodGet {
			continue
		}
		writes++
		path := concrete(route.Path)
		t.Run(route.Method+" "+route.Path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(r, route.Method, path, ""))
			assert.Equal(t, http.StatusForbidden, serve(r, route.Method, path, guest))
		})
	}
	// 9 resources with create, update and delete each
	assert.Equal(t, 27, writes)
}

func TestDetailReadsRequireToken(t *testing.T) {
	r, _ := newRouter(t)
	for _, path := range []string{
		"/players/1", "/goals/1", "/assists/1", "/cards/1",
		"/seasons/1", "/match-seasons/1", "/news/1",
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, path, ""), path)
	}
}

func TestPublicReadsSkipGuard(t *testing.T) {
	r, _ := newRouter(t)
	for _, path := range []string{
		"/matches", "/matches/table", "/matches/ongoing", "/matches/finished",
		"/matches/upcoming", "/matches/1", "/teams", "/teams/1", "/seasons", "/news",
	} {
		code := serve(r, http.MethodGet, path, "")
		assert.NotEqual(t, http.StatusUnauthorized, code, path)
		assert.NotEqual(t, http.StatusForbidden, code, path)
	}
}
