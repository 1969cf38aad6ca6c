package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole must run after JWTMiddleware; it checks the roles carried by the token.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return RequireAnyRole(requiredRole)
}

func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		have := GetUserRoles(c)
		for _, want := range roles {
			for _, r := range have {
				if r == want {
					c.Next()
					return
				}
			}
		}
		abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}
