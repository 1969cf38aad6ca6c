package auth

import (
	"context"

	"epl-api/config"
	"epl-api/packages/auth/handlers"
	"epl-api/packages/auth/middleware"
	"epl-api/packages/auth/models"
	"epl-api/packages/auth/services"
	"epl-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
	Tokens  *utils.TokenService
	JWT     *utils.JWTManager
}

func NewModule(db *gorm.DB, cfg config.AuthConfig, mail config.MailConfig, clock clockwork.Clock) *Module {
	jwt := utils.NewJWTManager(cfg.JWTSecret, cfg.Issuer, cfg.Audience, cfg.AccessTTL, clock)
	tokens := utils.NewTokenService(utils.NewGormRefreshTokenStore(db), jwt, cfg.RefreshTTL, clock)
	return &Module{
		Handler: handlers.NewAuthHandler(db, tokens, services.NewEmailService(mail), clock),
		Tokens:  tokens,
		JWT:     jwt,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.POST("/refresh", m.Handler.RefreshToken)
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/logout-all", m.RequireAuth(), m.Handler.LogoutAll)
		auth.POST("/reset-password/send-link", m.Handler.SendPasswordResetLink)
		auth.POST("/reset-password/confirm", m.Handler.ConfirmPasswordReset)
		auth.POST("/change-password", m.RequireAuth(), m.Handler.ChangePassword)
	}

	users := r.Group("/users", m.RequireAuth())
	{
		users.GET("/me", m.Handler.Profile)
		users.PUT("/:id", m.Handler.UpdateUser)
		users.GET("", m.RequireAdmin(), m.Handler.GetUsers)
		users.PATCH("/:id", m.RequireAdmin(), m.Handler.PatchUser)
	}
}

func (m *Module) RequireAuth() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.JWT)
}

// RequireAdmin must be chained after RequireAuth.
func (m *Module) RequireAdmin() gin.HandlerFunc {
	return middleware.RequireRole(models.RoleAdmin)
}

// CleanExpiredTokens is the scheduled refresh-token cleanup job.
func (m *Module) CleanExpiredTokens() {
	n, err := m.Tokens.CleanExpiredTokens(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("cleaning expired refresh tokens failed")
		return
	}
	log.Info().Int64("deleted", n).Msg("expired refresh tokens cleaned")
}
