package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"epl-api/packages/auth/models"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// TokenService issues access/refresh pairs and rotates refresh tokens on use.
type TokenService struct {
	store      RefreshTokenStore
	jwt        *JWTManager
	refreshTTL time.Duration
	clock      clockwork.Clock
}

func NewTokenService(store RefreshTokenStore, jwt *JWTManager, refreshTTL time.Duration, clock clockwork.Clock) *TokenService {
	return &TokenService{store: store, jwt: jwt, refreshTTL: refreshTTL, clock: clock}
}

func (s *TokenService) response(access, refresh string) *models.TokenResponse {
	return &models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.TTL().Seconds()),
		TokenType:    "Bearer",
	}
}

func (s *TokenService) GenerateTokenPair(ctx context.Context, user models.User) (*models.TokenResponse, error) {
	accessToken, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateSecureToken()
	if err != nil {
		return nil, err
	}

	rt := models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: s.clock.Now().Add(s.refreshTTL),
	}
	if err := s.store.Create(ctx, &rt); err != nil {
		return nil, err
	}
	return s.response(accessToken, refresh), nil
}

// RefreshAccessToken trades a refresh token for a new pair. The presented
// token is replaced so it cannot be used twice.
func (s *TokenService) RefreshAccessToken(ctx context.Context, raw string) (*models.TokenResponse, *models.User, error) {
	rt, err := s.store.FindByToken(ctx, raw)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	if rt.IsExpired(s.clock.Now()) {
		if err := s.store.DeleteByID(ctx, rt.ID); err != nil {
			log.Warn().Err(err).Uint("token_id", rt.ID).Msg("failed to delete expired refresh token")
		}
		return nil, nil, ErrInvalidRefreshToken
	}
	if !rt.User.Enabled {
		return nil, nil, ErrInvalidRefreshToken
	}

	accessToken, err := s.jwt.GenerateToken(rt.User)
	if err != nil {
		return nil, nil, err
	}
	next, err := GenerateSecureToken()
	if err != nil {
		return nil, nil, err
	}

	rotated, err := s.store.Rotate(ctx, rt.ID, raw, next, s.clock.Now().Add(s.refreshTTL))
	if err != nil {
		return nil, nil, err
	}
	if !rotated {
		// rotated concurrently
		return nil, nil, ErrInvalidRefreshToken
	}
	user := rt.User
	return s.response(accessToken, next), &user, nil
}

func (s *TokenService) RevokeRefreshToken(ctx context.Context, raw string) error {
	return s.store.DeleteByToken(ctx, raw)
}

func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID uint) error {
	return s.store.DeleteByUser(ctx, userID)
}

// CleanExpiredTokens deletes expired refresh tokens and returns how many went.
func (s *TokenService) CleanExpiredTokens(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.clock.Now())
}

// GenerateSecureToken returns 256 random bits hex encoded.
func GenerateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
