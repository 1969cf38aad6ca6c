package utils

import (
	"context"
	"time"

	"epl-api/packages/auth/models"

	"gorm.io/gorm"
)

// RefreshTokenStore persists refresh tokens for TokenService.
type RefreshTokenStore interface {
	Create(ctx context.Context, rt *models.RefreshToken) error
	// FindByToken returns the token with its user loaded.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	// Rotate swaps current for next and reports whether the row still held current.
	Rotate(ctx context.Context, id uint, current, next string, expiresAt time.Time) (bool, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type GormRefreshTokenStore struct {
	db *gorm.DB
}

func NewGormRefreshTokenStore(db *gorm.DB) *GormRefreshTokenStore {
	return &GormRefreshTokenStore{db: db}
}

func (s *GormRefreshTokenStore) Create(ctx context.Context, rt *models.RefreshToken) error {
	return s.db.WithContext(ctx).Create(rt).Error
}

func (s *GormRefreshTokenStore) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.WithContext(ctx).Preload("User").Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *GormRefreshTokenStore) Rotate(ctx context.Context, id uint, current, next string, expiresAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND token = ?", id, current).
		Updates(map[string]any{"token": next, "expires_at": expiresAt})
	return res.RowsAffected > 0, res.Error
}

func (s *GormRefreshTokenStore) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.RefreshToken{}, id).Error
}

func (s *GormRefreshTokenStore) DeleteByToken(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (s *GormRefreshTokenStore) DeleteByUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (s *GormRefreshTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
