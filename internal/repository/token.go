package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// TokenRepository defines persistence operations for access tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	GetByID(ctx context.Context, id uint) (*models.AccessToken, error)
	Touch(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository returns a new TokenRepository implementation.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tokenRepository) GetByID(ctx context.Context, id uint) (*models.AccessToken, error) {
	var token models.AccessToken
	if err := r.db.WithContext(ctx).Preload("User").First(&token, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("AccessToken", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &token, nil
}

// Touch records token usage. Best effort; callers ignore failures.
func (r *tokenRepository) Touch(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Model(&models.AccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", now).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteByUserID revokes every outstanding token for the user in one bulk delete.
func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.AccessToken{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
