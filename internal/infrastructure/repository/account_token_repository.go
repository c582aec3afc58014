package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

type accountTokenRepository struct {
	db *gorm.DB
}

// NewAccountTokenRepository creates a new account token repository
func NewAccountTokenRepository(db *gorm.DB) domainRepo.AccountTokenRepository {
	return &accountTokenRepository{db: db}
}

func (r *accountTokenRepository) Create(ctx context.Context, token *entity.AccountToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *accountTokenRepository) GetByToken(ctx context.Context, token string) (*entity.AccountToken, error) {
	var t entity.AccountToken
	err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *accountTokenRepository) MarkAsUsed(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&entity.AccountToken{}).
		Where("token = ?", token).
		Update("used", true).Error
}

// DeleteByEmail invalidates any previous token of the same purpose so only
// the latest emailed link works
func (r *accountTokenRepository) DeleteByEmail(ctx context.Context, email, purpose string) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND purpose = ?", email, purpose).
		Delete(&entity.AccountToken{}).Error
}

func (r *accountTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.AccountToken{}).Error
}
