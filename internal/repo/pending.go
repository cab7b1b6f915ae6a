package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursify/coursify/internal/auth"
	"github.com/coursify/coursify/internal/models"
)

// PendingRepo stores signup data awaiting OTP verification. TTL is the
// verification window; FindValid enforces it on read so a row past the
// window is gone for callers even before the sweeper deletes it.
type PendingRepo struct {
	DB  *gorm.DB
	TTL time.Duration
}

func (r *PendingRepo) Create(ctx context.Context, email, username, passwordHash, code string) error {
	row := models.PendingVerification{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Code:         code,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *PendingRepo) FindValid(ctx context.Context, email, code string) (*auth.PendingRecord, error) {
	var row models.PendingVerification
	cutoff := time.Now().Add(-r.TTL)
	if err := r.DB.WithContext(ctx).
		Where("email = ? AND code = ? AND created_at > ?", email, code, cutoff).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &auth.PendingRecord{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Code:         row.Code,
	}, nil
}

func (r *PendingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.PendingVerification{}, "id = ?", id).Error
}

func (r *PendingRepo) DeleteExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-r.TTL)
	res := r.DB.WithContext(ctx).
		Where("created_at <= ?", cutoff).
		Delete(&models.PendingVerification{})
	return res.RowsAffected, res.Error
}
