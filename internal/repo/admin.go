package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursify/coursify/internal/auth"
	"github.com/coursify/coursify/internal/models"
)

// AdminRepo is the creator-side credential store. Same capability surface as
// UserRepo over its own table.
type AdminRepo struct {
	DB *gorm.DB
}

func (r *AdminRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AdminRepo) Create(ctx context.Context, username, email, passwordHash string) (*auth.Principal, error) {
	admin := models.Admin{Username: username, Email: email, PasswordHash: passwordHash}
	if err := r.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, auth.ErrDuplicate
		}
		return nil, err
	}
	return adminPrincipal(&admin), nil
}

func (r *AdminRepo) FindForLogin(ctx context.Context, usernameOrEmail string) (*auth.Principal, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return adminPrincipal(&admin), nil
}

func (r *AdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*auth.Principal, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return adminPrincipal(&admin), nil
}

func (r *AdminRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", id).
		Update("refresh_token", token).Error
}

func (r *AdminRepo) ClearRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("refresh_token = ?", token).
		Update("refresh_token", "").Error
}

func adminPrincipal(a *models.Admin) *auth.Principal {
	return &auth.Principal{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		RefreshToken: a.RefreshToken,
	}
}
