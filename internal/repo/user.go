package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coursify/coursify/internal/auth"
	"github.com/coursify/coursify/internal/models"
)

// UserRepo is the learner-side credential store plus enrollment operations.
type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*auth.Principal, error) {
	user := models.User{Username: username, Email: email, PasswordHash: passwordHash}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, auth.ErrDuplicate
		}
		return nil, err
	}
	return userPrincipal(&user), nil
}

func (r *UserRepo) FindForLogin(ctx context.Context, usernameOrEmail string) (*auth.Principal, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return userPrincipal(&user), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*auth.Principal, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return userPrincipal(&user), nil
}

func (r *UserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token", token).Error
}

func (r *UserRepo) ClearRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("refresh_token = ?", token).
		Update("refresh_token", "").Error
}

// Enroll records a purchase. The composite unique index plus DO NOTHING makes
// a repeat purchase a silent no-op.
func (r *UserRepo) Enroll(ctx context.Context, userID, courseID uuid.UUID) error {
	enrollment := models.Enrollment{UserID: userID, CourseID: courseID}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&enrollment).Error
}

func (r *UserRepo) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	if err := r.DB.WithContext(ctx).Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func userPrincipal(u *models.User) *auth.Principal {
	return &auth.Principal{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		RefreshToken: u.RefreshToken,
	}
}
