package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursify/coursify/internal/models"
)

type CourseRepo struct {
	DB *gorm.DB
}

func (r *CourseRepo) Create(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepo) ListPublished(ctx context.Context) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	if err := r.DB.WithContext(ctx).
		Where("published = ?", true).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	if err := r.DB.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Update applies the full payload to the course, but only if creatorID owns
// it. Returns the updated row, or gorm.ErrRecordNotFound when the course is
// missing or owned by someone else.
func (r *CourseRepo) Update(ctx context.Context, id, creatorID uuid.UUID, course *models.Course) (*models.Course, error) {
	res := r.DB.WithContext(ctx).Model(&models.Course{}).
		Where("id = ? AND creator_id = ?", id, creatorID).
		Select("title", "description", "price", "image", "published").
		Updates(course)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updated models.Course
	if err := r.DB.WithContext(ctx).First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CourseRepo) Delete(ctx context.Context, id, creatorID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND creator_id = ?", id, creatorID).
		Delete(&models.Course{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
