package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a learner account. Created only by a successful OTP verification,
// never directly by signup.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"  json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	RefreshToken string    `json:"-"`
}

// Admin is a course creator. Same credential shape as User but a separate
// table: usernames and emails are unique per variant, not globally.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"  json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	RefreshToken string    `json:"-"`
}

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	Title       string    `gorm:"not null;uniqueIndex:idx_title_creator"          json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"                                        json:"price"`
	Image       string    `json:"image"`
	Published   bool      `gorm:"default:false"                                   json:"published"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_title_creator" json:"creator_id"`
}

// Enrollment links a user to a purchased course. The composite unique index
// makes a repeat purchase a no-op rather than a duplicate row.
type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"                          json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_course;not null" json:"user_id"`
	CourseID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_course;not null" json:"course_id"`
}

// PendingVerification holds signup data between the OTP email and the verify
// call. Rows older than the configured window are swept; at most one pending
// row may exist per email and per username.
type PendingVerification struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Code         string    `gorm:"not null"             json:"-"`
	CreatedAt    time.Time `gorm:"index"                json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (v *PendingVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
