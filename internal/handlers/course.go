package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/coursify/coursify/internal/apperr"
	"github.com/coursify/coursify/internal/events"
	"github.com/coursify/coursify/internal/logging"
	"github.com/coursify/coursify/internal/models"
	"github.com/coursify/coursify/internal/repo"
)

// CourseHandler covers the admin side of the catalog. Every operation is
// scoped to the creator injected by the auth gate; "not yours" and "does not
// exist" are indistinguishable to the client.
type CourseHandler struct {
	Courses *repo.CourseRepo
	Events  *events.Producer
}

type coursePayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Published   bool    `json:"published"`
}

func (h *CourseHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	adminID := c.Get("userID").(uuid.UUID)

	var req coursePayload
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid input format")
	}
	if req.Title == "" || req.Price < 0 {
		return apperr.Validation("Invalid input format")
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Published:   req.Published,
		CreatorID:   adminID,
	}
	if err := h.Courses.Create(ctx, &course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("Course with this title already exists")
		}
		return apperr.Persistence(err)
	}

	if err := h.Events.Publish(ctx, "course_events", course.ID.String(), echo.Map{
		"type":       "course_created",
		"course_id":  course.ID,
		"creator_id": adminID,
	}); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", "course_created", "error", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Course created successfully",
		"courseId": course.ID,
	})
}

func (h *CourseHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	adminID := c.Get("userID").(uuid.UUID)

	courses, err := h.Courses.ListByCreator(ctx, adminID)
	if err != nil {
		return apperr.Persistence(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func (h *CourseHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	adminID := c.Get("userID").(uuid.UUID)

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return apperr.Validation("Invalid course id")
	}

	var req coursePayload
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid input format")
	}

	updated, err := h.Courses.Update(ctx, courseID, adminID, &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Published:   req.Published,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(http.StatusNotFound, "Course not found or you are not the creator")
		}
		return apperr.Persistence(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Course updated successfully",
		"course":  updated,
	})
}

func (h *CourseHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	adminID := c.Get("userID").(uuid.UUID)

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return apperr.Validation("Invalid course id")
	}

	if err := h.Courses.Delete(ctx, courseID, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(http.StatusNotFound, "Course not found or you are not the creator")
		}
		return apperr.Persistence(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Course deleted successfully"})
}
