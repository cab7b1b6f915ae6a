package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coursify/coursify/internal/apperr"
	"github.com/coursify/coursify/internal/events"
	"github.com/coursify/coursify/internal/logging"
	"github.com/coursify/coursify/internal/repo"
)

// EnrollmentHandler covers the learner side of the catalog: browsing the
// published list, purchasing, and listing purchases.
type EnrollmentHandler struct {
	Users   *repo.UserRepo
	Courses *repo.CourseRepo
	Events  *events.Producer
}

func (h *EnrollmentHandler) ListCourses(c echo.Context) error {
	ctx := c.Request().Context()

	courses, err := h.Courses.ListPublished(ctx)
	if err != nil {
		return apperr.Persistence(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

// Purchase is idempotent: buying a course twice leaves a single enrollment
// and reports success both times.
func (h *EnrollmentHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Get("userID").(uuid.UUID)

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return apperr.Validation("Invalid course id")
	}

	if err := h.Users.Enroll(ctx, userID, courseID); err != nil {
		return apperr.Persistence(err)
	}

	if err := h.Events.Publish(ctx, "course_events", courseID.String(), echo.Map{
		"type":      "course_purchased",
		"course_id": courseID,
		"user_id":   userID,
	}); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", "course_purchased", "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Course purchased successfully"})
}

func (h *EnrollmentHandler) Purchased(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Get("userID").(uuid.UUID)

	courses, err := h.Users.EnrolledCourses(ctx, userID)
	if err != nil {
		return apperr.Persistence(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"purchasedCourses": courses})
}
