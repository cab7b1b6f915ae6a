package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursify/coursify/internal/handlers"
	"github.com/coursify/coursify/internal/middleware"
)

type Deps struct {
	UserAuth    *handlers.AuthHandler
	AdminAuth   *handlers.AuthHandler
	Courses     *handlers.CourseHandler
	Enrollments *handlers.EnrollmentHandler
	Gate        *middleware.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	users := e.Group("/users")
	users.POST("/signup", d.UserAuth.Signup)
	users.POST("/verify", d.UserAuth.Verify)
	users.POST("/login", d.UserAuth.Login)
	users.POST("/logout", d.UserAuth.Logout)
	users.POST("/refresh", d.UserAuth.Refresh)

	users.GET("/courses", d.Enrollments.ListCourses)
	users.POST("/courses/:courseId", d.Enrollments.Purchase, d.Gate.RequireAuth)
	users.GET("/purchasedCourses", d.Enrollments.Purchased, d.Gate.RequireAuth)

	admin := e.Group("/admin")
	admin.POST("/signup", d.AdminAuth.Signup)
	admin.POST("/verify", d.AdminAuth.Verify)
	admin.POST("/login", d.AdminAuth.Login)
	admin.POST("/logout", d.AdminAuth.Logout)
	admin.POST("/refresh", d.AdminAuth.Refresh)

	admin.GET("/courses", d.Courses.List, d.Gate.RequireAuth)
	admin.POST("/courses", d.Courses.Create, d.Gate.RequireAuth)
	admin.PUT("/courses/:courseId", d.Courses.Update, d.Gate.RequireAuth)
	admin.DELETE("/courses/:courseId", d.Courses.Delete, d.Gate.RequireAuth)
}
