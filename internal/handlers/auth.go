package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursify/coursify/internal/apperr"
	"github.com/coursify/coursify/internal/auth"
	"github.com/coursify/coursify/internal/events"
	"github.com/coursify/coursify/internal/logging"
)

// AuthHandler adapts one variant's auth.Service to HTTP. The same handler
// type serves /users and /admin; only the injected service differs.
type AuthHandler struct {
	Svc    *auth.Service
	Events *events.Producer
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid input format")
	}

	if err := h.Svc.Signup(ctx, req.Username, req.Password, req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Verification email sent successfully",
	})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid input format")
	}

	p, sess, err := h.Svc.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		return err
	}

	c.SetCookie(refreshCookie(sess.RefreshToken, sess.RefreshExpiresAt))
	h.publish(c, "user_registered", p.ID.String(), echo.Map{
		"type":     "user_registered",
		"id":       p.ID,
		"username": p.Username,
		"role":     h.Svc.Role,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     h.Svc.Label + " created successfully",
		"accessToken": sess.AccessToken,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid input format")
	}

	p, sess, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(refreshCookie(sess.RefreshToken, sess.RefreshExpiresAt))
	h.publish(c, "user_logged_in", p.ID.String(), echo.Map{
		"type":     "user_logged_in",
		"id":       p.ID,
		"username": p.Username,
		"role":     h.Svc.Role,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Logged in successfully",
		"accessToken": sess.AccessToken,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return apperr.NoToken()
	}

	sess, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		return err
	}

	c.SetCookie(refreshCookie(sess.RefreshToken, sess.RefreshExpiresAt))
	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": sess.AccessToken,
	})
}

// Logout always succeeds: the cookie is cleared no matter what, and a
// revocation that finds nothing to revoke is still a logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			logging.FromContext(ctx).Error("logout_revoke_failed", "error", err)
		}
	}

	c.SetCookie(deleteRefreshCookie())
	return c.JSON(http.StatusOK, echo.Map{
		"message": h.Svc.Label + " logged out successfully",
	})
}

func (h *AuthHandler) publish(c echo.Context, kind, key string, event echo.Map) {
	ctx := c.Request().Context()
	if err := h.Events.Publish(ctx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", kind, "error", err)
	}
}
