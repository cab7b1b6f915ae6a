package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/coursify/coursify/internal/tokens"
)

func gateCall(t *testing.T, gate *Gate, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, gate.RequireAuth(next)(c)
}

func TestGateRejectsMissingOrMalformedHeader(t *testing.T) {
	svc := tokens.NewService([]byte("a"), []byte("r"), time.Minute, time.Hour)
	gate := NewGate(svc)

	for _, header := range []string{"", "Basic abc", "bearer lowercase"} {
		_, err := gateCall(t, gate, header)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, he.Code)
		require.Equal(t, "Unauthorized: No token provided", he.Message)
	}
}

func TestGateDistinguishesExpiredFromInvalid(t *testing.T) {
	svc := tokens.NewService([]byte("a"), []byte("r"), time.Minute, time.Hour)
	gate := NewGate(svc)

	expiredSvc := tokens.NewService([]byte("a"), []byte("r"), -time.Minute, time.Hour)
	pair, err := expiredSvc.Mint(uuid.New(), "user")
	require.NoError(t, err)

	_, errExpired := gateCall(t, gate, "Bearer "+pair.AccessToken)
	he, ok := errExpired.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "Unauthorized: Access token has expired", he.Message)

	_, errInvalid := gateCall(t, gate, "Bearer garbage")
	he, ok = errInvalid.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "Unauthorized: Invalid token", he.Message)
}

func TestGateInjectsPrincipal(t *testing.T) {
	svc := tokens.NewService([]byte("a"), []byte("r"), time.Minute, time.Hour)
	gate := NewGate(svc)

	id := uuid.New()
	pair, err := svc.Mint(id, "admin")
	require.NoError(t, err)

	c, callErr := gateCall(t, gate, "Bearer "+pair.AccessToken)
	require.NoError(t, callErr)
	require.Equal(t, id, c.Get("userID"))
	require.Equal(t, "admin", c.Get("role"))
}
