package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(accessTTL, refreshTTL time.Duration) *Service {
	return NewService([]byte("access-secret"), []byte("refresh-secret"), accessTTL, refreshTTL)
}

func TestMintAndVerifyRoundtrip(t *testing.T) {
	svc := newTestService(15*time.Minute, 30*24*time.Hour)
	id := uuid.New()

	pair, err := svc.Mint(id, "user")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, id.String(), access.Subject)
	require.Equal(t, "user", access.Role)

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, id.String(), refresh.Subject)
	require.Equal(t, "user", refresh.Role)
}

func TestKindsDoNotCrossVerify(t *testing.T) {
	svc := newTestService(15*time.Minute, 30*24*time.Hour)
	pair, err := svc.Mint(uuid.New(), "user")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalid)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestExpiredDistinctFromInvalid(t *testing.T) {
	expired := newTestService(-time.Second, -time.Second)
	pair, err := expired.Mint(uuid.New(), "user")
	require.NoError(t, err)

	_, err = expired.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpired)
	require.NotErrorIs(t, err, ErrInvalid)

	_, err = expired.VerifyRefresh(pair.RefreshToken)
	require.ErrorIs(t, err, ErrExpired)

	_, err = expired.VerifyAccess("garbage")
	require.ErrorIs(t, err, ErrInvalid)
	require.NotErrorIs(t, err, ErrExpired)
}

func TestWrongSecretIsInvalid(t *testing.T) {
	svc := newTestService(15*time.Minute, 30*24*time.Hour)
	other := NewService([]byte("other-access"), []byte("other-refresh"), 15*time.Minute, time.Hour)

	pair, err := other.Mint(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalid)
}
