package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Principal is a credential-store row independent of variant. PasswordHash
// and RefreshToken are only populated by the reads that need them.
type Principal struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	RefreshToken string
}

// Store is the capability a credential store must offer. One implementation
// exists per principal variant; the orchestrator never knows which table it
// is talking to.
type Store interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Create returns ErrDuplicate on a username/email collision. The store's
	// uniqueness constraint, not the Exists pre-check, is the real guard.
	Create(ctx context.Context, username, email, passwordHash string) (*Principal, error)
	// FindForLogin matches the argument against username or email and
	// includes the password hash. Returns ErrNotFound on a miss.
	FindForLogin(ctx context.Context, usernameOrEmail string) (*Principal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Principal, error)
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	// ClearRefreshToken nulls the token on whichever row holds exactly this
	// value. No match is not an error.
	ClearRefreshToken(ctx context.Context, token string) error
}

type PendingRecord struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Code         string
}

// PendingStore reads and consumes pending verifications. FindValid must not
// return rows older than the verification window even if they have not been
// swept yet.
type PendingStore interface {
	FindValid(ctx context.Context, email, code string) (*PendingRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Issuer is the OTP capability: render, email and persist one code.
type Issuer interface {
	Issue(ctx context.Context, email, username, passwordHash string) error
}
