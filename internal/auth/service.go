// Package auth implements the session lifecycle: signup with email OTP,
// verification, credential login, refresh-token rotation and logout. One
// Service instance is built per principal variant (user, admin); the variant
// only shows through the injected Store, the role claim and the label used
// in client-facing messages.
package auth

import (
	"context"
	"errors"
	nmail "net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coursify/coursify/internal/apperr"
	"github.com/coursify/coursify/internal/hash"
	"github.com/coursify/coursify/internal/logging"
	"github.com/coursify/coursify/internal/tokens"
)

type Session struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Service struct {
	Store   Store
	Pending PendingStore
	OTP     Issuer
	Tokens  *tokens.Service
	Role    string // claim value: "user" or "admin"
	Label   string // client-facing: "User" or "Admin"
}

// Signup validates the request, checks for an existing principal and hands
// off to the OTP issuer. No principal is created here; that only happens in
// Verify.
func (s *Service) Signup(ctx context.Context, username, password, email string) error {
	l := logging.FromContext(ctx).With("svc", s.Role+".signup")

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if len(username) < 3 || len(password) < 6 {
		return apperr.Validation("Invalid input format")
	}
	if _, err := nmail.ParseAddress(email); err != nil {
		return apperr.Validation("Invalid input format")
	}

	exists, err := s.Store.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return apperr.Persistence(err)
	}
	if exists {
		return apperr.Conflict(s.Label + " with this username or email already exists")
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.OTP.Issue(ctx, email, username, hashed); err != nil {
		return err
	}

	l.Info("verification_email_sent", "email", email)
	return nil
}

// Verify consumes the pending record matching (email, code) and promotes it
// into a permanent principal, then opens a session. A wrong code and an
// expired one are indistinguishable here and must stay that way.
func (s *Service) Verify(ctx context.Context, email, code string) (*Principal, *Session, error) {
	l := logging.FromContext(ctx).With("svc", s.Role+".verify")

	rec, err := s.Pending.FindValid(ctx, strings.TrimSpace(email), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, apperr.InvalidOTP()
		}
		return nil, nil, apperr.Persistence(err)
	}

	p, err := s.Store.Create(ctx, rec.Username, rec.Email, rec.PasswordHash)
	if err != nil {
		// Two verify calls racing on the same code, or a duplicate signup
		// that slipped past the advisory check. The unique index is the
		// arbiter.
		if errors.Is(err, ErrDuplicate) {
			return nil, nil, apperr.Conflict(s.Label + " with this username or email already exists")
		}
		return nil, nil, apperr.Persistence(err)
	}

	if err := s.Pending.Delete(ctx, rec.ID); err != nil {
		// The principal already exists; a leftover pending row is reaped by
		// the sweeper, so this is not worth failing the request over.
		l.Warn("pending_delete_failed", "email", rec.Email, "error", err)
	}

	sess, err := s.issueSession(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	l.Info("principal_created", "id", p.ID)
	return p, sess, nil
}

// Login checks credentials and opens a session. Unknown identity and wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*Principal, *Session, error) {
	l := logging.FromContext(ctx).With("svc", s.Role+".login")

	p, err := s.Store.FindForLogin(ctx, strings.TrimSpace(usernameOrEmail))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, apperr.InvalidCredentials()
		}
		return nil, nil, apperr.Persistence(err)
	}
	if !hash.CheckPassword(p.PasswordHash, password) {
		return nil, nil, apperr.InvalidCredentials()
	}

	sess, err := s.issueSession(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	l.Info("login_successful", "id", p.ID)
	return p, sess, nil
}

// Refresh rotates the whole pair. The presented token must verify AND match
// the single stored value; a previously rotated-out token fails even while
// its signature is still within expiry.
func (s *Service) Refresh(ctx context.Context, raw string) (*Session, error) {
	claims, err := s.Tokens.VerifyRefresh(raw)
	if err != nil {
		return nil, apperr.Forbidden()
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.Forbidden()
	}

	p, err := s.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Forbidden()
		}
		return nil, apperr.Persistence(err)
	}
	if p.RefreshToken == "" || p.RefreshToken != raw {
		return nil, apperr.Forbidden()
	}

	return s.issueSession(ctx, p)
}

// Logout revokes whichever principal holds exactly this refresh token.
// Idempotent: an unknown or already-cleared token is a no-op.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	if err := s.Store.ClearRefreshToken(ctx, raw); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func (s *Service) issueSession(ctx context.Context, p *Principal) (*Session, error) {
	pair, err := s.Tokens.Mint(p.ID, s.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	// Overwriting the stored value is what invalidates the previous session:
	// one active refresh token per principal.
	if err := s.Store.SetRefreshToken(ctx, p.ID, pair.RefreshToken); err != nil {
		return nil, apperr.Persistence(err)
	}
	return &Session{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}
