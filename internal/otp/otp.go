// Package otp issues one-time verification codes: generate, email, persist.
package otp

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/coursify/coursify/internal/apperr"
	"github.com/coursify/coursify/internal/logging"
	"github.com/coursify/coursify/internal/mail"
	"github.com/coursify/coursify/internal/repo"
)

const mailSubject = "Verification Code"

type Issuer struct {
	Pending *repo.PendingRepo
	Mail    mail.Sender
}

// Issue sends exactly one verification email and, only if that succeeds,
// writes exactly one pending row. A pending row that already exists for the
// same email or username makes the write fail and that failure propagates;
// an in-flight verification is never silently replaced.
func (i *Issuer) Issue(ctx context.Context, email, username, passwordHash string) error {
	l := logging.FromContext(ctx).With("svc", "otp.issue")

	code, err := generateCode()
	if err != nil {
		return apperr.Internal(err)
	}

	body, err := renderOTPEmail(code)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := i.Mail.Send(ctx, email, mailSubject, body); err != nil {
		l.Error("otp_mail_failed", "email", email, "error", err)
		return apperr.Delivery(err)
	}

	if err := i.Pending.Create(ctx, email, username, passwordHash, code); err != nil {
		l.Error("otp_store_failed", "email", email, "error", err)
		return apperr.Persistence(err)
	}

	return nil
}

// generateCode returns a uniform random 6-digit decimal string. Collisions
// across concurrent signups are fine, each email has its own slot.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
