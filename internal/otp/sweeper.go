package otp

import (
	"context"
	"time"

	"github.com/coursify/coursify/internal/logging"
	"github.com/coursify/coursify/internal/repo"
)

// Sweeper deletes pending verifications past their window. Postgres has no
// native TTL index, so expiry is a periodic sweep; lookups filter on age as
// well, which keeps the cutoff exact between sweeps.
type Sweeper struct {
	Pending  *repo.PendingRepo
	Interval time.Duration
}

func (s *Sweeper) Run(ctx context.Context) {
	l := logging.FromContext(ctx).With("svc", "otp.sweeper")
	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Pending.DeleteExpired(ctx)
			if err != nil {
				l.Error("sweep_failed", "error", err)
				continue
			}
			if n > 0 {
				l.Info("expired verifications purged", "count", n)
			}
		}
	}
}
