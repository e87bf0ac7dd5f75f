package service

import (
	"context"
	"time"

	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/logger"
)

// DefaultRefreshLead is how long before expiry the refresh job renews a
// token.
const DefaultRefreshLead = 2 * time.Minute

// TokenRefreshJob renews the stored token shortly before it expires so that
// foreground calls rarely have to wait for a refresh.
type TokenRefreshJob struct {
	tokens   TokenManager
	clock    clock.Clock
	interval time.Duration
	lead     time.Duration
	logger   *logger.Logger
}

// NewTokenRefreshJob creates a job that checks the token every interval. If
// interval is zero or negative it defaults to one minute.
func NewTokenRefreshJob(tokens TokenManager, clk clock.Clock, interval time.Duration, log *logger.Logger) *TokenRefreshJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &TokenRefreshJob{
		tokens:   tokens,
		clock:    clk,
		interval: interval,
		lead:     DefaultRefreshLead,
		logger:   log,
	}
}

// Run checks the token on every tick until ctx is cancelled.
func (j *TokenRefreshJob) Run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := j.Tick(ctx); err != nil {
				j.logger.Warn().Err(err).Str("func", "TokenRefreshJob.Run").Msg("proactive token refresh failed")
			}
		}
	}
}

// Tick renews the token when it is refreshable and expires within the lead
// time.
func (j *TokenRefreshJob) Tick(ctx context.Context) error {
	token, err := j.tokens.GetToken(ctx, false, false)
	if err != nil || token == nil || !token.Refreshable() {
		return err
	}

	if j.clock.Now().Add(j.lead).Before(token.ExpiresAt()) {
		return nil
	}

	_, err = j.tokens.GetToken(ctx, true, true)
	return err
}
