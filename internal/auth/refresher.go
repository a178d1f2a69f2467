package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher refreshes the stored token on a cron schedule so that it is
// rarely expired when a tool call needs it.
type Refresher struct {
	cron     *cron.Cron
	provider *FileProvider
	logger   *slog.Logger
}

// NewRefresher validates schedule ("@every 30m", "0 * * * *", ...).
func NewRefresher(schedule string, provider *FileProvider, logger *slog.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:     cron.New(),
		provider: provider,
		logger:   logger,
	}
	if _, err := r.cron.AddFunc(schedule, func() { r.run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) run(ctx context.Context) {
	err := r.provider.Refresh(ctx)
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		r.logger.Debug("token refresh skipped, no stored credential")
	case err != nil:
		r.logger.Error("token refresh failed", "err", err)
	default:
		r.logger.Info("token refreshed")
	}
}

func (r *Refresher) Start() { r.cron.Start() }

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
