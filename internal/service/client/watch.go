package client

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/alarm-desk/internal/logger"
)

// DefaultWatchInterval is the refresh period of the watch command.
const DefaultWatchInterval = 5 * time.Second

// Watch renders the list right away and again every interval until the context is cancelled.
// Failed refreshes are logged and retried on the next tick.
func (s *Session) Watch(ctx context.Context, opts *ListOptions, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	// Bad view flags will not get better on the next tick.
	if _, err := BuildState(opts); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Watching alarms", "interval", interval.String())

	s.refresh(ctx, opts)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case now := <-ticker.C:
			fmt.Fprintf(s.out, "\n--- %s ---\n", now.Local().Format(timeLayout))
			s.refresh(ctx, opts)
		}
	}
}

func (s *Session) refresh(ctx context.Context, opts *ListOptions) {
	if err := s.List(ctx, opts); err != nil {
		logger.ErrorKV(ctx, "Refresh failed", "error", err)
	}
}
