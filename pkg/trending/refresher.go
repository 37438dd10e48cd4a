package trending

import (
	"context"
	"time"
)

// Refresher periodically rebuilds a trending cache in the background.
type Refresher struct {
	svc      *Service
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// DefaultRefreshInterval is how often trending scores rebuild when
// callers do not pick an interval.
const DefaultRefreshInterval = 30 * time.Minute

// NewRefresher wraps a service with a refresh loop. A non-positive
// interval falls back to DefaultRefreshInterval.
func NewRefresher(svc *Service, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{svc: svc, interval: interval}
}

// Start refreshes once immediately, then on every tick until the
// context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		r.svc.Refresh(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.svc.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
