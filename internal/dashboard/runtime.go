package dashboard

import (
	"context"
	"time"
)

// Runtime ties the loop, the dashboard and the poller together.
type Runtime struct {
	Loop      *Loop
	Dashboard *Dashboard
	Poller    *Poller
	Interval  time.Duration
}

// Run blocks until ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = PollInterval
	}
	go r.Poller.Run(ctx, r.Loop, interval)
	return r.Loop.Run(ctx)
}

// Resize schedules a redraw of the last snapshot at the new canvas sizes.
func (r *Runtime) Resize() {
	r.Loop.Post(r.Dashboard.Resize)
}
