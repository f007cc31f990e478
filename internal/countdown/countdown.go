// Package countdown shows the time left until the next expected data refresh.
package countdown

import (
	"fmt"
	"log"
	"time"

	"riskboard/internal/risk"
	"riskboard/internal/surface"
)

// Cadence is the expected backend publish period plus a safety margin.
const Cadence = 13 * time.Minute

const (
	tickInterval = time.Second
	idleDisplay  = "--:--"
)

type Clock interface {
	Now() time.Time
}

// Scheduler runs fn every d until the returned stop func is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// Countdown drives the countdown region. At most one tick schedule is live.
// Not safe for concurrent use; call it from the render loop.
type Countdown struct {
	surfaces surface.Set
	clock    Clock
	sched    Scheduler

	next time.Time
	stop func()
	// gen invalidates ticks already queued by a cancelled schedule.
	gen uint64
}

func New(surfaces surface.Set, clock Clock, sched Scheduler) *Countdown {
	return &Countdown{surfaces: surfaces, clock: clock, sched: sched}
}

// Start cancels any running schedule and restarts from lastUpdated. An empty
// or unparseable timestamp leaves the countdown idle.
func (c *Countdown) Start(lastUpdated string) {
	c.Stop()
	if lastUpdated == "" {
		c.surfaces.SetText(surface.Countdown, idleDisplay)
		return
	}
	t, err := risk.ParseTimestamp(lastUpdated)
	if err != nil {
		log.Printf("countdown: bad last_updated %q: %v", lastUpdated, err)
		c.surfaces.SetText(surface.Countdown, idleDisplay)
		return
	}
	c.next = t.Add(Cadence)
	c.tick()
	gen := c.gen
	c.stop = c.sched.Every(tickInterval, func() {
		if c.gen == gen {
			c.tick()
		}
	})
}

// Stop cancels the active schedule, if any.
func (c *Countdown) Stop() {
	c.gen++
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// Active reports whether a tick schedule is installed.
func (c *Countdown) Active() bool { return c.stop != nil }

// Next returns the expected time of the next update, zero when idle.
func (c *Countdown) Next() time.Time {
	if c.stop == nil {
		return time.Time{}
	}
	return c.next
}

func (c *Countdown) tick() {
	c.surfaces.SetText(surface.Countdown, Format(c.next.Sub(c.clock.Now())))
}

// Format renders remaining time as zero-padded mm:ss, "00:00" once due.
func Format(remaining time.Duration) string {
	if remaining <= 0 {
		return "00:00"
	}
	secs := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
