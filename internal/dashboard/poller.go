package dashboard

import (
	"context"
	"log"
	"time"

	"riskboard/internal/risk"
)

// PollInterval is how often the data document is fetched.
const PollInterval = 60 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context) (*risk.Snapshot, error)
}

// Renderer is the part of Dashboard the poller drives.
type Renderer interface {
	Render(s *risk.Snapshot)
	Last() *risk.Snapshot
}

// ChangeListener is told about every snapshot the poller renders. prev is nil
// for the first one.
type ChangeListener interface {
	SnapshotChanged(prev, cur *risk.Snapshot)
}

type Poller struct {
	fetcher   Fetcher
	renderer  Renderer
	listeners []ChangeListener
}

func NewPoller(f Fetcher, r Renderer, listeners ...ChangeListener) *Poller {
	return &Poller{fetcher: f, renderer: r, listeners: listeners}
}

// Initial fetches once and renders whatever came back, even nothing.
func (p *Poller) Initial(ctx context.Context) {
	p.apply(p.fetch(ctx), true)
}

// Refresh fetches and renders only when the document changed.
func (p *Poller) Refresh(ctx context.Context) {
	p.apply(p.fetch(ctx), false)
}

// Run performs the initial fetch and then polls every interval. Fetches run
// off the loop and post their results to it; a slow fetch may land after a
// newer one.
func (p *Poller) Run(ctx context.Context, loop *Loop, interval time.Duration) {
	start := func(initial bool) {
		go func() {
			s := p.fetch(ctx)
			loop.Post(func() { p.apply(s, initial) })
		}()
	}
	start(true)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			start(false)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) *risk.Snapshot {
	s, err := p.fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("poller: fetch failed: %v", err)
		return nil
	}
	return s
}

func (p *Poller) apply(s *risk.Snapshot, initial bool) {
	prev := p.renderer.Last()
	if !initial && (s == nil || s.Equal(prev)) {
		return
	}
	p.renderer.Render(s)
	if s == nil {
		return
	}
	log.Printf("poller: rendered snapshot last_updated=%s", s.LastUpdated)
	for _, l := range p.listeners {
		l.SnapshotChanged(prev, s)
	}
}
