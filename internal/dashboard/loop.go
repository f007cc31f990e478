package dashboard

import "context"

// Loop runs posted tasks one at a time on a single goroutine. Rendering,
// countdown ticks and resize handling all go through it.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

func NewLoop() *Loop {
	return &Loop{tasks: make(chan func(), 64), done: make(chan struct{})}
}

// Post queues fn. It is dropped once the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Run executes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}
