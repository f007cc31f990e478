package countdown

import (
	"sync"
	"time"
)

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TickerScheduler fires callbacks from a time.Ticker. Each tick is handed to
// post, which lets the caller run it on its own goroutine.
type TickerScheduler struct {
	post func(func())
}

func NewTickerScheduler(post func(func())) *TickerScheduler {
	return &TickerScheduler{post: post}
}

func (s *TickerScheduler) Every(d time.Duration, fn func()) func() {
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				s.post(fn)
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}
