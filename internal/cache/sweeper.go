package cache

import "time"

// Purger drops stale entries and reports how many were removed.
type Purger interface {
	Purge() int
}

// Sweeper periodically purges the caches registered with it, so entries that
// are never read again still leave memory.
type Sweeper struct {
	targets []Purger
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewSweeper() *Sweeper {
	return &Sweeper{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Track registers a cache for sweeping. Must not be called after Run.
func (s *Sweeper) Track(p Purger) {
	s.targets = append(s.targets, p)
}

// Run starts the sweep loop in its own goroutine.
func (s *Sweeper) Run(interval time.Duration) {
	s.started = true
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				for _, p := range s.targets {
					p.Purge()
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the sweep loop and waits for it to exit. A Sweeper that never
// ran stops immediately.
func (s *Sweeper) Stop() {
	if !s.started {
		return
	}
	close(s.stop)
	<-s.done
}
