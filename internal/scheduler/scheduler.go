package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-gateway/internal/store"
)

// Janitor periodically sweeps expired entries out of the cache store.
// Expiration is otherwise lazy, so keys that are never read again would
// occupy memory until capacity pressure evicts them.
type Janitor struct {
	scheduler *gocron.Scheduler
	store     *store.MemoryStore
	interval  time.Duration
}

// New creates a Janitor sweeping the given store at the given interval.
func New(st *store.MemoryStore, interval time.Duration) *Janitor {
	s := gocron.NewScheduler(time.UTC)
	return &Janitor{
		scheduler: s,
		store:     st,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (j *Janitor) Start() error {
	interval := j.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := j.scheduler.Every(interval).Do(func() {
		if n := j.store.SweepExpired(); n > 0 {
			log.Printf("cache janitor: evicted %d expired entries", n)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
