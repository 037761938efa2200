package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Renderer produces the report artifacts.
type Renderer interface {
	RenderAll() error
}

// Scheduler periodically re-renders the report artifacts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	renderer  Renderer
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, renderer Renderer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		renderer:  renderer,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens one interval after Start; render once beforehand
// if artifacts are needed immediately.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running report export job")
	if err := s.renderer.RenderAll(); err != nil {
		log.Printf("scheduler: report export failed: %v", err)
		return
	}
	log.Println("scheduler: completed report export job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Jobs reports how many jobs are scheduled.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}
