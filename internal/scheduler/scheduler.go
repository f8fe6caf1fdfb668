package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron"

	"fittrack-go/pkg/logger"
)

// Scheduler runs periodic maintenance jobs in UTC.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

func New(log logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.NewWithLocation(time.UTC),
		log:  log,
	}
}

// Add registers job under spec (six-field cron syntax or a descriptor such
// as "@midnight"). A panicking job is logged and does not stop the scheduler.
func (s *Scheduler) Add(name, spec string, job func()) error {
	err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				s.log.InternalError("scheduler: job panicked", fmt.Errorf("%v", r), "job", name)
			}
		}()
		job()
		s.log.Debug("scheduler: job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler: started", "jobs", len(s.cron.Entries()))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
