package backup

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/Yassen717/ModBlog/internal/logger"
)

// Runner produces one backup.
type Runner interface {
	Run(ctx context.Context) (Result, error)
}

// Scheduler runs backups on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler validates spec, a standard five-field cron expression.
func NewScheduler(spec string, runner Runner) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := runner.Run(context.Background()); err != nil {
			logger.Error("Scheduled backup failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start begins firing in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running backup to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
