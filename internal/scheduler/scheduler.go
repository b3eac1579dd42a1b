package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var (
	ErrAlreadyRunning = errors.New("cron service already running")
	ErrNotRunning     = errors.New("cron service not running")
)

type JobFunc func(ctx context.Context, logger *slog.Logger)

var parser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type CronService struct {
	spec     string
	schedule cron.Schedule
	job      JobFunc
	logger   *slog.Logger
	cron     *cron.Cron

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewCronService parses a standard five-field cron spec or a descriptor
// such as "@every 1m". A run that is still going when the next one is due
// is skipped rather than overlapped.
func NewCronService(spec string, loc *time.Location, job JobFunc, logger *slog.Logger) (*CronService, error) {
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}

	cl := cronLogger{logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &CronService{
		spec:     spec,
		schedule: schedule,
		job:      job,
		logger:   logger,
		cron:     c,
	}
	// Registered once; Start and Shutdown only resume and pause the cron.
	c.Schedule(schedule, cron.FuncJob(s.runJob))
	return s, nil
}

// Start runs the schedule and blocks until Shutdown is called.
func (s *CronService) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.ctx = ctx
	s.cancel = cancel
	s.running = true
	s.cron.Start()
	s.mu.Unlock()

	s.logger.Info("cron service started", "schedule", s.spec)

	<-ctx.Done()
	s.logger.Info("cron service stopped")
	return nil
}

func (s *CronService) runJob() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		return
	}

	taskLogger := s.logger.With("task_id", uuid.NewString())
	s.job(ctx, taskLogger)
}

// Shutdown cancels the running job's context and waits up to timeout for
// it to return.
func (s *CronService) Shutdown(timeout time.Duration) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("all jobs finished")
		return nil
	case <-time.After(timeout):
		return errors.New("shutdown timeout: some jobs did not finish")
	}
}

func (s *CronService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun reports when the schedule fires next after t.
func (s *CronService) NextRun(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// cronLogger adapts slog to the logger interface cron expects.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
