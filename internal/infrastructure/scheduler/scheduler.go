// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stationery/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultJobTimeout bounds a single job run when no timeout is configured
const DefaultJobTimeout = 2 * time.Minute

var (
	// ErrSchedulerNotRunning is returned when triggering a job on a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	// ErrJobNotFound is returned for an unknown job name
	ErrJobNotFound = errors.New("job not found")
	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("job already registered")
)

// JobFunc is the work done on each tick
type JobFunc func(ctx context.Context) error

// Config holds scheduler settings
type Config struct {
	JobTimeout time.Duration
}

type job struct {
	name    string
	spec    string
	entryID cron.EntryID
	run     func()
}

// Scheduler wraps a cron runner. A run that is still in progress when its next
// tick fires is skipped rather than stacked.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	jobs    map[string]*job
	running bool
	baseCtx context.Context
	cancel  context.CancelFunc
}

// New creates a scheduler. Specs use the standard five-field cron syntax or descriptors such as "@every 5m".
func New(cfg Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}
	cl := cronLogger{logger: logger.Named("cron")}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: cfg.JobTimeout,
		logger:  logger,
		jobs:    make(map[string]*job),
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Register adds a named job on a cron spec
func (s *Scheduler) Register(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	j := &job{name: name, spec: spec}
	j.run = func() { s.execute(name, fn) }

	id, err := s.cron.AddFunc(spec, j.run)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	j.entryID = id
	s.jobs[name] = j
	s.logger.Info("Job registered", zap.String("job", name), zap.String("schedule", spec))
	return nil
}

// Start begins firing jobs on their schedules
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop cancels in-flight runs and waits for them to return or for ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// RunNow runs a registered job immediately on the calling goroutine
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	running := s.running
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if !running {
		return ErrSchedulerNotRunning
	}
	j.run()
	return nil
}

// NextRun returns when a job fires next; zero before Start
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.cron.Entry(j.entryID).Next, nil
}

func (s *Scheduler) execute(name string, fn JobFunc) {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.timeout)
	defer cancel()

	ctx, span := telemetry.StartSpan(ctx, "scheduler."+name)
	defer span.End()

	start := time.Now()
	if err := fn(ctx); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Job failed",
			zap.String("job", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	telemetry.SetOK(span)
	s.logger.Debug("Job completed", zap.String("job", name), zap.Duration("duration", time.Since(start)))
}

// cronLogger adapts zap to cron's logging interface
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
