// Package schedule runs the expiry sweep on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/usecase/sweep"
)

// SweepRunner is the sweep entry point driven by the scheduler.
type SweepRunner interface {
	RunAll(ctx context.Context, in *sweep.RunAllInput) (*sweep.RunAllOutput, error)
}

// Scheduler triggers RunAll over a fixed environment list. Overlapping
// triggers are skipped while a sweep is still running.
type Scheduler struct {
	cron         *cron.Cron
	runner       SweepRunner
	environments []string

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New parses spec (standard 5-field cron, UTC) and prepares a scheduler.
func New(ctx context.Context, spec string, environments []string, runner SweepRunner) (*Scheduler, error) {
	if len(environments) == 0 {
		return nil, fmt.Errorf("schedule: no environments to sweep")
	}
	logger := cronLogger{ctx: ctx, l: logging.FromContext(ctx)}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		runner:       runner,
		environments: append([]string(nil), environments...),
	}
	if _, err := s.cron.AddFunc(spec, s.trigger); err != nil {
		return nil, fmt.Errorf("schedule: parse %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in the background until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()
	s.cron.Start()
	logging.FromContext(ctx).Info(ctx, "sweep scheduler started", "environments", s.environments, "next", s.Next())
}

// Stop halts the scheduler, cancels an in-flight sweep and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	<-s.cron.Stop().Done()
}

// Next returns the next trigger time in RFC 3339, or "" when not scheduled.
func (s *Scheduler) Next() string {
	entries := s.cron.Entries()
	if len(entries) == 0 || entries[0].Next.IsZero() {
		return ""
	}
	return entries[0].Next.Format("2006-01-02T15:04:05Z07:00")
}

// RunOnce sweeps every configured environment now.
func (s *Scheduler) RunOnce(ctx context.Context) (out *sweep.RunAllOutput, err error) {
	ctx, end := logging.Span(ctx, "CRON", "sweep", "environments", s.environments)
	defer func() { end(err) }()
	return s.runner.RunAll(ctx, &sweep.RunAllInput{Environments: s.environments})
}

func (s *Scheduler) trigger() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := s.RunOnce(ctx); err != nil {
		logging.FromContext(ctx).Warn(ctx, "scheduled sweep finished with errors", "err", err)
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug(c.ctx, "cron: "+msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error(c.ctx, "cron: "+msg, append(kv, "err", err)...)
}
