package loader

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	errs "github.com/matzehuels/neoscope/pkg/errors"
)

// Scheduler re-runs a Runner on a cron schedule. Each run fetches fresh data
// (Refresh is forced) and swaps it into the runner's store.
type Scheduler struct {
	runner *Runner
	opts   Options
	cron   *cron.Cron

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler validates spec (standard five-field cron or a descriptor
// such as "@every 6h") and prepares a scheduler. It does not start it.
func NewScheduler(r *Runner, spec string, opts Options) (*Scheduler, error) {
	opts.Refresh = true
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		runner: r,
		opts:   opts,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid refresh schedule %q", spec)
	}
	return s, nil
}

// Start begins scheduled runs. Runs use ctx and stop when it is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()
	s.cron.Start()
}

// Stop cancels any in-flight run and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	<-s.cron.Stop().Done()
}

// RunNow triggers one load outside the schedule and returns its result.
func (s *Scheduler) RunNow(ctx context.Context) (*Result, error) {
	return s.runner.Load(ctx, s.opts)
}

func (s *Scheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	// Errors are logged and recorded on the store by the runner.
	_, _ = s.runner.Load(ctx, s.opts)
}
