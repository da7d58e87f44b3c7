package lwp

import (
	"github.com/jgonzo24/lwp/lwp/lwplog"
	"github.com/jgonzo24/lwp/lwp/sched"
)

// runtimeOptions holds configuration resolved at Runtime construction.
type runtimeOptions struct {
	defaultStackSize int
	scheduler        sched.Scheduler
	logger           lwplog.Logger
	metricsEnabled   bool
}

// Option configures a Runtime at construction time.
type Option interface {
	applyRuntime(*runtimeOptions) error
}

type runtimeOptionImpl struct {
	applyRuntimeFunc func(*runtimeOptions) error
}

func (o *runtimeOptionImpl) applyRuntime(opts *runtimeOptions) error {
	return o.applyRuntimeFunc(opts)
}

// WithDefaultStackSize sets the advisory stack size (in bytes) used by
// Create when its own hint is 0. The stack provisioner still enforces the
// process rlimit and the 8 MiB floor regardless of this value.
func WithDefaultStackSize(size int) Option {
	return &runtimeOptionImpl{func(opts *runtimeOptions) error {
		opts.defaultStackSize = size
		return nil
	}}
}

// WithScheduler installs s as the initial active scheduler, in place of
// the default round robin.
func WithScheduler(s sched.Scheduler) Option {
	return &runtimeOptionImpl{func(opts *runtimeOptions) error {
		opts.scheduler = s
		return nil
	}}
}

// WithLogger attaches a logger the runtime reports lifecycle and
// scheduling events to. Unset, the runtime logs nothing (lwplog.NoOp),
// matching spec.md §7's "nothing is logged from the core" for the
// zero-configuration case.
func WithLogger(l lwplog.Logger) Option {
	return &runtimeOptionImpl{func(opts *runtimeOptions) error {
		opts.logger = l
		return nil
	}}
}

// WithMetrics enables the lightweight ready/zombie/blocked counters
// exposed via Runtime.Metrics; Metrics returns the zero value while this
// is unset, rather than computing a snapshot nobody asked for.
func WithMetrics(enabled bool) Option {
	return &runtimeOptionImpl{func(opts *runtimeOptions) error {
		opts.metricsEnabled = enabled
		return nil
	}}
}

// resolveOptions applies opts over a zero-valued runtimeOptions, filling
// in defaults for anything left unset.
func resolveOptions(opts []Option) (*runtimeOptions, error) {
	cfg := &runtimeOptions{
		defaultStackSize: stackDefaultHint,
		logger:           lwplog.NoOp{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.scheduler == nil {
		cfg.scheduler = sched.NewRoundRobin()
	}
	return cfg, nil
}
