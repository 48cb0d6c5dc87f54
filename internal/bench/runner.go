package bench

import (
	"context"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/ydb-platform/decimal-bench/internal/dataset"
	"github.com/ydb-platform/decimal-bench/internal/xerrors"
)

// defaultChunk bounds the amount of calls between two clock reads.
const defaultChunk = 1024

type Options struct {
	WarmupIterations      int
	WarmupTime            time.Duration
	MeasurementIterations int
	MeasurementTime       time.Duration
}

// IterationResult is the outcome of one timed iteration.
type IterationResult struct {
	Ops     int64
	Elapsed time.Duration
}

// Score is the average time per call in nanoseconds.
func (r IterationResult) Score() float64 {
	if r.Ops == 0 {
		return 0
	}

	return float64(r.Elapsed) / float64(r.Ops)
}

// Result holds the measurement iterations of one scenario. Warmup iterations are
// not kept.
type Result struct {
	Name       string
	Iterations []IterationResult
}

// Mean is the mean iteration score in nanoseconds per call.
func (r Result) Mean() float64 {
	if len(r.Iterations) == 0 {
		return 0
	}
	var sum float64
	for _, it := range r.Iterations {
		sum += it.Score()
	}

	return sum / float64(len(r.Iterations))
}

type Runner struct {
	opts   Options
	clock  clockwork.Clock
	logger *zap.Logger
	chunk  int
}

type runnerOption func(r *Runner)

func WithClock(clock clockwork.Clock) runnerOption {
	return func(r *Runner) {
		r.clock = clock
	}
}

func WithLogger(logger *zap.Logger) runnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

func withChunk(n int) runnerOption {
	return func(r *Runner) {
		r.chunk = n
	}
}

func NewRunner(opts Options, runnerOpts ...runnerOption) *Runner {
	r := &Runner{
		opts:   opts,
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
		chunk:  defaultChunk,
	}
	for _, opt := range runnerOpts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Run measures scenarios one after another against ds. Every scenario gets its own
// harness, so the working index and result slots are never shared.
func (r *Runner) Run(ctx context.Context, ds *dataset.Dataset, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		res, err := r.RunScenario(ctx, s, NewHarness(ds))
		if err != nil {
			return results, xerrors.WithStackTrace(err)
		}
		results = append(results, res)
	}

	return results, nil
}

// RunScenario performs the trial setup, then the warmup and measurement iterations of s.
func (r *Runner) RunScenario(ctx context.Context, s Scenario, h *Harness) (Result, error) {
	h.reset()

	logger := r.logger.With(zap.String("scenario", s.Name))
	logger.Info("scenario started",
		zap.Stringer("setup", s.Setup),
		zap.Int("warmup", r.opts.WarmupIterations),
		zap.Int("iterations", r.opts.MeasurementIterations),
	)

	for i := 0; i < r.opts.WarmupIterations; i++ {
		it, err := r.iteration(ctx, s, h, r.opts.WarmupTime, 0)
		if err != nil {
			return Result{}, xerrors.WithStackTrace(err)
		}
		logger.Debug("warmup iteration",
			zap.Int("iteration", i+1),
			zap.Int64("ops", it.Ops),
			zap.Float64("ns/op", it.Score()),
		)
	}

	res := Result{
		Name:       s.Name,
		Iterations: make([]IterationResult, 0, r.opts.MeasurementIterations),
	}
	for i := 0; i < r.opts.MeasurementIterations; i++ {
		it, err := r.iteration(ctx, s, h, r.opts.MeasurementTime, 0)
		if err != nil {
			return Result{}, xerrors.WithStackTrace(err)
		}
		logger.Debug("measurement iteration",
			zap.Int("iteration", i+1),
			zap.Int64("ops", it.Ops),
			zap.Float64("ns/op", it.Score()),
		)
		res.Iterations = append(res.Iterations, it)
	}

	logger.Info("scenario done",
		zap.Float64("ns/op", res.Mean()),
		zap.Uint64("consumed", h.sink.Count()),
	)

	return res, nil
}

// invoke performs exactly n timed calls of s on h without the trial setup.
func (r *Runner) invoke(ctx context.Context, s Scenario, h *Harness, n int64) (IterationResult, error) {
	return r.iteration(ctx, s, h, time.Duration(math.MaxInt64), n)
}

// iteration calls s until budget is spent, or until limit calls are made when limit
// is positive. Calls run in chunks that never cross an index wrap, so invocation setup
// happens between chunks and outside the timed region.
func (r *Runner) iteration(
	ctx context.Context, s Scenario, h *Harness, budget time.Duration, limit int64,
) (it IterationResult, _ error) {
	for it.Elapsed < budget && (limit <= 0 || it.Ops < limit) {
		if err := ctx.Err(); err != nil {
			return it, xerrors.WithStackTrace(err)
		}

		if s.Setup == SetupInvocation {
			h.setupInvocation()
		}

		n := min(r.chunk, h.untilWrap())
		if limit > 0 && int64(n) > limit-it.Ops {
			n = int(limit - it.Ops)
		}

		start := r.clock.Now()
		for range n {
			s.Call(h)
		}
		it.Elapsed += r.clock.Since(start)
		it.Ops += int64(n)

		if err := h.sink.Err(); err != nil {
			return it, xerrors.WithStackTrace(err)
		}
	}

	return it, nil
}
