// Package pipeline runs the shock-tube batch sequence: configure the gas
// state, step the reactor network, accumulate samples, write the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/md3387/NonIdealReactor/internal/catalog"
	"github.com/md3387/NonIdealReactor/internal/config"
	"github.com/md3387/NonIdealReactor/internal/history"
	"github.com/md3387/NonIdealReactor/internal/kinetics"
	"github.com/md3387/NonIdealReactor/internal/report"
)

// CorrectionFunc supplies a corrected composition string after the solver
// rejected the first one. The error carries the offending species names.
// Returning an error abandons the run.
type CorrectionFunc func(unknown *kinetics.UnknownSpeciesError) (string, error)

// Result is the outcome of a completed run.
type Result struct {
	Catalog    catalog.Catalog
	Series     *history.Series
	OutputPath string
}

// Pipeline drives one batch run against a kinetics engine.
type Pipeline struct {
	engine  kinetics.Engine
	correct CorrectionFunc
	log     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCorrection installs the single composition-correction round trip.
// Without it an unrecognized species is immediately fatal.
func WithCorrection(f CorrectionFunc) Option {
	return func(p *Pipeline) { p.correct = f }
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

func New(engine kinetics.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{engine: engine, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configure builds the solved gas state. An unrecognized species in the
// composition string gets exactly one correction round trip; a second
// failure, or any other error, aborts before simulation work begins.
func (p *Pipeline) Configure(cfg *config.Config) (kinetics.Solution, error) {
	sol, err := p.engine.NewSolution(cfg.Mechanism)
	if err != nil {
		return nil, err
	}

	err = sol.SetState(cfg.Temperature, cfg.PressurePa(), cfg.Composition)
	if err == nil {
		return sol, nil
	}

	var unknown *kinetics.UnknownSpeciesError
	if !errors.As(err, &unknown) || p.correct == nil {
		return nil, err
	}

	p.log.Warn("composition rejected, requesting correction", "unknown", unknown.Names)
	corrected, cerr := p.correct(unknown)
	if cerr != nil {
		return nil, fmt.Errorf("composition correction abandoned: %w", cerr)
	}

	if err := sol.SetState(cfg.Temperature, cfg.PressurePa(), corrected); err != nil {
		return nil, fmt.Errorf("composition rejected twice: %w", err)
	}
	cfg.Composition = corrected
	return sol, nil
}

// Simulate configures the state, wraps it in a reactor network and advances
// it through ceil(duration/dt) steps, sampling time, temperature and the
// catalog species after each step. When duration/dt is non-integral the
// final step overshoots the duration; this is accepted behavior.
func (p *Pipeline) Simulate(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sol, err := p.Configure(cfg)
	if err != nil {
		return nil, err
	}

	net, err := p.engine.NewReactorNetwork(sol)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default(cfg.Fuel, cfg.Extra)
	keys := cat.Keys()
	steps := cfg.Steps()
	series := history.NewSeries(steps)

	p.log.Debug("stepping reactor", "steps", steps, "dt", cfg.Step)
	for i := 1; i <= steps; i++ {
		target := float64(i) * cfg.Step
		if err := net.Advance(ctx, target); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		x := make([]float64, len(keys))
		for j, key := range keys {
			x[j] = net.MoleFraction(key)
		}
		series.Append(history.Row{
			Time:        net.Time(),
			Temperature: net.Temperature(),
			X:           x,
		})
	}

	return &Result{Catalog: cat, Series: series}, nil
}

// Run executes the full pipeline and writes the report. Output failures are
// surfaced after all computation completes, distinct from solver errors.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	res, err := p.Simulate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res.OutputPath = report.OutputPath(cfg.Filebase)
	if err := report.Write(res.OutputPath, res.Catalog, res.Series); err != nil {
		return nil, err
	}

	p.log.Info("run complete", "rows", res.Series.Len(), "output", res.OutputPath)
	return res, nil
}
