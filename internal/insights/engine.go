package insights

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

const tracerName = "creatorpulse/insights"

// Options tunes the engine
type Options struct {
	ClusterK        int
	ClusterSeed     int64
	ClusterRestarts int
	ClusterMaxIter  int
	TopThemes       int
	// Parallel runs the four analyzers concurrently
	Parallel bool
	// Now is the reference clock for growth windows and generatedAt
	Now func() time.Time
}

// DefaultOptions returns the standard engine settings
func DefaultOptions() Options {
	co := DefaultClusterOptions()
	return Options{
		ClusterK:        DefaultClusterK,
		ClusterSeed:     co.Seed,
		ClusterRestarts: co.Restarts,
		ClusterMaxIter:  co.MaxIter,
		TopThemes:       DefaultTopThemes,
		Parallel:        true,
		Now:             time.Now,
	}
}

// Engine runs the analytics pipeline over one input
type Engine struct {
	backend NumericBackend
	opts    Options
	logger  *slog.Logger
	tracer  trace.Tracer

	schedule *ScheduleAnalyzer
	focus    *FocusScorer
	alerts   *AlertDetector
	themes   *ThemeClusterer
}

// NewEngine wires the analyzers around a single backend
func NewEngine(backend NumericBackend, opts Options, logger *slog.Logger) *Engine {
	if backend == nil {
		backend = NewManualBackend()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	co := DefaultClusterOptions()
	co.Seed = opts.ClusterSeed
	if opts.ClusterRestarts > 0 {
		co.Restarts = opts.ClusterRestarts
	}
	if opts.ClusterMaxIter > 0 {
		co.MaxIter = opts.ClusterMaxIter
	}

	return &Engine{
		backend:  backend,
		opts:     opts,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		schedule: NewScheduleAnalyzer(backend),
		focus:    NewFocusScorer(backend, opts.Now),
		alerts:   NewAlertDetector(backend),
		themes:   NewThemeClusterer(backend, opts.ClusterK, opts.TopThemes, co, logger),
	}
}

// Backend returns the numeric backend the engine computes with
func (e *Engine) Backend() NumericBackend {
	return e.backend
}

// Run normalizes the input and analyzes it
func (e *Engine) Run(ctx context.Context, in domain.Input) (*domain.Report, error) {
	ctx, span := e.tracer.Start(ctx, "insights.run",
		trace.WithAttributes(
			attribute.String("backend", e.backend.Name()),
			attribute.Int("platforms", len(in.Platforms)),
			attribute.Int("records", in.RecordCount()),
		),
	)
	defer span.End()

	ds := Normalize(in)
	report, err := e.Analyze(ctx, ds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return report, nil
}

// Analyze runs the four analyzers over a normalized dataset. A panicking
// analyzer leaves its section empty and adds a meta note; the only error
// returned is context cancellation.
func (e *Engine) Analyze(ctx context.Context, ds *Dataset) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	var (
		sections Sections
		mu       sync.Mutex
		notes    []string
		fallback []string
	)
	fail := func(section string) {
		mu.Lock()
		notes = append(notes, UnavailableNote(section))
		mu.Unlock()
	}

	steps := []struct {
		section string
		run     func(context.Context)
	}{
		{SectionPostingSchedule, func(context.Context) {
			sections.PostingSchedule = e.schedule.Analyze(ds)
		}},
		{SectionPlatformFocus, func(context.Context) {
			sections.PlatformFocus = e.focus.Score(ds)
		}},
		{SectionAlerts, func(context.Context) {
			sections.Alerts = e.alerts.Detect(ds)
		}},
		{SectionContentThemes, func(ctx context.Context) {
			res := e.themes.Cluster(ctx, ds)
			sections.ContentThemes = res.Themes
			fallback = res.Fallback
		}},
	}

	g, gctx := errgroup.WithContext(ctx)
	if !e.opts.Parallel {
		g.SetLimit(1)
	}
	for _, step := range steps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !e.runSection(gctx, step.section, step.run) {
				fail(step.section)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	// notes order must not depend on goroutine scheduling
	ordered := make([]string, 0, len(notes)+len(fallback))
	for _, step := range steps {
		for _, n := range notes {
			if n == UnavailableNote(step.section) {
				ordered = append(ordered, n)
			}
		}
	}
	for _, p := range fallback {
		ordered = append(ordered, FallbackNote(p))
	}

	report := NewAssembler(e.backend.Capabilities(), e.opts.Now).Assemble(sections, ordered...)
	e.logger.DebugContext(ctx, "report assembled",
		slog.String("engine", report.Meta.Engine),
		slog.Int("platforms", len(ds.Platforms())),
		slog.Int("records", ds.Len()),
		slog.Int("alerts", len(report.Alerts)),
		slog.Int("themes", len(report.ContentThemes)))
	return report, nil
}

// runSection executes one analyzer inside its own span and reports whether
// it completed without panicking
func (e *Engine) runSection(ctx context.Context, section string, run func(context.Context)) (ok bool) {
	ctx, span := e.tracer.Start(ctx, "insights."+section)
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			ok = false
			span.SetStatus(codes.Error, fmt.Sprint(r))
			e.logger.WarnContext(ctx, "analyzer panicked, section left empty",
				slog.String("section", section),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	run(ctx)
	e.logger.DebugContext(ctx, "analyzer completed",
		slog.String("section", section),
		slog.Duration("duration", time.Since(start)))
	return true
}
