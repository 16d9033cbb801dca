// Package monitor runs the analysis of a list of instruments on a schedule,
// alerts on actionable signals and keeps the latest results for the API.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/marker"
	"github.com/rxtech-lab/argo-signal/internal/markethours"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/notification"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	DefaultInterval       = time.Hour
	DefaultMaxConcurrency = 4
)

// Analyzer analyzes one instrument.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*analysis.Result, error)
}

// FrameExporter hands a signal frame to chart renderers.
type FrameExporter interface {
	WriteFrame(symbol string, rows []types.SignalRow) (string, error)
}

// Config configures the monitor loop.
type Config struct {
	Symbols        []string      `yaml:"-" json:"-"`
	Interval       time.Duration `yaml:"interval" json:"interval" jsonschema:"title=Cycle interval,type=string,default=1h" validate:"min=1s"`
	MaxConcurrency int           `yaml:"max_concurrency" json:"max_concurrency" jsonschema:"title=Instruments analyzed in parallel,minimum=1,default=4" validate:"min=1"`
	NotifyOnHold   bool          `yaml:"-" json:"-"`
}

// Monitor analyzes every configured instrument once per cycle.
type Monitor struct {
	config   Config
	analyzer Analyzer
	notifier notification.Notifier
	// session is nil when cycles run regardless of market hours.
	session  *markethours.Session
	exporter FrameExporter
	marker   marker.Marker
	metrics  *metrics.Metrics
	store    *Store
	logger   *logger.Logger
	now      func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithSession skips cycles while session is closed.
func WithSession(session *markethours.Session) Option {
	return func(m *Monitor) {
		m.session = session
	}
}

// WithExporter writes every signal frame through exporter.
func WithExporter(exporter FrameExporter) Option {
	return func(m *Monitor) {
		m.exporter = exporter
	}
}

// WithMarker marks the bar of every alert sent.
func WithMarker(marker marker.Marker) Option {
	return func(m *Monitor) {
		m.marker = marker
	}
}

// WithMetrics records cycle outcomes in metrics.
func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = metrics
	}
}

// WithStore publishes snapshots to store instead of a private one.
func WithStore(store *Store) Option {
	return func(m *Monitor) {
		m.store = store
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// New creates a monitor. Defaults fill a zero Interval or MaxConcurrency.
func New(config Config, analyzer Analyzer, notifier notification.Notifier, log *logger.Logger, opts ...Option) (*Monitor, error) {
	if len(config.Symbols) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "at least one symbol is required")
	}

	if analyzer == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "analyzer is required")
	}

	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}

	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultMaxConcurrency
	}

	if notifier == nil {
		notifier = notification.NewMulti()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	m := &Monitor{
		config:   config,
		analyzer: analyzer,
		notifier: notifier,
		store:    NewStore(),
		logger:   log,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.metrics == nil {
		m.metrics = metrics.NewMetrics()
	}

	return m, nil
}

// Store returns the snapshot store the monitor publishes to.
func (m *Monitor) Store() *Store {
	return m.store
}

// Start runs one cycle immediately and then one every Interval until ctx is
// done. Cycles never overlap; a cycle still running when the next is due
// delays it.
func (m *Monitor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "creating job scheduler", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.config.Interval),
		gocron.NewTask(func() {
			if _, err := m.RunCycle(ctx); err != nil {
				m.logger.Error("Monitor cycle failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName("monitor-cycle"),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "scheduling monitor cycle", err)
	}

	m.logger.Info("Starting monitor",
		zap.Strings("symbols", m.config.Symbols),
		zap.Duration("interval", m.config.Interval),
		zap.Bool("market_hours", m.session != nil),
	)

	scheduler.Start()

	<-ctx.Done()

	m.logger.Info("Stopping monitor")

	return scheduler.Shutdown()
}

// RunCycle analyzes every instrument once. Outside market hours it returns
// a nil snapshot. Instruments without a result are logged and skipped; the
// cycle only fails when ctx is cancelled.
func (m *Monitor) RunCycle(ctx context.Context) (*Snapshot, error) {
	started := m.now()
	open := m.session == nil || m.session.IsOpen(started)

	if !open {
		m.metrics.ObserveCycle(false, true)
		m.logger.Info("Market closed, skipping cycle",
			zap.Time("next_open", m.session.NextOpen(started)),
		)

		return nil, nil
	}

	snapshot := &Snapshot{
		CycleID:    uuid.New().String(),
		StartedAt:  started,
		MarketOpen: open,
		Results:    make(map[string]*analysis.Result, len(m.config.Symbols)),
		Errors:     make(map[string]string),
	}

	log := m.logger.With(zap.String("cycle_id", snapshot.CycleID))
	log.Info("Analyzing instruments", zap.Int("count", len(m.config.Symbols)))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.config.MaxConcurrency)

	for _, symbol := range m.config.Symbols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := m.analyze(gctx, log, symbol)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				snapshot.Errors[symbol] = err.Error()
				return nil
			}

			snapshot.Results[symbol] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot.FinishedAt = m.now()
	m.store.Update(snapshot)
	m.metrics.ObserveCycle(true, false)

	log.Info("Cycle finished",
		zap.Int("results", len(snapshot.Results)),
		zap.Int("skipped", len(snapshot.Errors)),
		zap.Duration("elapsed", snapshot.FinishedAt.Sub(started)),
	)

	return snapshot, nil
}

func (m *Monitor) analyze(ctx context.Context, log *logger.Logger, symbol string) (*analysis.Result, error) {
	log = log.With(zap.String("symbol", symbol))
	started := time.Now()

	result, err := m.analyzer.Analyze(ctx, symbol)
	if err != nil {
		if errors.IsNoResult(err) {
			m.metrics.ObserveNoResult()
			log.Warn("No result for instrument, skipping", zap.Error(err))
		} else {
			m.metrics.ObserveError()
			log.Error("Analysis failed", zap.Error(err))
		}

		return nil, err
	}

	rec := result.Recommendation
	m.metrics.ObserveSignal(symbol, rec.Signal, time.Since(started))

	log.Info(rec.Text(),
		zap.Int("signal", int(rec.Signal)),
		zap.Bool("confirmed", rec.Confirmed),
	)

	if m.exporter != nil {
		path, err := m.exporter.WriteFrame(symbol, result.Rows)
		if err != nil {
			log.Error("Failed to export signal frame", zap.Error(err))
		} else {
			log.Debug("Exported signal frame", zap.String("path", path))
		}
	}

	if rec.Signal != types.SignalHold || m.config.NotifyOnHold {
		err := m.notifier.Send(ctx, rec.Alert())
		m.metrics.ObserveAlert(err)

		if err != nil {
			log.Error("Failed to send alert", zap.Error(err))
		} else if m.marker != nil && len(result.Rows) > 0 {
			if err := m.marker.Mark(symbol, result.Rows[len(result.Rows)-1], rec.Text()); err != nil {
				log.Error("Failed to record alert mark", zap.Error(err))
			}
		}
	}

	return result, nil
}
