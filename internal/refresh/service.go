package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/observability"
)

// Refresh triggers, used as the metrics "trigger" label.
const (
	TriggerInitial   = "initial"
	TriggerSchedule  = "schedule"
	TriggerBootstrap = "bootstrap"
	TriggerManual    = "manual"
)

// Service owns the cached view for one provider. Refreshes are serialized:
// the periodic check skips a tick while one is running and concurrent
// RefreshNow calls share a single refresh.
type Service struct {
	provider  Provider
	id        string
	cache     Cache
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	interval  time.Duration
	location  *time.Location
	observers []Observer

	mu        sync.Mutex // serializes refreshes; guards queue
	queue     []time.Time
	completed atomic.Bool
	group     singleflight.Group

	viewMu     sync.RWMutex
	view       []domain.DaySummary
	lastUpdate time.Time

	obsMu sync.RWMutex
}

// New creates a Service for provider backed by cache.
func New(provider Provider, cache Cache, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		id:       provider.Identifier(),
		cache:    cache,
		clock:    clockwork.NewRealClock(),
		logger:   slog.Default(),
		interval: DefaultCheckInterval,
		location: time.Local,
		view:     []domain.DaySummary{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewUnregisteredMetrics()
	}
	s.logger = s.logger.With("component", "refresh", "identifier", s.id)
	return s
}

// Identifier returns the provider identifier the view belongs to.
func (s *Service) Identifier() string { return s.id }

// Subscribe adds an observer.
func (s *Service) Subscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

// Initialize refreshes once and arms the daily schedule from times of day in
// the configured location. A failed initial refresh is reported to observers
// and left for the periodic check to retry; only an invalid schedule is
// returned as an error.
func (s *Service) Initialize(ctx context.Context, schedule []time.Duration) error {
	if err := validateSchedule(schedule); err != nil {
		return err
	}

	s.mu.Lock()
	n := s.refresh(ctx, TriggerInitial, true, true)
	if n.err != nil {
		s.logger.Warn("initial refresh failed", "error", n.err)
	}
	s.queue = buildQueue(schedule, s.clock.Now(), s.location)
	s.logger.Info("refresh schedule armed", "entries", len(s.queue), "next", s.nextTrigger())
	s.mu.Unlock()

	s.deliver(ctx, n)
	return nil
}

// Run checks the schedule every interval until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	s.metrics.ServiceRunning.Set(1)
	defer s.metrics.ServiceRunning.Set(0)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("refresh loop started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh loop stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.check(ctx)
		}
	}
}

// check refreshes when the earliest schedule entry is due, or when no
// refresh has completed yet. Only a due entry that refreshed successfully is
// moved to the next day.
func (s *Service) check(ctx context.Context) {
	if !s.mu.TryLock() {
		s.logger.Debug("refresh in flight, skipping check")
		return
	}
	n := s.checkLocked(ctx)
	s.mu.Unlock()
	s.deliver(ctx, n)
}

func (s *Service) checkLocked(ctx context.Context) *notice {
	if len(s.queue) == 0 {
		return nil
	}

	due := !s.clock.Now().Before(s.queue[0])
	if !due && s.completed.Load() {
		return nil
	}

	trigger := TriggerBootstrap
	if due {
		trigger = TriggerSchedule
	}
	n := s.refresh(ctx, trigger, true, true)
	if n.err == nil && due {
		s.queue = advance(s.queue)
		s.logger.Debug("schedule advanced", "next", s.nextTrigger())
	}
	return n
}

// Update refreshes the selected parts and republishes the view. It is a
// no-op when neither part is selected, and when only the forecast is
// selected and its fetch yields nothing.
func (s *Service) Update(ctx context.Context, forecast, warnings bool) error {
	s.mu.Lock()
	n := s.refresh(ctx, TriggerManual, forecast, warnings)
	s.mu.Unlock()
	s.deliver(ctx, n)
	return n.err
}

// RefreshNow performs a full refresh and returns the resulting view.
// Concurrent callers share one refresh.
func (s *Service) RefreshNow(ctx context.Context) ([]domain.DaySummary, error) {
	v, _, shared := s.group.Do("refresh", func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.refresh(ctx, TriggerManual, true, true), nil
	})
	if shared {
		s.logger.Debug("joined in-flight refresh")
	}
	n := v.(*notice)
	s.deliver(ctx, n)
	if n.err != nil {
		return nil, n.err
	}
	return s.Forecast(), nil
}

// Forecast returns the current view without blocking on a refresh.
func (s *Service) Forecast() []domain.DaySummary {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return slices.Clone(s.view)
}

// LastUpdate returns when the view was last replaced.
func (s *Service) LastUpdate() (time.Time, bool) {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return s.lastUpdate, !s.lastUpdate.IsZero()
}

// CheckReadiness returns nil once a refresh has completed.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.completed.Load() {
		return errors.New("no forecast refresh has completed yet")
	}
	return nil
}

// notice is the observer call owed by one refresh. It is delivered once,
// after s.mu is released.
type notice struct {
	update *Update
	err    error
	once   sync.Once
}

// refresh runs one update under s.mu and records its outcome.
func (s *Service) refresh(ctx context.Context, trigger string, forecast, warnings bool) *notice {
	start := s.clock.Now()
	u, err := s.update(ctx, forecast, warnings)
	switch {
	case err != nil:
		s.metrics.Refreshes.WithLabelValues(trigger, "failure").Inc()
		s.logger.Error("refresh failed", "trigger", trigger, "error", err)
		return &notice{err: err}
	case u == nil:
		s.metrics.Refreshes.WithLabelValues(trigger, "skipped").Inc()
		s.logger.Info("refresh skipped, view unchanged", "trigger", trigger)
	default:
		s.metrics.Refreshes.WithLabelValues(trigger, "success").Inc()
		s.metrics.RefreshDuration.Observe(s.clock.Since(start).Seconds())
	}
	s.completed.Store(true)
	return &notice{update: u}
}

// update merges fresh provider data with the cache and publishes a new view.
// It returns the published update, or nil when the view is unchanged.
func (s *Service) update(ctx context.Context, forecast, warnings bool) (*Update, error) {
	if !forecast && !warnings {
		return nil, nil
	}
	if r, ok := s.provider.(Resolver); ok {
		if err := r.Resolve(ctx); err != nil {
			if !warnings {
				s.metrics.FetchFailures.WithLabelValues("forecast").Inc()
				s.logger.Warn("resolve provider failed, forecast unavailable", "error", err)
				return nil, nil
			}
			return nil, fmt.Errorf("resolve provider: %w", err)
		}
	}

	var (
		ws          []domain.Warning
		freshAlerts bool
	)
	if warnings {
		fresh, err := s.provider.Warnings(ctx)
		if err != nil {
			s.metrics.FetchFailures.WithLabelValues("warnings").Inc()
			s.logger.Warn("fetch warnings failed, using cached warnings", "error", err)
			ws = s.cache.Warnings(s.id)
		} else {
			ws = warningsIn(fresh, s.location)
			freshAlerts = true
		}
	} else {
		ws = s.cache.Warnings(s.id)
	}

	var (
		series      []domain.DataPoint
		freshSeries bool
	)
	if forecast {
		fresh, err := s.provider.Forecast(ctx)
		if err != nil {
			s.metrics.FetchFailures.WithLabelValues("forecast").Inc()
			s.logger.Warn("fetch forecast failed", "error", err)
			fresh = nil
		}
		switch {
		case len(fresh) > 0:
			series = mergeSeries(s.cache.Series(s.id), pointsIn(fresh, s.location))
			freshSeries = true
		case warnings:
			series = s.cache.Series(s.id)
		default:
			return nil, nil
		}
	} else {
		series = s.cache.Series(s.id)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refresh abandoned: %w", err)
	}
	if freshAlerts {
		s.cache.PutWarnings(s.id, ws)
	}
	if freshSeries {
		s.cache.PutSeries(s.id, series)
	}

	days := domain.Summarize(series, ws)
	now := s.clock.Now()

	s.viewMu.Lock()
	s.view = days
	s.lastUpdate = now
	s.viewMu.Unlock()

	s.metrics.LastUpdate.Set(float64(now.Unix()))
	s.metrics.ForecastDays.Set(float64(len(days)))
	s.metrics.ForecastPoints.Set(float64(len(series)))
	s.metrics.ActiveWarnings.Set(float64(len(ws)))
	s.logger.Info("forecast view updated", "days", len(days), "points", len(series), "warnings", len(ws))

	return &Update{Identifier: s.id, UpdatedAt: now, Days: slices.Clone(days)}, nil
}

// pointsIn and warningsIn move timestamps into loc so that days and
// sections follow the local calendar.
func pointsIn(points []domain.DataPoint, loc *time.Location) []domain.DataPoint {
	out := make([]domain.DataPoint, len(points))
	for i, p := range points {
		p.Time = p.Time.In(loc)
		out[i] = p
	}
	return out
}

// The open-ended bounds are left as they are: in a zone east of UTC the
// maximum instant would land in year 10000, which JSON cannot encode.
func warningsIn(warnings []domain.Warning, loc *time.Location) []domain.Warning {
	out := make([]domain.Warning, len(warnings))
	for i, w := range warnings {
		w.StartTime = boundIn(w.StartTime, loc)
		w.EndTime = boundIn(w.EndTime, loc)
		out[i] = w
	}
	return out
}

func boundIn(t time.Time, loc *time.Location) time.Time {
	if t.Equal(domain.MinTime) || t.Equal(domain.MaxTime) {
		return t
	}
	return t.In(loc)
}

// mergeSeries prepends the cached points of fresh's first day that lie
// before fresh's earliest step, keeping earlier same-day history that a
// rolling upstream window no longer carries.
func mergeSeries(cached, fresh []domain.DataPoint) []domain.DataPoint {
	start := fresh[0].Time
	for _, p := range fresh[1:] {
		if p.Time.Before(start) {
			start = p.Time
		}
	}
	y, m, d := start.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, start.Location())

	merged := make([]domain.DataPoint, 0, len(fresh))
	for _, p := range cached {
		if !p.Time.Before(dayStart) && p.Time.Before(start) {
			merged = append(merged, p)
		}
	}
	return append(merged, fresh...)
}

// deliver hands n to the observers. It must be called without s.mu held so
// observers may call back into the Service.
func (s *Service) deliver(ctx context.Context, n *notice) {
	if n == nil {
		return
	}
	n.once.Do(func() {
		switch {
		case n.err != nil:
			s.notifyFailure(ctx, n.err)
		case n.update != nil:
			s.notifyChange(ctx, *n.update)
		}
	})
}

func (s *Service) notifyChange(ctx context.Context, u Update) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, o := range s.observers {
		o.ForecastChanged(ctx, u)
	}
}

func (s *Service) notifyFailure(ctx context.Context, err error) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, o := range s.observers {
		o.RefreshFailed(ctx, err)
	}
}

func (s *Service) nextTrigger() time.Time {
	if len(s.queue) == 0 {
		return time.Time{}
	}
	return s.queue[0]
}
