package refresh

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-forecast-service/internal/observability"
)

// DefaultCheckInterval is how often Run looks at the schedule.
const DefaultCheckInterval = 5 * time.Minute

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, typically with a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCheckInterval sets the periodic schedule check interval.
func WithCheckInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLocation sets the time zone schedule times-of-day are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithObservers registers observers at construction.
func WithObservers(obs ...Observer) Option {
	return func(s *Service) { s.observers = append(s.observers, obs...) }
}
