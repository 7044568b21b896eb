// Package refresh keeps a forecast view fresh. It merges provider data with
// the last remembered data, summarizes it per day and republishes the result
// on a rolling daily schedule.
package refresh

import (
	"context"
	"time"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

// Provider fetches forecast steps and warnings for one place.
type Provider interface {
	// Identifier is stable for the place and keys the cache.
	Identifier() string
	Forecast(ctx context.Context) ([]domain.DataPoint, error)
	Warnings(ctx context.Context) ([]domain.Warning, error)
}

// Resolver is implemented by providers that must look something up, such as
// the nearest station, before they can fetch. Resolve errors fail the
// refresh instead of degrading to cached data.
type Resolver interface {
	Resolve(ctx context.Context) error
}

// Cache remembers the last series and warnings per provider identifier.
// Absent entries read as empty slices.
type Cache interface {
	Series(id string) []domain.DataPoint
	PutSeries(id string, series []domain.DataPoint)
	Warnings(id string) []domain.Warning
	PutWarnings(id string, warnings []domain.Warning)
}

// Update is a newly published view.
type Update struct {
	Identifier string              `json:"identifier"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Days       []domain.DaySummary `json:"days"`
}

// Observer is notified about view changes and failed refreshes. Calls are
// made synchronously from the refreshing goroutine once the refresh lock is
// released, so an observer may read or refresh the Service it observes.
type Observer interface {
	ForecastChanged(ctx context.Context, u Update)
	RefreshFailed(ctx context.Context, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnChange  func(ctx context.Context, u Update)
	OnFailure func(ctx context.Context, err error)
}

func (o ObserverFuncs) ForecastChanged(ctx context.Context, u Update) {
	if o.OnChange != nil {
		o.OnChange(ctx, u)
	}
}

func (o ObserverFuncs) RefreshFailed(ctx context.Context, err error) {
	if o.OnFailure != nil {
		o.OnFailure(ctx, err)
	}
}
