package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()
	m.Refreshes.WithLabelValues("manual", "success").Inc()
	m.CacheLookups.WithLabelValues("series", "hit").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues("manual", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("series", "hit")))
}
