package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// ResolutionsName is the name of the resolution counter.
	ResolutionsName = "navd_resolutions_total"

	// LabelNone is the entry label recorded when no entry matched.
	LabelNone = "none"
)

// ResolutionCounter records the outcome of active-entry resolutions.
type ResolutionCounter interface {
	// Observe records one resolution for the entry label and whether an alias was applied.
	Observe(entry string, aliased bool)
}

// Counter is a ResolutionCounter backed by a Prometheus counter vector.
type Counter struct {
	vec *prometheus.CounterVec
}

// Observe implements ResolutionCounter.
func (c *Counter) Observe(entry string, aliased bool) {
	if entry == "" {
		entry = LabelNone
	}
	a := "false"
	if aliased {
		a = "true"
	}
	c.vec.WithLabelValues(entry, a).Inc()
}

// NewResolutionCounter registers the resolution counter with reg.
func NewResolutionCounter(reg prometheus.Registerer) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: ResolutionsName,
		Help: "Active menu entry resolutions by entry label and alias use.",
	}, []string{"entry", "aliased"})

	reg.MustRegister(vec)

	return &Counter{vec: vec}
}

// Discard is a ResolutionCounter that records nothing.
type Discard struct{}

// Observe implements ResolutionCounter.
func (Discard) Observe(string, bool) {}

// HandlerFor returns an HTTP handler serving the metrics gathered by reg.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
