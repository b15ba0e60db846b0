package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the site's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	LocationResolutions *prometheus.CounterVec
	LocationResolveTime *prometheus.HistogramVec
	LiveNavigations     *prometheus.CounterVec
	DemoLogins          *prometheus.CounterVec
}

// New creates the collectors on a private registry, together with the Go
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LocationResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mouldsite_location_resolutions_total",
			Help: "Location page resolutions by outcome",
		}, []string{"outcome"}),
		LocationResolveTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mouldsite_location_resolve_seconds",
			Help:    "Time to resolve a location page",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"outcome"}),
		LiveNavigations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mouldsite_live_navigations_total",
			Help: "Live location navigations by result (applied or superseded)",
		}, []string{"result"}),
		DemoLogins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mouldsite_demo_logins_total",
			Help: "Demo login attempts by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveResolution(outcome string, elapsed time.Duration) {
	m.LocationResolutions.WithLabelValues(outcome).Inc()
	m.LocationResolveTime.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) IncLiveNavigation(result string) {
	m.LiveNavigations.WithLabelValues(result).Inc()
}

func (m *Metrics) IncDemoLogin(result string) {
	m.DemoLogins.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
