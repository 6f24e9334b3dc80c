package metrics

import (
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests         *prometheus.CounterVec
	CounterProgramMutations *prometheus.CounterVec
	CounterProfileMutations *prometheus.CounterVec

	// gauges
	GaugePrograms prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("gymmate", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymmate", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterProgramMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "program_mutations",
			Help:      "The total number of program registry mutations",
		}, []string{"kind"}),
		CounterProfileMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "profile_mutations",
			Help:      "The total number of profile mutations",
		}, []string{"kind"}),
		GaugePrograms: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "programs",
			Help:      "Current number of programs in the registry",
		}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Observe keeps the mutation counters and the program gauge in step with the
// stores. The returned function unsubscribes.
func (m *Manager) Observe(reg *registry.Registry, prof *profile.Store) (stop func()) {
	m.GaugePrograms.Set(float64(reg.Len()))
	stopPrograms := reg.Subscribe(func(e registry.Event) {
		m.CounterProgramMutations.WithLabelValues(string(e.Kind)).Inc()
		m.GaugePrograms.Set(float64(reg.Len()))
	})
	stopProfile := prof.Subscribe(func(e profile.Event) {
		m.CounterProfileMutations.WithLabelValues(string(e.Kind)).Inc()
	})
	return func() {
		stopPrograms()
		stopProfile()
	}
}
