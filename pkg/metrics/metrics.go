// Package metrics provides Prometheus metrics for the souk marketplace engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "souk"
	subsystem = "engine"
)

// Manager owns all Prometheus collectors for the engine.
type Manager struct {
	registry prometheus.Registerer

	// Command processing
	commandsProcessed *prometheus.CounterVec
	commandsRejected  *prometheus.CounterVec
	unknownCommands   prometheus.Counter
	commandLatency    prometheus.Histogram

	// Matching
	matchRequests   prometheus.Counter
	matchEmpty      prometheus.Counter
	matchCandidates prometheus.Histogram

	// Entity population
	customers         prometheus.Gauge
	freelancers       prometheus.Gauge
	activeEmployments prometheus.Gauge
	bans              prometheus.Counter

	// Score cache
	scoreCacheHits   prometheus.Counter
	scoreCacheMisses prometheus.Counter
}

var defaultManager *Manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	defaultManager = NewManager()
}

// NewManager creates a metrics manager registered on the default registerer.
func NewManager() *Manager {
	m := &Manager{registry: prometheus.DefaultRegisterer}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	auto := promauto.With(m.registry)

	m.commandsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "commands_processed_total",
		Help:      "Commands processed, by operation.",
	}, []string{"operation"})

	m.commandsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "commands_rejected_total",
		Help:      "Commands rejected by validation, by operation.",
	}, []string{"operation"})

	m.unknownCommands = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "unknown_commands_total",
		Help:      "Input tokens that named no known operation.",
	})

	m.commandLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "command_latency_seconds",
		Help:      "Latency of command execution.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	})

	m.matchRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "match_requests_total",
		Help:      "Job requests that produced a ranked match list.",
	})

	m.matchEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "match_empty_total",
		Help:      "Job requests with no eligible freelancers.",
	})

	m.matchCandidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "match_candidates",
		Help:      "Number of ranked candidates returned per job request.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
	})

	m.customers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "customers",
		Help:      "Registered customers.",
	})

	m.freelancers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "freelancers",
		Help:      "Registered freelancers (bans subtract).",
	})

	m.activeEmployments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "active_employments",
		Help:      "Currently active employments.",
	})

	m.bans = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "bans_total",
		Help:      "Freelancers permanently removed for excessive cancellations.",
	})

	m.scoreCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "score_cache_hits_total",
		Help:      "Composite score reads served from the per-freelancer cache.",
	})

	m.scoreCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "score_cache_misses_total",
		Help:      "Composite score reads that recomputed the formula.",
	})
}

// Package-level helpers delegating to the default manager.

func RecordCommand(operation string, latencySeconds float64) {
	defaultManager.commandsProcessed.WithLabelValues(operation).Inc()
	defaultManager.commandLatency.Observe(latencySeconds)
}

func RecordCommandRejected(operation string) {
	defaultManager.commandsRejected.WithLabelValues(operation).Inc()
}

func RecordUnknownCommand() {
	defaultManager.unknownCommands.Inc()
}

func RecordMatchServed(candidates int) {
	defaultManager.matchRequests.Inc()
	defaultManager.matchCandidates.Observe(float64(candidates))
}

func RecordMatchEmpty() {
	defaultManager.matchEmpty.Inc()
}

func UpdateCustomerCount(count int) {
	defaultManager.customers.Set(float64(count))
}

func UpdateFreelancerCount(count int) {
	defaultManager.freelancers.Set(float64(count))
}

func UpdateActiveEmployments(count int) {
	defaultManager.activeEmployments.Set(float64(count))
}

func RecordBan() {
	defaultManager.bans.Inc()
}

func RecordScoreCacheHit() {
	defaultManager.scoreCacheHits.Inc()
}

func RecordScoreCacheMiss() {
	defaultManager.scoreCacheMisses.Inc()
}
