package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ItemsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsCreated,
			Help: HelpTextItemsCreated,
		},
	)

	ItemsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsDeleted,
			Help: HelpTextItemsDeleted,
		},
	)

	ItemsUsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsUsed,
			Help: HelpTextItemsUsed,
		},
	)

	InventoriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInventoriesCreated,
			Help: HelpTextInventoriesCreated,
		},
	)

	InventoryItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInventoryItemsAdded,
			Help: HelpTextInventoryItemsAdded,
		},
	)
)

// Cache Metrics
var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheHits,
			Help: HelpTextCacheHits,
		},
		[]string{LabelKey},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheMisses,
			Help: HelpTextCacheMisses,
		},
		[]string{LabelKey},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelTopic},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsConsumed,
			Help: HelpTextEventsConsumed,
		},
		[]string{LabelTopic},
	)

	EventErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventErrors,
			Help: HelpTextEventErrors,
		},
		[]string{LabelTopic, LabelReason},
	)
)
