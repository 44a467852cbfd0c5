package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameItemsCreated        = "items_created_total"
	MetricNameItemsDeleted        = "items_deleted_total"
	MetricNameItemsUsed           = "items_used_total"
	MetricNameInventoriesCreated  = "inventories_created_total"
	MetricNameInventoryItemsAdded = "inventory_items_added_total"
)

// Cache metric names
const (
	MetricNameCacheHits   = "cache_hits_total"
	MetricNameCacheMisses = "cache_misses_total"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
	MetricNameEventsConsumed  = "events_consumed_total"
	MetricNameEventErrors     = "event_errors_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextItemsCreated        = "Total number of catalog items created"
	HelpTextItemsDeleted        = "Total number of catalog items deleted"
	HelpTextItemsUsed           = "Total number of items consumed from inventories"
	HelpTextInventoriesCreated  = "Total number of inventories created"
	HelpTextInventoryItemsAdded = "Total number of items added to inventories"

	HelpTextCacheHits   = "Total number of cache hits"
	HelpTextCacheMisses = "Total number of cache misses"

	HelpTextEventsPublished = "Total number of events published to the stream"
	HelpTextEventsConsumed  = "Total number of events consumed from the stream"
	HelpTextEventErrors     = "Total number of event processing errors"
)

// Labels
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelKey    = "key"
	LabelTopic  = "topic"
	LabelReason = "reason"
)

// HTTPLatencyBuckets are the histogram buckets for request duration
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
