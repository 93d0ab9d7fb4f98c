package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sweep subsystem metrics
var (
	// PassDuration tracks how long sweep passes take
	PassDuration prometheus.Histogram

	// PassesTotal tracks completed passes per routine directory
	PassesTotal *prometheus.CounterVec

	// EntriesRemovedTotal tracks removed entries per routine directory
	EntriesRemovedTotal *prometheus.CounterVec

	// BytesRemovedTotal tracks total bytes removed across all routines
	BytesRemovedTotal prometheus.Counter

	// RemovalErrorsTotal tracks failed removals per routine directory
	RemovalErrorsTotal *prometheus.CounterVec

	// DirectoryUnreadableTotal tracks passes aborted because the routine
	// directory could not be listed
	DirectoryUnreadableTotal *prometheus.CounterVec

	// LastPassTimestamp records the Unix timestamp of the last completed
	// pass per routine directory
	LastPassTimestamp *prometheus.GaugeVec

	// RoutinesActive tracks the number of running routine goroutines
	RoutinesActive prometheus.Gauge
)

// initSweepMetrics initializes all sweep subsystem metrics
func initSweepMetrics() {
	PassDuration = NewDurationHistogram(
		"sweepd_pass_duration_seconds",
		"Duration of sweep passes in seconds.",
	)

	PassesTotal = NewCounterVec(
		"sweepd_passes_total",
		"Total number of completed sweep passes.",
		[]string{"directory"},
	)

	EntriesRemovedTotal = NewCounterVec(
		"sweepd_entries_removed_total",
		"Total number of entries removed.",
		[]string{"directory"},
	)

	BytesRemovedTotal = NewCounter(
		"sweepd_bytes_removed_total",
		"Total bytes removed by sweepd.",
	)

	RemovalErrorsTotal = NewCounterVec(
		"sweepd_removal_errors_total",
		"Total number of failed removals.",
		[]string{"directory"},
	)

	DirectoryUnreadableTotal = NewCounterVec(
		"sweepd_directory_unreadable_total",
		"Total number of passes aborted because the directory could not be listed.",
		[]string{"directory"},
	)

	LastPassTimestamp = NewGaugeVec(
		"sweepd_last_pass_timestamp",
		"Timestamp of the last completed pass (Unix epoch seconds).",
		[]string{"directory"},
	)

	RoutinesActive = NewGauge(
		"sweepd_routines_active",
		"Number of routine goroutines currently running.",
	)
}

// registerSweepMetrics registers all sweep metrics with Prometheus
func registerSweepMetrics() {
	prometheus.MustRegister(PassDuration)
	prometheus.MustRegister(PassesTotal)
	prometheus.MustRegister(EntriesRemovedTotal)
	prometheus.MustRegister(BytesRemovedTotal)
	prometheus.MustRegister(RemovalErrorsTotal)
	prometheus.MustRegister(DirectoryUnreadableTotal)
	prometheus.MustRegister(LastPassTimestamp)
	prometheus.MustRegister(RoutinesActive)
}

// RecordPass records a completed pass for a directory
func RecordPass(directory string, duration time.Duration) {
	PassesTotal.WithLabelValues(directory).Inc()
	PassDuration.Observe(duration.Seconds())
	LastPassTimestamp.WithLabelValues(directory).Set(float64(time.Now().Unix()))
}

// RecordRemoval records one successful removal
func RecordRemoval(directory string, bytes int64) {
	EntriesRemovedTotal.WithLabelValues(directory).Inc()
	BytesRemovedTotal.Add(float64(bytes))
}

// RecordRemovalError records one failed removal
func RecordRemovalError(directory string) {
	RemovalErrorsTotal.WithLabelValues(directory).Inc()
}

// RecordUnreadableDirectory records a pass aborted by a listing failure
func RecordUnreadableDirectory(directory string) {
	DirectoryUnreadableTotal.WithLabelValues(directory).Inc()
}
