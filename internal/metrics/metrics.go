package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aquascape_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// SchedulerCycles counts scheduler cycles by outcome (ok, skipped, error).
	SchedulerCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquascape_scheduler_cycles_total",
			Help: "Scheduler cycles by outcome",
		},
		[]string{"outcome"},
	)

	// FeedCommandsEmitted counts CMD_FEED alerts written by the scheduler by schedule type.
	FeedCommandsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquascape_feed_commands_emitted_total",
			Help: "Feed commands emitted by the scheduler",
		},
		[]string{"schedule_type"},
	)

	// ScheduleErrors counts schedules skipped because evaluation failed.
	ScheduleErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aquascape_schedule_errors_total",
			Help: "Schedules skipped because evaluation or commit failed",
		},
	)

	// DeviceCommands counts commands handled by the device processor by kind and result.
	DeviceCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquascape_device_commands_total",
			Help: "Device commands handled by kind and result",
		},
		[]string{"kind", "result"},
	)

	// DangerAlerts counts DANGER_SENSOR alerts raised by devices.
	DangerAlerts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aquascape_danger_alerts_total",
			Help: "Dangerous sensor readings reported",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, SchedulerCycles, FeedCommandsEmitted, ScheduleErrors, DeviceCommands, DangerAlerts)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest observes one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	RequestDuration.WithLabelValues(method, NormalizePath(path), strconv.Itoa(statusCode)).Observe(durationSeconds)
}

func IncSchedulerCycle(outcome string) {
	SchedulerCycles.WithLabelValues(outcome).Inc()
}

func IncFeedCommand(scheduleType string) {
	FeedCommandsEmitted.WithLabelValues(scheduleType).Inc()
}

func IncScheduleError() {
	ScheduleErrors.Inc()
}

func IncDeviceCommand(kind, result string) {
	DeviceCommands.WithLabelValues(kind, result).Inc()
}

func IncDangerAlert() {
	DangerAlerts.Inc()
}
