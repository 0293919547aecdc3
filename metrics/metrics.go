// Package metrics provides Prometheus metrics for registry conversions.
// The tool runs as a one-shot batch job, so metrics live in their own registry
// and are exported through the node exporter textfile collector:
//   - sysex_conversion_records: Gauge of records written by the last run
//   - sysex_conversion_output_bytes: Gauge of the encoded output size
//   - sysex_conversion_duration_seconds: Gauge of the last run duration
//   - sysex_conversion_last_success_timestamp_seconds: Gauge set on success
//   - sysex_conversion_failures_total: Counter with a kind label (parse, io, canceled, other)
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Registry = prometheus.NewRegistry()

	ConversionRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sysex_conversion_records",
			Help: "Number of manufacturer records written by the last conversion",
		},
	)

	ConversionOutputBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sysex_conversion_output_bytes",
			Help: "Size of the encoded ids.json in bytes",
		},
	)

	ConversionDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sysex_conversion_duration_seconds",
			Help: "Duration of the last conversion",
		},
	)

	ConversionLastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sysex_conversion_last_success_timestamp_seconds",
			Help: "Unix time of the last successful conversion",
		},
	)

	ConversionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysex_conversion_failures_total",
			Help: "Failed conversions by error kind",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(ConversionRecords)
	Registry.MustRegister(ConversionOutputBytes)
	Registry.MustRegister(ConversionDuration)
	Registry.MustRegister(ConversionLastSuccess)
	Registry.MustRegister(ConversionFailures)
}

// ObserveSuccess records a completed conversion.
func ObserveSuccess(records, size int, duration time.Duration) {
	ConversionRecords.Set(float64(records))
	ConversionOutputBytes.Set(float64(size))
	ConversionDuration.Set(duration.Seconds())
	ConversionLastSuccess.SetToCurrentTime()
}

// ObserveFailure counts a failed conversion under kind.
func ObserveFailure(kind string, duration time.Duration) {
	ConversionFailures.WithLabelValues(kind).Inc()
	ConversionDuration.Set(duration.Seconds())
}

// WriteTextfile writes the registry in text exposition format to path.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
