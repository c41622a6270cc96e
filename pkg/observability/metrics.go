package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sct34"

// BatchMetrics counts generated and failed transfer files. It owns a private
// registry so that a one-shot CLI run can dump it to a node_exporter textfile.
type BatchMetrics struct {
	registry      *prometheus.Registry
	generated     prometheus.Counter
	failed        *prometheus.CounterVec
	beneficiaries prometheus.Counter
	bytesWritten  prometheus.Counter
	lastTotal     prometheus.Gauge
}

// NewBatchMetrics registers the batch collectors on a fresh registry.
func NewBatchMetrics() *BatchMetrics {
	m := &BatchMetrics{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "batches_generated_total",
			Help:      "Transfer files generated successfully.",
		}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "batches_failed_total",
			Help:      "Transfer file generations that failed, by reason.",
		}, []string{"reason"}),
		beneficiaries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "beneficiaries_encoded_total",
			Help:      "Beneficiary records written to generated files.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bytes_written_total",
			Help:      "Bytes of ISO-8859-1 payload produced.",
		}),
		lastTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_batch_total_minor_units",
			Help:      "Total amount in euro cents of the last generated file.",
		}),
	}
	m.registry.MustRegister(m.generated, m.failed, m.beneficiaries, m.bytesWritten, m.lastTotal)
	return m
}

// BatchGenerated records a successful generation.
func (m *BatchMetrics) BatchGenerated(beneficiaries int64, totalMinorUnits int64, bytes int) {
	m.generated.Inc()
	m.beneficiaries.Add(float64(beneficiaries))
	m.bytesWritten.Add(float64(bytes))
	m.lastTotal.Set(float64(totalMinorUnits))
}

// BatchFailed records a failed generation under the given reason label.
func (m *BatchMetrics) BatchFailed(reason string) {
	if reason == "" {
		reason = "other"
	}
	m.failed.WithLabelValues(reason).Inc()
}

// WriteTextfile writes the current values in the Prometheus text format.
func (m *BatchMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
