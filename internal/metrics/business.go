package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StatusSuccess is the status label of an operation that returned no error.
const StatusSuccess = "success"

// BusinessMetrics records credential operations.
//
// operation is one of token_issue, token_verify, token_revoke or token_prune. status is
// StatusSuccess or the failure reason code (token_expired, token_revoked, ...), so
// rejections can be split by cause without parsing logs.
type BusinessMetrics interface {
	ObserveOperation(ctx context.Context, operation, status string, elapsed time.Duration)
}

type businessMetrics struct {
	operations metric.Int64Counter
	latency    metric.Float64Histogram
}

// NewBusinessMetrics creates <namespace>_operations_total and
// <namespace>_operation_duration_seconds on the given meter provider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Credential operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	latency, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Credential operation latency in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{operations: operations, latency: latency}, nil
}

func (b *businessMetrics) ObserveOperation(ctx context.Context, operation, status string, elapsed time.Duration) {
	attrs := metric.WithAttributeSet(attribute.NewSet(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	b.operations.Add(ctx, 1, attrs)
	b.latency.Record(ctx, elapsed.Seconds(), attrs)
}

// NoOpBusinessMetrics discards every observation. Used when metrics are disabled.
type NoOpBusinessMetrics struct{}

func NewNoOpBusinessMetrics() BusinessMetrics {
	return NoOpBusinessMetrics{}
}

func (NoOpBusinessMetrics) ObserveOperation(context.Context, string, string, time.Duration) {}

// RegisterRevocationLedgerGauge exposes the number of revoked credentials held in memory.
// size is called on every collection.
func RegisterRevocationLedgerGauge(meterProvider metric.MeterProvider, namespace string, size func() int) error {
	_, err := meterProvider.Meter(namespace).Int64ObservableGauge(
		fmt.Sprintf("%s_revocation_ledger_entries", namespace),
		metric.WithDescription("Number of revoked credentials held in the revocation ledger"),
		metric.WithUnit("{entry}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(int64(size()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create revocation ledger gauge: %w", err)
	}
	return nil
}
