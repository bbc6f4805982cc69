package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes custom application metrics to CloudWatch.
// Publishing is best-effort; failures are logged and never surfaced to callers.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	enabled   bool
	logger    *zap.Logger
}

// NewMetrics creates a CloudWatch metrics emitter
func NewMetrics(client *cloudwatch.Client, namespace string, enabled bool, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		enabled:   enabled,
		logger:    logger,
	}
}

// Count publishes a count metric with optional dimensions
func (m *Metrics) Count(ctx context.Context, name string, value float64, dimensions map[string]string) {
	if m == nil || !m.enabled || m.client == nil {
		return
	}

	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		m.logger.Warn("Failed to publish metric",
			zap.String("metric", name),
			zap.Error(err),
		)
	}
}

// RecordLikeOutcome publishes the outcome of a like/unlike call
func (m *Metrics) RecordLikeOutcome(ctx context.Context, outcome string) {
	m.Count(ctx, "LikeToggle", 1, map[string]string{"Outcome": outcome})
}

// RecordCascade publishes the size and warning count of a cascade delete
func (m *Metrics) RecordCascade(ctx context.Context, root string, deleted, warnings int) {
	m.Count(ctx, "CascadeDeletedRecords", float64(deleted), map[string]string{"Root": root})
	if warnings > 0 {
		m.Count(ctx, "CascadeWarnings", float64(warnings), map[string]string{"Root": root})
	}
}
