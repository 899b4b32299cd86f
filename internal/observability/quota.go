package observability

import (
	"context"
	"time"

	"pressroom/internal/quota"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedQuota wraps a quota.Store with OpenTelemetry tracing and
// metrics, counting admission decisions per outcome.
type InstrumentedQuota struct {
	inner     quota.Store
	tracer    trace.Tracer
	decisions metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewInstrumentedQuota creates a quota wrapper that records a span per check,
// check latency, and an admitted/throttled decision counter.
func NewInstrumentedQuota(inner quota.Store) (*InstrumentedQuota, error) {
	tracer := otel.Tracer("pressroom/quota")
	meter := otel.Meter("pressroom/quota")

	decisions, err := meter.Int64Counter(
		"quota.decisions",
		metric.WithDescription("Number of quota admission decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"quota.check.duration",
		metric.WithDescription("Duration of quota checks in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &InstrumentedQuota{
		inner:     inner,
		tracer:    tracer,
		decisions: decisions,
		duration:  duration,
	}, nil
}

func (q *InstrumentedQuota) Check(ctx context.Context, key string, limit quota.Limit) (quota.Decision, error) {
	ctx, span := q.tracer.Start(ctx, "quota.Check",
		trace.WithAttributes(attribute.String("quota.key", key)),
	)
	start := time.Now()

	decision, err := q.inner.Check(ctx, key, limit)

	q.duration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		outcome := "admitted"
		if !decision.Allowed {
			outcome = "throttled"
		}
		q.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		span.SetAttributes(attribute.Bool("quota.allowed", decision.Allowed))
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	return decision, err
}

func (q *InstrumentedQuota) Close() error {
	return q.inner.Close()
}
