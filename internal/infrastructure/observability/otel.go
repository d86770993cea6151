package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/greencycle/greencycle/backend"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	PointsAwarded   metric.Float64Counter
	PointsRedeemed  metric.Float64Counter
	EventsPublished metric.Int64Counter
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		return tracerProvider.Shutdown(ctx)
	}, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(scopeName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	pointsAwarded, err := meter.Float64Counter(
		"rewards.points.awarded",
		metric.WithDescription("Points credited to user ledgers"),
	)
	if err != nil {
		return nil, err
	}

	pointsRedeemed, err := meter.Float64Counter(
		"rewards.points.redeemed",
		metric.WithDescription("Points deducted by redemptions"),
	)
	if err != nil {
		return nil, err
	}

	eventsPublished, err := meter.Int64Counter(
		"events.published.count",
		metric.WithDescription("Reward events published to the bus"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:    requestCount,
		RequestDuration: requestDuration,
		PointsAwarded:   pointsAwarded,
		PointsRedeemed:  pointsRedeemed,
		EventsPublished: eventsPublished,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(scopeName)
	return tracer.Start(ctx, spanName)
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records a request metric with attributes
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordPointsAwarded records points credited for a transaction type
func RecordPointsAwarded(ctx context.Context, metrics *Metrics, txType string, points float64) {
	if metrics == nil {
		return
	}
	metrics.PointsAwarded.Add(ctx, points, metric.WithAttributes(
		attribute.String("transaction.type", txType),
	))
}

// RecordPointsRedeemed records points deducted by a redemption
func RecordPointsRedeemed(ctx context.Context, metrics *Metrics, points float64) {
	if metrics == nil {
		return
	}
	metrics.PointsRedeemed.Add(ctx, points)
}

// RecordEventPublished records a published reward event
func RecordEventPublished(ctx context.Context, metrics *Metrics, eventType string) {
	if metrics == nil {
		return
	}
	metrics.EventsPublished.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.type", eventType),
	))
}
