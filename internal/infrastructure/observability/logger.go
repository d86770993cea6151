package observability

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/greencycle/greencycle/backend/pkg/config"
)

// InitLogger configures the process-wide logger and returns it. Pretty
// mode writes human-readable console lines; otherwise JSON lines with
// caller information are emitted for log shippers.
func InitLogger(cfg config.LoggingConfig, serviceName string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	builder := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", serviceName)
	if !cfg.Pretty {
		builder = builder.Caller()
	}

	logger := builder.Logger()
	log.Logger = logger
	return logger
}

// LoggerFromContext returns a logger carrying the trace and span IDs of
// the active span, so request logs can be correlated with traces.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.With().Logger()

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		logger = logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return &logger
}
