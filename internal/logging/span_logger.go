package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanLogger is a span processor that logs every finished span
type SpanLogger struct {
	logger *slog.Logger
}

var _ sdktrace.SpanProcessor = (*SpanLogger)(nil)

// NewSpanLogger logs through logger, or the default logger when nil
func NewSpanLogger(logger *slog.Logger) *SpanLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpanLogger{logger: logger}
}

func (s *SpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span at Debug, or Warn when it ended with an error
func (s *SpanLogger) OnEnd(span sdktrace.ReadOnlySpan) {
	level := slog.LevelDebug
	if span.Status().Code == codes.Error {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("span", span.Name()),
		slog.String("trace_id", span.SpanContext().TraceID().String()),
		slog.String("span_id", span.SpanContext().SpanID().String()),
		slog.Duration("duration", span.EndTime().Sub(span.StartTime())),
	}
	if span.Parent().IsValid() {
		attrs = append(attrs, slog.String("parent_id", span.Parent().SpanID().String()))
	}
	if desc := span.Status().Description; desc != "" {
		attrs = append(attrs, slog.String("status", desc))
	}
	for _, kv := range span.Attributes() {
		attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
	}

	s.logger.LogAttrs(context.Background(), level, "span_end", attrs...)
}

func (s *SpanLogger) Shutdown(context.Context) error { return nil }

func (s *SpanLogger) ForceFlush(context.Context) error { return nil }
