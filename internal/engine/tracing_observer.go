package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/leengari/tabquery/internal/engine"

// TracingObserver turns lifecycle events into OpenTelemetry spans: one
// "query" span per session with a child span per phase (lex, parse, plan,
// exec).
type TracingObserver struct {
	tracer trace.Tracer

	mu       sync.Mutex
	sessions map[string]*querySpans
}

type querySpans struct {
	ctx   context.Context
	root  trace.Span
	phase trace.Span
}

// NewTracingObserver creates an observer on tp, or on the global provider
// when tp is nil
func NewTracingObserver(tp trace.TracerProvider) *TracingObserver {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingObserver{
		tracer:   tp.Tracer(tracerName),
		sessions: make(map[string]*querySpans),
	}
}

// OnEvent implements the Observer interface
func (to *TracingObserver) OnEvent(event Event) {
	to.mu.Lock()
	defer to.mu.Unlock()

	if event.Type == EventQueryStart {
		sql, _ := event.Data.(string)
		ctx, root := to.tracer.Start(context.Background(), "query",
			trace.WithTimestamp(event.Timestamp),
			trace.WithAttributes(
				attribute.String("session.id", event.SessionID),
				attribute.String("db.statement", sql),
			),
		)
		to.sessions[event.SessionID] = &querySpans{ctx: ctx, root: root}
		return
	}

	qs, ok := to.sessions[event.SessionID]
	if !ok {
		return
	}

	switch event.Type {
	case EventLexStart, EventParseStart, EventPlanStart, EventExecStart:
		_, qs.phase = to.tracer.Start(qs.ctx, phaseName(event.Type),
			trace.WithTimestamp(event.Timestamp))

	case EventLexEnd, EventParseEnd, EventPlanEnd, EventExecEnd:
		if qs.phase == nil {
			return
		}
		qs.phase.SetAttributes(phaseAttributes(event)...)
		qs.phase.End(trace.WithTimestamp(event.Timestamp))
		qs.phase = nil

	case EventError:
		err, _ := event.Data.(error)
		if err == nil {
			err = fmt.Errorf("%v", event.Data)
		}
		if qs.phase != nil {
			qs.phase.RecordError(err)
			qs.phase.SetStatus(codes.Error, err.Error())
			qs.phase.End(trace.WithTimestamp(event.Timestamp))
		}
		qs.root.SetStatus(codes.Error, err.Error())
		qs.root.End(trace.WithTimestamp(event.Timestamp))
		delete(to.sessions, event.SessionID)

	case EventQueryEnd:
		qs.root.SetStatus(codes.Ok, "")
		qs.root.End(trace.WithTimestamp(event.Timestamp))
		delete(to.sessions, event.SessionID)
	}
}

// phaseName maps "lex_start" to "lex"
func phaseName(t EventType) string {
	name, _, _ := strings.Cut(string(t), "_")
	return name
}

func phaseAttributes(event Event) []attribute.KeyValue {
	switch v := event.Data.(type) {
	case int:
		return []attribute.KeyValue{attribute.Int(phaseName(event.Type)+".count", v)}
	case string:
		return []attribute.KeyValue{attribute.String(phaseName(event.Type)+".detail", v)}
	case map[string]interface{}:
		attrs := make([]attribute.KeyValue, 0, len(v))
		for k, val := range v {
			if n, ok := val.(int); ok {
				attrs = append(attrs, attribute.Int(k, n))
			} else {
				attrs = append(attrs, attribute.String(k, fmt.Sprint(val)))
			}
		}
		return attrs
	}
	return nil
}
