package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/fxdev/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is a span processor that reports finished spans through the logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge creates a bridge that forwards span completions to the logger.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing, spans are only reported once their duration is known.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd reports a completed span. Failed spans are skipped, their errors
// surface through the error return path instead.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}

	if !s.SpanContext().IsValid() {
		return
	}

	if s.Status().Code == codes.Error {
		return
	}

	duration := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	b.logger.Info(fmt.Sprintf("%s finished in %s", s.Name(), duration))
}

// ForceFlush is a no-op, the bridge holds no buffered spans.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown is a no-op.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
