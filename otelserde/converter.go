// Package otelserde provides OpenTelemetry instrumentation, in the form of
// metrics and traces, around a simpleserde.Converter.
package otelserde

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
)

// Attribute keys used by the InstrumentedConverter instrumentation.
const (
	ErrorAttribute     attribute.Key = "error"
	PathAttribute      attribute.Key = "file.path"
	OperationAttribute attribute.Key = "operation"
)

// InstrumentedConverter is a wrapper type over a simpleserde.Converter
// instance to provide instrumentation, in the form of metrics and traces
// using OpenTelemetry.
//
// Use NewInstrumentedConverter for constructing a new instance of this type.
type InstrumentedConverter[R any, S any] struct {
	converter *simpleserde.Converter[R, S]

	tracer         trace.Tracer
	recordPath     bool
	encodeDuration metric.Int64Histogram
	decodeDuration metric.Int64Histogram
	saveDuration   metric.Int64Histogram
	loadDuration   metric.Int64Histogram
}

func (ic *InstrumentedConverter[R, S]) registerMetrics(meter metric.Meter) error {
	var err error

	if ic.encodeDuration, err = meter.Int64Histogram(
		"simpleserde.converter.encode.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of Converter.Encode operations performed."),
	); err != nil {
		return fmt.Errorf("otelserde.InstrumentedConverter: failed to register metric: %w", err)
	}

	if ic.decodeDuration, err = meter.Int64Histogram(
		"simpleserde.converter.decode.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of Converter.Decode operations performed."),
	); err != nil {
		return fmt.Errorf("otelserde.InstrumentedConverter: failed to register metric: %w", err)
	}

	if ic.saveDuration, err = meter.Int64Histogram(
		"simpleserde.converter.save.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of Converter save operations performed."),
	); err != nil {
		return fmt.Errorf("otelserde.InstrumentedConverter: failed to register metric: %w", err)
	}

	if ic.loadDuration, err = meter.Int64Histogram(
		"simpleserde.converter.load.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of Converter load operations performed."),
	); err != nil {
		return fmt.Errorf("otelserde.InstrumentedConverter: failed to register metric: %w", err)
	}

	return nil
}

// NewInstrumentedConverter returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around a simpleserde.Converter.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedConverter[R any, S any](
	converter *simpleserde.Converter[R, S],
	options ...Option,
) (*InstrumentedConverter[R, S], error) {
	cfg := newConfig(options...)

	ic := &InstrumentedConverter[R, S]{
		converter:  converter,
		tracer:     cfg.tracer(),
		recordPath: !cfg.DisablePathAttribute,
	}

	if err := ic.registerMetrics(cfg.meter()); err != nil {
		return nil, err
	}

	return ic, nil
}

// startFileSpan starts the span around a file operation, attaching the
// path attribute unless the converter was configured to withhold it.
func (ic *InstrumentedConverter[R, S]) startFileSpan(ctx context.Context, name, path string) (context.Context, trace.Span) {
	if !ic.recordPath {
		return ic.tracer.Start(ctx, name)
	}

	return ic.tracer.Start(ctx, name, trace.WithAttributes(
		PathAttribute.String(path),
	))
}

// Encode calls the wrapped Converter.Encode method and records metrics and
// traces around it.
func (ic *InstrumentedConverter[R, S]) Encode(ctx context.Context, record R) (result S, err error) {
	ctx, span := ic.tracer.Start(ctx, "Converter.Encode")
	start := time.Now()

	defer func() {
		attributes := []attribute.KeyValue{
			ErrorAttribute.Bool(err != nil),
		}

		duration := time.Since(start)
		ic.encodeDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	result, err = ic.converter.Encode(record)

	return
}

// Decode calls the wrapped Converter.Decode method and records metrics and
// traces around it.
func (ic *InstrumentedConverter[R, S]) Decode(ctx context.Context, simple S) (result R, err error) {
	ctx, span := ic.tracer.Start(ctx, "Converter.Decode")
	start := time.Now()

	defer func() {
		attributes := []attribute.KeyValue{
			ErrorAttribute.Bool(err != nil),
		}

		duration := time.Since(start)
		ic.decodeDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	result, err = ic.converter.Decode(simple)

	return
}

// SaveOne calls the wrapped Converter.SaveOne method and records metrics
// and traces around it.
func (ic *InstrumentedConverter[R, S]) SaveOne(
	ctx context.Context,
	path string,
	record R,
	opts ...simpleserde.Option,
) (err error) {
	ctx, span := ic.startFileSpan(ctx, "Converter.SaveOne", path)
	start := time.Now()

	defer func() {
		attributes := []attribute.KeyValue{
			OperationAttribute.String("save_one"),
			ErrorAttribute.Bool(err != nil),
		}

		duration := time.Since(start)
		ic.saveDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	err = ic.converter.SaveOne(path, record, opts...)

	return
}

// SaveMany calls the wrapped Converter.SaveMany method and records metrics
// and traces around it.
func (ic *InstrumentedConverter[R, S]) SaveMany(
	ctx context.Context,
	path string,
	records []R,
	opts ...simpleserde.Option,
) (err error) {
	ctx, span := ic.startFileSpan(ctx, "Converter.SaveMany", path)
	start := time.Now()

	defer func() {
		attributes := []attribute.KeyValue{
			OperationAttribute.String("save_many"),
			ErrorAttribute.Bool(err != nil),
		}

		duration := time.Since(start)
		ic.saveDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	err = ic.converter.SaveMany(path, records, opts...)

	return
}

// LoadOne calls the wrapped Converter.LoadOne method and records metrics
// and traces around it.
func (ic *InstrumentedConverter[R, S]) LoadOne(
	ctx context.Context,
	path string,
	opts ...simpleserde.Option,
) (result R, err error) {
	ctx, span := ic.startFileSpan(ctx, "Converter.LoadOne", path)
	start := time.Now()

	defer func() {
		attributes := []attribute.KeyValue{
			OperationAttribute.String("load_one"),
			ErrorAttribute.Bool(err != nil),
		}

		duration := time.Since(start)
		ic.loadDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	result, err = ic.converter.LoadOne(path, opts...)

	return
}

// LoadMany calls the wrapped Converter.LoadMany method and records metrics
// and traces around it.
func (ic *InstrumentedConverter[R, S]) LoadMany(
	ctx context.Context,
	path string,
	opts ...simpleserde.Option,
) (result []R, err error) {
	ctx, span := ic.startFileSpan(ctx, "Converter.LoadMany", path)
	start := time.Now()

	defer func() {
		attributes := []attribute.KeyValue{
			OperationAttribute.String("load_many"),
			ErrorAttribute.Bool(err != nil),
		}

		duration := time.Since(start)
		ic.loadDuration.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))

		if err != nil {
			span.RecordError(err)
		}

		span.End()
	}()

	result, err = ic.converter.LoadMany(path, opts...)

	return
}
