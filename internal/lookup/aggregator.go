// Package lookup queries the independent phone-information sources and
// merges their reports. Sources run in parallel but the merged report always
// follows declared source order, so output is deterministic for any
// completion order.
package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"intake-gateway/internal/platform/metrics"
)

// reportHeader opens every merged report, before the per-source lines.
const reportHeader = "Результаты поиска по номеру телефона:"

// Aggregator fans a phone number out to every source and assembles one
// report. Individual failures degrade to an unavailable line; Aggregate
// itself never fails.
type Aggregator struct {
	sources []Source
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures optional aggregator collaborators.
type Option func(*Aggregator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// NewAggregator builds an aggregator over the given sources. Source order is
// significant: it is the order of lines in the merged report.
func NewAggregator(sources []Source, opts ...Option) (*Aggregator, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}

	a := &Aggregator{
		sources: sources,
		tracer:  otel.Tracer("intake-gateway/lookup"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Aggregate queries all sources concurrently and joins the header plus one
// line per source, in declared order.
func (a *Aggregator) Aggregate(ctx context.Context, phone string) string {
	ctx, span := a.tracer.Start(ctx, "lookup.aggregate")
	defer span.End()

	lines := make([]string, len(a.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			lines[i] = a.query(gctx, src, phone)
			return nil
		})
	}
	// Goroutines only report into their own slot, never an error.
	_ = g.Wait()

	return reportHeader + "\n" + strings.Join(lines, "\n")
}

// query runs one source, recording latency and converting any error or
// panic into the source's unavailable line.
func (a *Aggregator) query(ctx context.Context, src Source, phone string) (line string) {
	defer func() {
		if r := recover(); r != nil {
			if a.logger != nil {
				a.logger.ErrorContext(ctx, "lookup source panicked",
					"source", src.Name(),
					"panic", r,
				)
			}
			line = unavailableLine(src.Name())
		}
	}()

	ctx, span := a.tracer.Start(ctx, "lookup.source",
		trace.WithAttributes(attribute.String("source", src.Name())))
	defer span.End()

	start := time.Now()
	text, err := src.Lookup(ctx, phone)
	if a.metrics != nil {
		a.metrics.ObserveSourceLatency(src.Name(), time.Since(start))
	}

	if err != nil {
		if a.logger != nil {
			a.logger.DebugContext(ctx, "lookup source unavailable",
				"source", src.Name(),
				"error", err,
			)
		}
		return unavailableLine(src.Name())
	}
	return text
}

func unavailableLine(name string) string {
	return fmt.Sprintf("%s: данные временно недоступны", name)
}
