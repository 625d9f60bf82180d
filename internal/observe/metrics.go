// Package observe records per-block statistics of the shifter through the
// OpenTelemetry Metrics API.
//
// The engine itself never logs or measures; callers attach [Metrics.Observer]
// through the block observer hook. Tests and the CLI read values back with an
// sdk ManualReader via [Collect].
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cwbudde/algo-psola/dsp/effects/pitch"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/cwbudde/algo-psola"

// Instrument names.
const (
	BlocksName = "psola.blocks"
	PeriodName = "psola.period"
	RatioName  = "psola.realized_ratio"
)

// Values of the "state" attribute on BlocksName.
const (
	stateAttrKey  = "state"
	stateDetected = "detected"
	stateCarried  = "carried"
	statePassthru = "passthrough"
)

// periodBuckets are lag boundaries in samples covering 50..1000 Hz at 44.1 kHz.
var periodBuckets = []float64{
	44, 64, 96, 128, 147, 192, 256, 320, 384, 448, 512, 640, 768, 882, 1024,
}

// ratioBuckets cover the controllable ratio range.
var ratioBuckets = []float64{
	0.25, 0.5, 0.6, 0.7, 0.8, 0.9, 1, 1.1, 1.25, 1.5, 1.75, 2, 3, 4,
}

// Metrics holds the shifter instruments. Instruments are safe for concurrent
// use; the observer closure is not shared across engines.
type Metrics struct {
	// Blocks counts processed blocks. Attribute "state" is one of
	// detected, carried or passthrough.
	Blocks metric.Int64Counter

	// Period records the lag used for each resynthesized block, in samples.
	Period metric.Int64Histogram

	// Ratio records the realized pitch ratio of each block.
	Ratio metric.Float64Histogram
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Blocks, err = m.Int64Counter(BlocksName,
		metric.WithDescription("Processed blocks by estimate state."),
		metric.WithUnit("{block}"),
	); err != nil {
		return nil, err
	}
	if met.Period, err = m.Int64Histogram(PeriodName,
		metric.WithDescription("Detected or carried period of resynthesized blocks."),
		metric.WithUnit("{sample}"),
		metric.WithExplicitBucketBoundaries(periodBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Ratio, err = m.Float64Histogram(RatioName,
		metric.WithDescription("Realized pitch ratio per block."),
		metric.WithExplicitBucketBoundaries(ratioBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Observer returns a block observer recording into m with ctx.
func (m *Metrics) Observer(ctx context.Context) pitch.BlockObserver {
	return func(info pitch.BlockInfo) {
		m.Record(ctx, info)
	}
}

// Record adds one block to the instruments.
func (m *Metrics) Record(ctx context.Context, info pitch.BlockInfo) {
	state := stateDetected
	switch {
	case !info.Enabled:
		state = statePassthru
	case info.Carried:
		state = stateCarried
	}

	m.Blocks.Add(ctx, 1, metric.WithAttributes(attribute.String(stateAttrKey, state)))
	if info.Enabled {
		m.Period.Record(ctx, int64(info.Estimate.Period()))
	}
	m.Ratio.Record(ctx, info.Ratio)
}
