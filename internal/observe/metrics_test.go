package observe

import (
	"context"
	"math"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/cwbudde/algo-psola/dsp/effects/pitch"
	detect "github.com/cwbudde/algo-psola/dsp/pitch"
	"github.com/cwbudde/algo-psola/internal/testutil"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func TestRecordStates(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.Record(ctx, pitch.BlockInfo{Estimate: detect.Detected(200), Enabled: true, Ratio: 1.5})
	m.Record(ctx, pitch.BlockInfo{Estimate: detect.Detected(300), Enabled: true, Carried: true, Ratio: 0.5})
	m.Record(ctx, pitch.BlockInfo{Ratio: 1})

	s, err := Collect(ctx, reader)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := Summary{Blocks: 3, Detected: 1, Carried: 1, Passthrough: 1, MeanPeriod: 250, MeanRatio: 1}
	if s != want {
		t.Fatalf("Summary = %+v, want %+v", s, want)
	}
}

func TestCollectEmpty(t *testing.T) {
	_, reader := newTestMetrics(t)
	s, err := Collect(context.Background(), reader)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if s != (Summary{}) {
		t.Fatalf("Summary = %+v, want zero", s)
	}
}

func TestObserverWiredToShifter(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	p, err := pitch.NewPSOLAShifter(44100, pitch.WithBlockObserver(m.Observer(ctx)))
	if err != nil {
		t.Fatalf("NewPSOLAShifter: %v", err)
	}
	_ = p.SetPitchRatio(1.5)

	in := testutil.Concat(
		testutil.BlockSine(4096.0/200, 0.5, 4096),
		testutil.Silence(4096),
	)
	p.Process(in)

	s, err := Collect(ctx, reader)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if s.Blocks != 2 || s.Detected != 1 || s.Carried != 1 || s.Passthrough != 0 {
		t.Fatalf("Summary = %+v", s)
	}
	if s.MeanPeriod != 200 {
		t.Fatalf("MeanPeriod = %v, want 200", s.MeanPeriod)
	}
	if math.Abs(s.MeanRatio-6096.0/4096.0) > 1e-12 {
		t.Fatalf("MeanRatio = %v", s.MeanRatio)
	}
}
