package observe

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Summary is a flattened view of the collected block statistics.
type Summary struct {
	Blocks      int64
	Detected    int64
	Carried     int64
	Passthrough int64
	// MeanPeriod is the mean lag of resynthesized blocks, 0 when none.
	MeanPeriod float64
	// MeanRatio is the mean realized ratio over all blocks, 0 when none.
	MeanRatio float64
}

// Collect reads the current metric state from reader.
func Collect(ctx context.Context, reader *sdkmetric.ManualReader) (Summary, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Summary{}, fmt.Errorf("observe: collect: %w", err)
	}

	var s Summary
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if m.Name != BlocksName {
					continue
				}
				for _, dp := range data.DataPoints {
					v, _ := dp.Attributes.Value(stateAttrKey)
					switch v.AsString() {
					case stateDetected:
						s.Detected += dp.Value
					case stateCarried:
						s.Carried += dp.Value
					case statePassthru:
						s.Passthrough += dp.Value
					}
					s.Blocks += dp.Value
				}
			case metricdata.Histogram[int64]:
				if m.Name == PeriodName {
					s.MeanPeriod = histogramMean(data.DataPoints)
				}
			case metricdata.Histogram[float64]:
				if m.Name == RatioName {
					s.MeanRatio = histogramMean(data.DataPoints)
				}
			}
		}
	}

	return s, nil
}

func histogramMean[N int64 | float64](points []metricdata.HistogramDataPoint[N]) float64 {
	var (
		count uint64
		sum   float64
	)
	for _, dp := range points {
		count += dp.Count
		sum += float64(dp.Sum)
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
