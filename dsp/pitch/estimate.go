package pitch

import "strconv"

// Estimate is the result of period detection: either absent or a detected
// lag in samples. The zero value is absent.
type Estimate struct {
	lag int
}

// Absent returns an estimate carrying no period.
func Absent() Estimate { return Estimate{} }

// Detected returns an estimate for lag samples. Non-positive lags are absent.
func Detected(lag int) Estimate {
	if lag <= 0 {
		return Estimate{}
	}
	return Estimate{lag: lag}
}

// Lag returns the detected lag and whether one is present.
func (e Estimate) Lag() (int, bool) { return e.lag, e.lag > 0 }

// Period returns the lag in samples, or 0 when absent.
func (e Estimate) Period() int { return e.lag }

// Valid reports whether a period is present.
func (e Estimate) Valid() bool { return e.lag > 0 }

// Frequency converts the lag to Hz at sampleRate, or returns 0 when absent.
func (e Estimate) Frequency(sampleRate float64) float64 {
	if e.lag <= 0 {
		return 0
	}
	return sampleRate / float64(e.lag)
}

func (e Estimate) String() string {
	if e.lag <= 0 {
		return "absent"
	}
	return "lag=" + strconv.Itoa(e.lag)
}
