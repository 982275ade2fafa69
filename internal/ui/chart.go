package ui

import (
	"math"
	"strings"
	"time"
)

// sparkRunes are the eight block glyphs used for one chart row, lowest
// value first.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values as a fixed-width block chart. Values are
// bucketed down (or stretched) to width columns and scaled to the
// series min/max. A flat series renders as a middle-height row.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	buckets := resample(values, width)

	lo, hi := buckets[0], buckets[0]
	for _, v := range buckets {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range buckets {
		idx := len(sparkRunes) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// resample reduces or stretches values to exactly width samples. When
// reducing, each output column is the mean of its source bucket, so
// short spikes still move the column rather than disappearing.
func resample(values []float64, width int) []float64 {
	if len(values) == width {
		out := make([]float64, width)
		copy(out, values)
		return out
	}

	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		if end > len(values) {
			end = len(values)
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// seriesBounds returns the min, max, and last sample of a series.
func seriesBounds(values []float64) (lo, hi, last float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, values[len(values)-1]
}

// timeRange formats the first and last samples of the time series
// (unix seconds) as a display range. Empty when no time data exists.
func timeRange(times []float64) string {
	if len(times) == 0 {
		return ""
	}
	const layout = "2 Jan 2006"
	first := time.Unix(int64(times[0]), 0)
	last := time.Unix(int64(times[len(times)-1]), 0)
	if first.Equal(last) {
		return first.Format(layout)
	}
	return first.Format(layout) + " – " + last.Format(layout)
}
