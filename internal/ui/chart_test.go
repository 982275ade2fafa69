package ui

import (
	"reflect"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSparkline_Width(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
	}{
		{"downsample", []float64{1, 2, 3, 4, 5, 6, 7, 8}, 4},
		{"stretch", []float64{1, 2}, 8},
		{"exact", []float64{1, 2, 3}, 3},
		{"single value", []float64{5}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sparkline(tt.values, tt.width)
			if n := utf8.RuneCountInString(got); n != tt.width {
				t.Errorf("sparkline width = %d, want %d (%q)", n, tt.width, got)
			}
		})
	}
}

func TestSparkline_Empty(t *testing.T) {
	if got := sparkline(nil, 10); got != "" {
		t.Errorf("sparkline(nil) = %q, want empty", got)
	}
	if got := sparkline([]float64{1, 2}, 0); got != "" {
		t.Errorf("sparkline(width 0) = %q, want empty", got)
	}
}

func TestSparkline_Extremes(t *testing.T) {
	got := []rune(sparkline([]float64{1, 8}, 2))

	if got[0] != sparkRunes[0] {
		t.Errorf("minimum rendered as %q, want %q", got[0], sparkRunes[0])
	}
	if got[1] != sparkRunes[len(sparkRunes)-1] {
		t.Errorf("maximum rendered as %q, want %q", got[1], sparkRunes[len(sparkRunes)-1])
	}
}

func TestSparkline_FlatSeries(t *testing.T) {
	got := []rune(sparkline([]float64{3, 3, 3}, 3))

	for i := 1; i < len(got); i++ {
		if got[i] != got[0] {
			t.Fatalf("flat series rendered unevenly: %q", string(got))
		}
	}
}

func TestResample_Mean(t *testing.T) {
	got := resample([]float64{1, 3, 5, 7}, 2)
	want := []float64{2, 6}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("resample() = %v, want %v", got, want)
	}
}

func TestSeriesBounds(t *testing.T) {
	lo, hi, last := seriesBounds([]float64{12.5, 11.9, 13.2, 12.1})

	if lo != 11.9 || hi != 13.2 || last != 12.1 {
		t.Errorf("seriesBounds() = %v, %v, %v; want 11.9, 13.2, 12.1", lo, hi, last)
	}
}

func TestTimeRange(t *testing.T) {
	first := time.Date(2023, 1, 12, 10, 0, 0, 0, time.Local).Unix()
	last := time.Date(2023, 1, 30, 18, 0, 0, 0, time.Local).Unix()

	got := timeRange([]float64{float64(first), float64(last)})
	want := "12 Jan 2023 – 30 Jan 2023"

	if got != want {
		t.Errorf("timeRange() = %q, want %q", got, want)
	}
}

func TestTimeRange_Empty(t *testing.T) {
	if got := timeRange(nil); got != "" {
		t.Errorf("timeRange(nil) = %q, want empty", got)
	}
}

func TestNextSeries(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"plato", "temperature"},
		{"temperature", "voltage"},
		{"voltage", "plato"},
		{"unknown", "plato"},
	}

	for _, tt := range tests {
		if got := nextSeries(tt.current); got != tt.want {
			t.Errorf("nextSeries(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}
