package imputation

import "math"

// A Windower slices a 1-D series into fixed-length
// supervised windows, one per row.
//
// The edge-case policy for short series belongs to the
// Windower: a series shorter than windowLen may yield no
// rows at all.
type Windower func(series []float64, windowLen int) [][]float64

// SlidingWindows returns every contiguous window of
// length windowLen with a stride of one.
//
// Each row aliases its own backing array, so callers may
// mutate rows independently.
func SlidingWindows(series []float64, windowLen int) [][]float64 {
	if windowLen <= 0 || len(series) < windowLen {
		return nil
	}
	rows := make([][]float64, 0, len(series)-windowLen+1)
	for i := 0; i+windowLen <= len(series); i++ {
		row := make([]float64, windowLen)
		copy(row, series[i:i+windowLen])
		rows = append(rows, row)
	}
	return rows
}

// TrimTrailingNonFinite removes non-finite values from
// the right edge of a series.
//
// Interior non-finite values are left alone; upstream
// processing is expected to have dealt with them.
func TrimTrailingNonFinite(series []float64) []float64 {
	end := len(series)
	for end > 0 && !isFinite(series[end-1]) {
		end--
	}
	return series[:end]
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
