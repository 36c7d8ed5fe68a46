package imputation

import (
	"math"
	"math/rand"
)

// A Corrupter synthetically deteriorates a batch of clean
// windows in place, marking missing entries with NaN.
//
// The corruption policy itself (how many entries go
// missing and where) is a collaborator of the training
// loops, not part of them.
type Corrupter func(rows [][]float64, r *rand.Rand)

// UniformDropout returns a Corrupter that independently
// marks each entry missing with the given probability.
func UniformDropout(prob float64) Corrupter {
	return func(rows [][]float64, r *rand.Rand) {
		for _, row := range rows {
			for i := range row {
				if randFloat(r) < prob {
					row[i] = math.NaN()
				}
			}
		}
	}
}

func randFloat(r *rand.Rand) float64 {
	if r == nil {
		return rand.Float64()
	}
	return r.Float64()
}
