package imputation

import (
	"github.com/unixpickle/anyvec"
)

// BinaryAccuracy measures the fraction of discriminator
// logits that land on the correct side of zero: positive
// for real examples, negative for generated ones.
func BinaryAccuracy(logits anyvec.Vector, wantReal bool) float64 {
	if logits.Len() == 0 {
		return 0
	}
	mask := logits.Copy()
	anyvec.LessThan(mask, mask.Creator().MakeNumeric(0))
	fakeFrac := floatSum(mask) / float64(mask.Len())
	if wantReal {
		return 1 - fakeFrac
	}
	return fakeFrac
}

// floatSum totals a vector of float32 or float64
// components as a float64.
func floatSum(vec anyvec.Vector) float64 {
	switch data := vec.Data().(type) {
	case []float32:
		var sum float32
		for _, x := range data {
			sum += x
		}
		return float64(sum)
	case []float64:
		var sum float64
		for _, x := range data {
			sum += x
		}
		return sum
	default:
		return 0
	}
}
