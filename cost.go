package imputation

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

// MAE evaluates cost as the mean absolute difference
// between the actual and desired output.
//
// It implements anynet.Cost.
type MAE struct{}

// Cost computes, for each row of the batch, the mean
// absolute difference between the actual and desired
// output values.
//
// The absolute value is differentiated as x*sign(x),
// where the sign mask is taken from the forward value.
func (m MAE) Cost(desired, actual anydiff.Res, n int) anydiff.Res {
	c := actual.Output().Creator()
	neg := anydiff.Scale(actual, c.MakeNumeric(-1))
	diff := anydiff.Add(desired, neg)

	sign := diff.Output().Copy()
	anyvec.LessThan(sign, c.MakeNumeric(0))
	sign.Scale(c.MakeNumeric(-2))
	sign.AddScalar(c.MakeNumeric(1))

	abs := anydiff.Mul(diff, anydiff.NewConst(sign))
	numComps := abs.Output().Len() / n
	sum := anydiff.SumCols(&anydiff.Matrix{
		Data: abs,
		Rows: n,
		Cols: numComps,
	})
	return anydiff.Scale(sum, c.MakeNumeric(1/float64(numComps)))
}
