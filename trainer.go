package imputation

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anysgd"
)

// A Trainer runs gradient steps for the plain
// autoencoder: one network, one optimizer, mean absolute
// error between the clean batch and the reconstruction of
// its corrupted copy.
type Trainer struct {
	Model Model
	Cost  anynet.Cost
	Rate  float64

	params []*anydiff.Var
	adam   anysgd.Adam
}

// NewTrainer creates a Trainer with an MAE cost and a
// fresh Adam state.
func NewTrainer(model Model, rate float64) *Trainer {
	return &Trainer{
		Model:  model,
		Cost:   MAE{},
		Rate:   rate,
		params: model.Parameters(),
	}
}

// Step runs one gradient update on a batch and returns
// the training loss before the update.
func (t *Trainer) Step(b *Batch) float64 {
	cost := t.cost(b)
	grad := anydiff.NewGrad(t.params...)
	propagateOnes(cost, grad)
	applyGradient(grad, &t.adam, t.Rate)
	return floatSum(cost.Output())
}

// Loss computes the loss on a batch without updating any
// parameters.
func (t *Trainer) Loss(b *Batch) float64 {
	return floatSum(t.cost(b).Output())
}

func (t *Trainer) cost(b *Batch) anydiff.Res {
	out := t.Model.Apply(anydiff.NewConst(b.Corrupted), b.N)
	return meanCost(t.Cost.Cost(anydiff.NewConst(b.Clean), out, b.N))
}

// meanCost averages a per-row cost vector down to a
// single component.
func meanCost(cost anydiff.Res) anydiff.Res {
	c := cost.Output().Creator()
	total := anydiff.Sum(cost)
	return anydiff.Scale(total, c.MakeNumeric(1/float64(cost.Output().Len())))
}

// propagateOnes back-propagates a scalar cost with a unit
// upstream vector into the gradient.
func propagateOnes(cost anydiff.Res, grad anydiff.Grad) {
	c := cost.Output().Creator()
	upstream := c.MakeVector(cost.Output().Len())
	upstream.AddScalar(c.MakeNumeric(1))
	cost.Propagate(upstream, grad)
}

// applyGradient transforms a gradient through the
// optimizer, scales it by the negative learning rate, and
// adds it to the variables.
func applyGradient(grad anydiff.Grad, adam *anysgd.Adam, rate float64) {
	out := adam.Transform(grad)
	scaleGradient(out, -rate)
	out.AddToVars()
}

func scaleGradient(g anydiff.Grad, s float64) {
	for _, v := range g {
		g.Scale(v.Creator().MakeNumeric(s))
		return
	}
}
