package imputation

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
)

// A GANTrainer jointly trains a generator that imputes
// corrupted windows and a discriminator that scores
// windows as real or generated.
//
// The two parameter sets are disjoint and each network is
// updated by its own Adam state; the two updates of a
// step share no gradients.
type GANTrainer struct {
	Generator     Model
	Discriminator Model
	Rate          float64

	// Labels supplies the discriminator targets.
	// The pure GAN uses NoisyLabels; the partially
	// adversarial variant uses HardLabels.
	Labels Labeler

	// CrossEntropy scores discriminator logits and Recon
	// measures plain reconstruction quality for reports.
	CrossEntropy anynet.Cost
	Recon        anynet.Cost

	genParams  []*anydiff.Var
	discParams []*anydiff.Var
	genAdam    anysgd.Adam
	discAdam   anysgd.Adam
}

// NewGANTrainer creates a GANTrainer with fresh Adam
// states for both networks.
func NewGANTrainer(gen, disc Model, rate float64, labels Labeler) *GANTrainer {
	return &GANTrainer{
		Generator:     gen,
		Discriminator: disc,
		Rate:          rate,
		Labels:        labels,
		CrossEntropy:  anynet.SigmoidCE{},
		Recon:         MAE{},
		genParams:     gen.Parameters(),
		discParams:    disc.Parameters(),
	}
}

// A GANReport carries the per-report discriminator and
// generator quality numbers.
type GANReport struct {
	// RealAccuracy and FakeAccuracy are the fractions of
	// real and generated examples the discriminator
	// classifies correctly.
	RealAccuracy float64
	FakeAccuracy float64

	// ReconLoss is the generator's plain reconstruction
	// loss on the training batch.
	ReconLoss float64
}

// Step runs one joint training step: an update of the
// generator against the discriminator's scores on its
// output, and an update of the discriminator against the
// labeled scores on real and generated examples.
//
// It returns the generator and discriminator losses
// before the updates.
func (g *GANTrainer) Step(b, real *Batch) (genLoss, discLoss float64) {
	c := b.Corrupted.Creator()

	fake := g.Generator.Apply(anydiff.NewConst(b.Corrupted), b.N)

	// Generator: push scores on generated output toward
	// "real". The discriminator's parameters stay fixed in
	// this pass.
	genCost := g.adversarialCost(fake, b.N)
	genGrad := anydiff.NewGrad(g.genParams...)
	propagateOnes(genCost, genGrad)

	// Discriminator: scored against a detached copy of the
	// generated output, so nothing flows back into the
	// generator.
	discCost := g.discriminatorCost(c, fake.Output(), real, b.N)
	discGrad := anydiff.NewGrad(g.discParams...)
	propagateOnes(discCost, discGrad)

	applyGradient(genGrad, &g.genAdam, g.Rate)
	applyGradient(discGrad, &g.discAdam, g.Rate)

	return floatSum(genCost.Output()), floatSum(discCost.Output())
}

// Report evaluates the discriminator's binary accuracy on
// a real and a generated batch, plus the generator's
// plain reconstruction loss, without updating anything.
func (g *GANTrainer) Report(b, real *Batch) GANReport {
	fake := g.Generator.Apply(anydiff.NewConst(b.Corrupted), b.N)
	guessFakes := g.Discriminator.Apply(anydiff.NewConst(fake.Output()), b.N)
	guessReals := g.Discriminator.Apply(anydiff.NewConst(real.Clean), real.N)
	recon := meanCost(g.Recon.Cost(anydiff.NewConst(b.Clean), fake, b.N))
	return GANReport{
		RealAccuracy: BinaryAccuracy(guessReals.Output(), true),
		FakeAccuracy: BinaryAccuracy(guessFakes.Output(), false),
		ReconLoss:    floatSum(recon.Output()),
	}
}

// ReconLoss computes the generator's plain reconstruction
// loss on a batch without updating any parameters.
func (g *GANTrainer) ReconLoss(b *Batch) float64 {
	out := g.Generator.Apply(anydiff.NewConst(b.Corrupted), b.N)
	cost := meanCost(g.Recon.Cost(anydiff.NewConst(b.Clean), out, b.N))
	return floatSum(cost.Output())
}

// adversarialCost is the cross-entropy pushing the
// discriminator's scores on generated output toward the
// "real" label.
func (g *GANTrainer) adversarialCost(fake anydiff.Res, n int) anydiff.Res {
	guesses := g.Discriminator.Apply(fake, n)
	ones := HardLabels{}.RealTargets(guesses.Output().Creator(), guesses.Output().Len())
	return meanCost(g.CrossEntropy.Cost(anydiff.NewConst(ones), guesses, n))
}

// discriminatorCost sums the labeled cross-entropy on a
// detached generated batch and on an independent real
// batch.
func (g *GANTrainer) discriminatorCost(c anyvec.Creator, fakeOut anyvec.Vector,
	real *Batch, nFake int) anydiff.Res {
	guessFakes := g.Discriminator.Apply(anydiff.NewConst(fakeOut.Copy()), nFake)
	guessReals := g.Discriminator.Apply(anydiff.NewConst(real.Clean), real.N)
	fakeTargets := g.Labels.FakeTargets(c, guessFakes.Output().Len())
	realTargets := g.Labels.RealTargets(c, guessReals.Output().Len())
	return anydiff.Add(
		meanCost(g.CrossEntropy.Cost(anydiff.NewConst(fakeTargets), guessFakes, nFake)),
		meanCost(g.CrossEntropy.Cost(anydiff.NewConst(realTargets), guessReals, real.N)),
	)
}
