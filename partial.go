package imputation

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

// A PartialTrainer is the partially adversarial variant:
// the generator loss is a convex blend of reconstruction
// and adversarial terms, and the discriminator uses hard
// {0, 1} labels rather than the pure GAN's noisy ones.
//
// This variant is experimental and was never finished
// upstream; its behavior is preserved as-is.
type PartialTrainer struct {
	GANTrainer

	// Weight blends the generator loss:
	//
	//     Weight*recon + (1-Weight)*adversarial
	Weight float64
}

// NewPartialTrainer creates a PartialTrainer with fresh
// Adam states for both networks.
func NewPartialTrainer(gen, disc Model, rate, weight float64) *PartialTrainer {
	return &PartialTrainer{
		GANTrainer: *NewGANTrainer(gen, disc, rate, HardLabels{}),
		Weight:     weight,
	}
}

// Step runs one joint training step with the blended
// generator loss.
//
// It returns the generator and discriminator losses
// before the updates.
func (p *PartialTrainer) Step(b, real *Batch) (genLoss, discLoss float64) {
	c := b.Corrupted.Creator()

	var fakeOut anyvec.Vector
	genCost := anydiff.Pool(p.Generator.Apply(anydiff.NewConst(b.Corrupted), b.N),
		func(fake anydiff.Res) anydiff.Res {
			fakeOut = fake.Output()
			recon := meanCost(p.Recon.Cost(anydiff.NewConst(b.Clean), fake, b.N))
			adv := p.adversarialCost(fake, b.N)
			return anydiff.Add(
				anydiff.Scale(recon, c.MakeNumeric(p.Weight)),
				anydiff.Scale(adv, c.MakeNumeric(1-p.Weight)),
			)
		})
	genGrad := anydiff.NewGrad(p.genParams...)
	propagateOnes(genCost, genGrad)

	discCost := p.discriminatorCost(c, fakeOut, real, b.N)
	discGrad := anydiff.NewGrad(p.discParams...)
	propagateOnes(discCost, discGrad)

	applyGradient(genGrad, &p.genAdam, p.Rate)
	applyGradient(discGrad, &p.discAdam, p.Rate)

	return floatSum(genCost.Output()), floatSum(discCost.Output())
}
