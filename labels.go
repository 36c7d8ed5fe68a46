package imputation

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// A Labeler produces discriminator target vectors for
// real and generated examples.
//
// The two adversarial loops deliberately use different
// labeling strategies, so the strategy is pluggable
// rather than unified.
type Labeler interface {
	// RealTargets returns n targets for real examples.
	RealTargets(c anyvec.Creator, n int) anyvec.Vector

	// FakeTargets returns n targets for generated
	// examples.
	FakeTargets(c anyvec.Creator, n int) anyvec.Vector
}

// NoisyLabels smooths discriminator targets by drawing
// them uniformly from [0.8, 1.0] for reals and
// [0.0, 0.2] for fakes, damping discriminator confidence.
type NoisyLabels struct {
	// Rand is the noise source.
	// If nil, the global source is used.
	Rand *rand.Rand
}

// RealTargets draws n targets from [0.8, 1.0].
func (n NoisyLabels) RealTargets(c anyvec.Creator, count int) anyvec.Vector {
	return n.draw(c, count, 0.8)
}

// FakeTargets draws n targets from [0.0, 0.2].
func (n NoisyLabels) FakeTargets(c anyvec.Creator, count int) anyvec.Vector {
	return n.draw(c, count, 0)
}

func (n NoisyLabels) draw(c anyvec.Creator, count int, min float64) anyvec.Vector {
	vec := c.MakeVector(count)
	anyvec.Rand(vec, anyvec.Uniform, n.Rand)
	vec.Scale(c.MakeNumeric(0.2))
	vec.AddScalar(c.MakeNumeric(min))
	return vec
}

// HardLabels uses plain {0, 1} discriminator targets.
type HardLabels struct{}

// RealTargets returns n ones.
func (h HardLabels) RealTargets(c anyvec.Creator, n int) anyvec.Vector {
	vec := c.MakeVector(n)
	vec.AddScalar(c.MakeNumeric(1))
	return vec
}

// FakeTargets returns n zeros.
func (h HardLabels) FakeTargets(c anyvec.Creator, n int) anyvec.Vector {
	return c.MakeVector(n)
}
