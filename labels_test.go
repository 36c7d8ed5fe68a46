package imputation

import (
	"math/rand"
	"testing"

	"github.com/unixpickle/anyvec/anyvec32"
)

func TestNoisyLabelRanges(t *testing.T) {
	c := anyvec32.CurrentCreator()
	l := NoisyLabels{Rand: rand.New(rand.NewSource(3))}
	for i := 0; i < 50; i++ {
		for _, x := range l.RealTargets(c, 32).Data().([]float32) {
			if x < 0.8 || x > 1.0 {
				t.Fatalf("real target out of [0.8, 1.0]: %f", x)
			}
		}
		for _, x := range l.FakeTargets(c, 32).Data().([]float32) {
			if x < 0.0 || x > 0.2 {
				t.Fatalf("fake target out of [0.0, 0.2]: %f", x)
			}
		}
	}
}

func TestHardLabels(t *testing.T) {
	c := anyvec32.CurrentCreator()
	for _, x := range (HardLabels{}).RealTargets(c, 8).Data().([]float32) {
		if x != 1 {
			t.Fatalf("real target is not 1: %f", x)
		}
	}
	for _, x := range (HardLabels{}).FakeTargets(c, 8).Data().([]float32) {
		if x != 0 {
			t.Fatalf("fake target is not 0: %f", x)
		}
	}
}
