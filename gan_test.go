package imputation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
)

func testModels(c anyvec.Creator, windowLen int) (gen, disc anynet.Net) {
	gen = anynet.Net{
		anynet.NewFC(c, windowLen, 6),
		anynet.Tanh,
		anynet.NewFC(c, 6, windowLen),
	}
	disc = anynet.Net{
		anynet.NewFC(c, windowLen, 6),
		anynet.Tanh,
		anynet.NewFC(c, 6, 1),
	}
	return
}

func testGANBatches(t *testing.T, c anyvec.Creator) (b, real *Batch) {
	t.Helper()
	p := testPreparer(8, 12, UniformDropout(0.3))
	p.Creator = c
	b, err := p.Prepare(testSeries(100))
	if err != nil {
		t.Fatal(err)
	}
	real, err = p.PrepareReal(testSeries(80))
	if err != nil {
		t.Fatal(err)
	}
	return b, real
}

func snapshotParams(m Model) [][]float32 {
	var res [][]float32
	for _, p := range m.Parameters() {
		res = append(res, p.Vector.Data().([]float32))
	}
	return res
}

func paramsChanged(before [][]float32, m Model) bool {
	for i, p := range m.Parameters() {
		data := p.Vector.Data().([]float32)
		for j, x := range data {
			if x != before[i][j] {
				return true
			}
		}
	}
	return false
}

func TestGANStepUpdatesBothNetworks(t *testing.T) {
	c := anyvec32.CurrentCreator()
	gen, disc := testModels(c, 12)
	b, real := testGANBatches(t, c)

	genBefore := snapshotParams(gen)
	discBefore := snapshotParams(disc)

	tr := NewGANTrainer(gen, disc, 0.01, NoisyLabels{Rand: rand.New(rand.NewSource(2))})
	genLoss, discLoss := tr.Step(b, real)

	if math.IsNaN(genLoss) || math.IsNaN(discLoss) {
		t.Fatalf("non-finite losses: %f, %f", genLoss, discLoss)
	}
	if !paramsChanged(genBefore, gen) {
		t.Error("generator parameters did not change")
	}
	if !paramsChanged(discBefore, disc) {
		t.Error("discriminator parameters did not change")
	}
}

func TestGANReport(t *testing.T) {
	c := anyvec32.CurrentCreator()
	gen, disc := testModels(c, 12)
	b, real := testGANBatches(t, c)

	tr := NewGANTrainer(gen, disc, 0.01, NoisyLabels{})
	rep := tr.Report(b, real)

	if rep.RealAccuracy < 0 || rep.RealAccuracy > 1 {
		t.Errorf("real accuracy out of range: %f", rep.RealAccuracy)
	}
	if rep.FakeAccuracy < 0 || rep.FakeAccuracy > 1 {
		t.Errorf("fake accuracy out of range: %f", rep.FakeAccuracy)
	}
	if math.IsNaN(rep.ReconLoss) || rep.ReconLoss < 0 {
		t.Errorf("invalid reconstruction loss: %f", rep.ReconLoss)
	}
}

func TestGANReportDoesNotUpdate(t *testing.T) {
	c := anyvec32.CurrentCreator()
	gen, disc := testModels(c, 12)
	b, real := testGANBatches(t, c)

	genBefore := snapshotParams(gen)
	discBefore := snapshotParams(disc)

	tr := NewGANTrainer(gen, disc, 0.01, NoisyLabels{})
	tr.Report(b, real)
	tr.ReconLoss(b)

	if paramsChanged(genBefore, gen) || paramsChanged(discBefore, disc) {
		t.Error("reporting changed parameters")
	}
}

func TestVanillaStepReducesLoss(t *testing.T) {
	c := anyvec32.CurrentCreator()
	gen, _ := testModels(c, 12)
	b, _ := testGANBatches(t, c)

	tr := NewTrainer(gen, 0.01)
	first := tr.Step(b)
	var last float64
	for i := 0; i < 50; i++ {
		last = tr.Step(b)
	}
	if last >= first {
		t.Errorf("loss did not decrease: %f -> %f", first, last)
	}
}
