package imputation

import (
	"errors"
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// A Batch is a packed pair of window batches: the clean
// windows and a corrupted copy with missing entries
// replaced by a placeholder value.
//
// Both vectors pack N rows of WindowLen timesteps with a
// single feature per timestep, so models apply them with
// a batch size of N over rows of length WindowLen.
type Batch struct {
	N         int
	WindowLen int

	Clean     anyvec.Vector
	Corrupted anyvec.Vector
}

// A Preparer turns raw series into training batches.
//
// It is a pure transform over in-memory slices: trimming,
// windowing, subsampling, corruption, and placeholder
// substitution happen here, but no I/O.
type Preparer struct {
	Creator anyvec.Creator
	Conf    *Config

	// Window slices a series into fixed-length rows.
	// If nil, SlidingWindows is used.
	Window Windower

	// Corrupt marks entries of a batch as missing.
	// It may be nil for PrepareReal-only use.
	Corrupt Corrupter

	// Rand is the source for subsampling and corruption.
	// If nil, the global source is used.
	Rand *rand.Rand
}

// Prepare builds a training batch from one raw series.
//
// The corrupted copy never contains non-finite values:
// every entry the Corrupter marked missing (and any other
// non-finite leftover) is replaced by Conf.Placeholder.
func (p *Preparer) Prepare(series []float64) (*Batch, error) {
	clean, err := p.sample(series)
	if err != nil {
		return nil, err
	}

	corrupted := make([][]float64, len(clean))
	for i, row := range clean {
		cp := make([]float64, len(row))
		copy(cp, row)
		corrupted[i] = cp
	}
	if p.Corrupt != nil {
		p.Corrupt(corrupted, p.Rand)
	}
	for _, row := range corrupted {
		for i, x := range row {
			if !isFinite(x) {
				row[i] = p.Conf.Placeholder
			}
		}
	}

	return &Batch{
		N:         len(clean),
		WindowLen: p.Conf.WindowLen,
		Clean:     p.pack(clean),
		Corrupted: p.pack(corrupted),
	}, nil
}

// PrepareReal builds an unmodified batch from one raw
// series, using the same windowing and subsampling as
// Prepare but no corruption.
func (p *Preparer) PrepareReal(series []float64) (*Batch, error) {
	clean, err := p.sample(series)
	if err != nil {
		return nil, err
	}
	return &Batch{
		N:         len(clean),
		WindowLen: p.Conf.WindowLen,
		Clean:     p.pack(clean),
	}, nil
}

func (p *Preparer) sample(series []float64) ([][]float64, error) {
	window := p.Window
	if window == nil {
		window = SlidingWindows
	}
	rows := window(TrimTrailingNonFinite(series), p.Conf.WindowLen)
	if len(rows) == 0 {
		return nil, errors.New("prepare batch: series yields no windows")
	}

	n := p.Conf.BatchSize
	if n > len(rows) || n == 0 {
		n = len(rows)
	}
	perm := randPerm(p.Rand, len(rows))
	sample := make([][]float64, n)
	for i := 0; i < n; i++ {
		sample[i] = rows[perm[i]]
	}
	return sample, nil
}

func (p *Preparer) pack(rows [][]float64) anyvec.Vector {
	joined := make([]float64, 0, len(rows)*p.Conf.WindowLen)
	for _, row := range rows {
		joined = append(joined, row...)
	}
	return p.Creator.MakeVectorData(p.Creator.MakeNumericList(joined))
}

func randPerm(r *rand.Rand, n int) []int {
	if r == nil {
		return rand.Perm(n)
	}
	return r.Perm(n)
}
