package imputation

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

// Non-data files that may live next to the series files.
var skipNames = map[string]bool{
	"readme_training.md":   true,
	"readme_validation.md": true,
	".gitignore":           true,
}

// A DataSet is a directory of serialized series, one file
// per series.
//
// It implements anysgd.SampleList so the file order can
// be shuffled with anysgd.Shuffle.
type DataSet struct {
	Dir   string
	Files []string
}

// OpenDataSet lists the series files in a directory,
// filtering out known non-data files.
func OpenDataSet(dir string) (*DataSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, essentials.AddCtx("open data set", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || skipNames[e.Name()] {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("open data set: no series files in %s", dir)
	}
	sort.Strings(files)
	return &DataSet{Dir: dir, Files: files}, nil
}

// Len returns the number of series files.
func (d *DataSet) Len() int {
	return len(d.Files)
}

// Swap swaps two files in the listing order.
func (d *DataSet) Swap(i, j int) {
	d.Files[i], d.Files[j] = d.Files[j], d.Files[i]
}

// Slice generates a copy of a subset of the listing.
func (d *DataSet) Slice(i, j int) anysgd.SampleList {
	return &DataSet{
		Dir:   d.Dir,
		Files: append([]string{}, d.Files[i:j]...),
	}
}

// Load reads one series by file name.
func (d *DataSet) Load(name string) ([]float64, error) {
	return LoadSeries(filepath.Join(d.Dir, name))
}

// Sample draws a random file name.
func (d *DataSet) Sample(r *rand.Rand) string {
	return d.Files[randIntn(r, len(d.Files))]
}

// SampleOther draws a random file name different from the
// one at index i.
//
// The data set must contain at least two files.
func (d *DataSet) SampleOther(r *rand.Rand, i int) string {
	j := randIntn(r, len(d.Files)-1)
	if j >= i {
		j++
	}
	return d.Files[j]
}

// LoadSeries reads a series stored as a gonum vector
// blob.
func LoadSeries(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, essentials.AddCtx("load series", err)
	}
	defer f.Close()
	var vec mat.VecDense
	if _, err := vec.UnmarshalBinaryFrom(f); err != nil {
		return nil, essentials.AddCtx("load series "+path, err)
	}
	res := make([]float64, vec.Len())
	for i := range res {
		res[i] = vec.AtVec(i)
	}
	return res, nil
}

// SaveSeries writes a series as a gonum vector blob, the
// format LoadSeries reads.
func SaveSeries(path string, series []float64) (err error) {
	defer essentials.AddCtxTo("save series", &err)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	vec := mat.NewVecDense(len(series), append([]float64{}, series...))
	if _, err := vec.MarshalBinaryTo(f); err != nil {
		return err
	}
	return f.Sync()
}

func randIntn(r *rand.Rand, n int) int {
	if r == nil {
		return rand.Intn(n)
	}
	return r.Intn(n)
}
