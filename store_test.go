package imputation

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/unixpickle/anynet/anysgd"
)

var _ anysgd.SampleList = &DataSet{}

func writeTestSeries(t *testing.T, dir, name string, series []float64) {
	t.Helper()
	if err := SaveSeries(filepath.Join(dir, name), series); err != nil {
		t.Fatal(err)
	}
}

func TestSeriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	series := testSeries(50)
	writeTestSeries(t, dir, "series_0", series)

	loaded, err := LoadSeries(filepath.Join(dir, "series_0"))
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(series) {
		t.Fatalf("expected %d values but got %d", len(series), len(loaded))
	}
	for i, x := range series {
		if loaded[i] != x {
			t.Errorf("value %d: expected %f but got %f", i, x, loaded[i])
		}
	}
}

func TestOpenDataSetFiltering(t *testing.T) {
	dir := t.TempDir()
	writeTestSeries(t, dir, "series_1", testSeries(50))
	writeTestSeries(t, dir, "series_0", testSeries(50))
	for _, name := range []string{"readme_training.md", ".gitignore"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ds, err := OpenDataSet(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 files but got %d: %v", ds.Len(), ds.Files)
	}
	if ds.Files[0] != "series_0" || ds.Files[1] != "series_1" {
		t.Errorf("unexpected listing order: %v", ds.Files)
	}
}

func TestOpenDataSetEmpty(t *testing.T) {
	if _, err := OpenDataSet(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
	if _, err := OpenDataSet(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestSampleOther(t *testing.T) {
	ds := &DataSet{Files: []string{"a", "b", "c"}}
	r := rand.New(rand.NewSource(5))
	for i := 0; i < len(ds.Files); i++ {
		for j := 0; j < 100; j++ {
			if name := ds.SampleOther(r, i); name == ds.Files[i] {
				t.Fatalf("drew the excluded file %q", name)
			}
		}
	}
}
