package imputation

import (
	"path/filepath"
	"testing"
)

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	hist, err := OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	defer hist.Close()

	losses := []float64{0.9, 0.5, 0.25}
	for i, v := range losses {
		if err := hist.Record("imputer", 0, i*100, "train_loss", v); err != nil {
			t.Fatal(err)
		}
	}
	if err := hist.Record("imputer", 0, 0, "val_loss", 1.5); err != nil {
		t.Fatal(err)
	}
	if err := hist.Record("other", 0, 0, "train_loss", 7); err != nil {
		t.Fatal(err)
	}

	values, err := hist.Values("imputer", "train_loss")
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != len(losses) {
		t.Fatalf("expected %d values but got %d", len(losses), len(values))
	}
	for i, v := range losses {
		if values[i] != v {
			t.Errorf("value %d: expected %f but got %f", i, v, values[i])
		}
	}

	if values, err = hist.Values("imputer", "missing"); err != nil {
		t.Fatal(err)
	} else if len(values) != 0 {
		t.Errorf("expected no values but got %d", len(values))
	}
}
