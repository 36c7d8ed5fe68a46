package imputation

import (
	"database/sql"
	"time"

	"github.com/unixpickle/essentials"

	_ "modernc.org/sqlite"
)

// A History records the losses reported during training
// in a SQLite file, one row per reported metric.
type History struct {
	db *sql.DB
}

// OpenHistory opens (and if needed creates) a history
// file.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, essentials.AddCtx("open history", err)
	}
	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, essentials.AddCtx("open history", err)
	}
	return h, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) migrate() error {
	_, err := h.db.Exec(`
	CREATE TABLE IF NOT EXISTS loss_history (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  model TEXT NOT NULL,
	  epoch INTEGER NOT NULL,
	  iteration INTEGER NOT NULL,
	  metric TEXT NOT NULL,
	  value REAL NOT NULL,
	  created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lh_model_metric
	  ON loss_history(model, metric);
	`)
	return err
}

// Record appends one reported metric value.
func (h *History) Record(model string, epoch, iteration int, metric string,
	value float64) error {
	_, err := h.db.Exec(
		`INSERT INTO loss_history(model, epoch, iteration, metric, value, created_at)
		 VALUES(?,?,?,?,?,?)`,
		model, epoch, iteration, metric, value, time.Now().Unix(),
	)
	if err != nil {
		return essentials.AddCtx("record history", err)
	}
	return nil
}

// Values returns every recorded value of one metric for a
// model, in recording order.
func (h *History) Values(model, metric string) ([]float64, error) {
	rows, err := h.db.Query(
		`SELECT value FROM loss_history WHERE model=? AND metric=? ORDER BY id`,
		model, metric,
	)
	if err != nil {
		return nil, essentials.AddCtx("read history", err)
	}
	defer rows.Close()
	var res []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, essentials.AddCtx("read history", err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, essentials.AddCtx("read history", err)
	}
	return res, nil
}
