package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"rspipe/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  stage TEXT NOT NULL,
  year INTEGER NOT NULL,
  files INTEGER NOT NULL DEFAULT 0,
  succeeded INTEGER NOT NULL DEFAULT 0,
  failed INTEGER NOT NULL DEFAULT 0,
  records INTEGER NOT NULL DEFAULT 0,
  durationMs INTEGER NOT NULL DEFAULT 0,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_trace ON runs(traceId);
CREATE INDEX IF NOT EXISTS idx_runs_stage_year ON runs(stage, year);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(rec internal.RunRecord) error {
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, stage, year, files, succeeded, failed, records, durationMs)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.TraceID, rec.Stage, rec.Year, rec.Files, rec.Succeeded, rec.Failed, rec.Records, rec.DurationMs)
	return err
}

func (d *DB) ListRuns(stage string, limit int) ([]internal.RunRecord, error) {
	rows, err := d.conn.Query(`
SELECT traceId, stage, year, files, succeeded, failed, records, durationMs, createdAt
FROM runs
WHERE (? = '' OR stage = ?)
ORDER BY id DESC LIMIT ?
`, stage, stage, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRecord
	for rows.Next() {
		var rec internal.RunRecord
		if err := rows.Scan(&rec.TraceID, &rec.Stage, &rec.Year, &rec.Files, &rec.Succeeded, &rec.Failed, &rec.Records, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LastRunByStageYear returns the most recent run for one stage and year,
// or nil when the stage never ran.
func (d *DB) LastRunByStageYear(stage string, year int) (*internal.RunRecord, error) {
	var rec internal.RunRecord
	err := d.conn.QueryRow(`
SELECT traceId, stage, year, files, succeeded, failed, records, durationMs, createdAt
FROM runs WHERE stage = ? AND year = ? ORDER BY id DESC LIMIT 1
`, stage, year).Scan(&rec.TraceID, &rec.Stage, &rec.Year, &rec.Files, &rec.Succeeded, &rec.Failed, &rec.Records, &rec.DurationMs, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
