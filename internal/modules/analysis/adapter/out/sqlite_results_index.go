package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"senscal/internal/modules/analysis/domain"
	analysisout "senscal/internal/modules/analysis/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteResultsIndex struct {
	db *sql.DB
}

func NewSQLiteResultsIndex(dbPath string) (analysisout.ResultsIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteResultsIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteResultsIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  region_id TEXT NOT NULL,
  weight_id TEXT NOT NULL,
  status TEXT NOT NULL,
  samples INTEGER NOT NULL,
  mean_pressure REAL NOT NULL,
  cv REAL NOT NULL,
  grade TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

func (s *SQLiteResultsIndex) Upsert(ctx context.Context, record domain.RunRecord) error {
	const stmt = `
INSERT INTO runs (id, region_id, weight_id, status, samples, mean_pressure, cv, grade, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  region_id=excluded.region_id,
  weight_id=excluded.weight_id,
  status=excluded.status,
  samples=excluded.samples,
  mean_pressure=excluded.mean_pressure,
  cv=excluded.cv,
  grade=excluded.grade,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.RegionID,
		record.WeightID,
		record.Status,
		record.Samples,
		record.MeanPressure,
		record.CV,
		string(record.Grade),
		record.StartedAt.Format(timeLayout),
		record.EndedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

func (s *SQLiteResultsIndex) List(ctx context.Context) ([]domain.RunRecord, error) {
	const query = `
SELECT id, region_id, weight_id, status, samples, mean_pressure, cv, grade, started_at, ended_at
FROM runs
ORDER BY started_at;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var record domain.RunRecord
		var grade, startedAt, endedAt string
		if err := rows.Scan(
			&record.ID, &record.RegionID, &record.WeightID, &record.Status,
			&record.Samples, &record.MeanPressure, &record.CV, &grade,
			&startedAt, &endedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		record.Grade = domain.Grade(grade)
		if record.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if record.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
