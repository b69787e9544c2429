// Package history persists per-run diagnostic counts so trend queries can
// answer "is this codebase getting cleaner" across analyzer runs.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"netlint/internal/analysis"
)

type Store struct {
	db *sql.DB
}

// RunSummary is one recorded analyzer run.
type RunSummary struct {
	ID          string
	Timestamp   time.Time
	UnitCount   int
	Diagnostics int
	Warnings    int
	Infos       int
	ByRule      map[string]int
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores one run's counts and returns the generated run id.
func (s *Store) RecordRun(unitCount int, diags []analysis.Diagnostic) (string, error) {
	id := uuid.NewString()
	ts := time.Now().UTC().Format(time.RFC3339)

	warnings, infos := 0, 0
	byRule := make(map[string]int)
	for _, d := range diags {
		byRule[d.RuleID]++
		if d.Severity >= analysis.SeverityWarning {
			warnings++
		} else {
			infos++
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin run insert: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO runs(id, ts_utc, unit_count, diagnostic_count, warning_count, info_count) VALUES (?, ?, ?, ?, ?, ?)`,
		id, ts, unitCount, len(diags), warnings, infos,
	); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert run: %w", err)
	}

	for ruleID, count := range byRule {
		if _, err := tx.Exec(
			`INSERT INTO run_rules(run_id, rule_id, count) VALUES (?, ?, ?)`,
			id, ruleID, count,
		); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert run rule counts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, ts_utc, unit_count, diagnostic_count, warning_count, info_count
		 FROM runs ORDER BY ts_utc DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.UnitCount, &r.Diagnostics, &r.Warnings, &r.Infos); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			r.Timestamp = parsed
		}
		r.ByRule, err = s.ruleCounts(r.ID)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) ruleCounts(runID string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT rule_id, count FROM run_rules WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run rules: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ruleID string
		var count int
		if err := rows.Scan(&ruleID, &count); err != nil {
			return nil, fmt.Errorf("scan run rule: %w", err)
		}
		counts[ruleID] = count
	}
	return counts, rows.Err()
}
