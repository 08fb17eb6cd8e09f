package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"logsight/internal/report"
	"logsight/internal/stats"
)

// Store persists analysis results to SQLite so other tooling can query them.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS summary (
		key TEXT PRIMARY KEY,
		value INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS daily_unique_filenames (
		day TEXT PRIMARY KEY,
		filenames INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS daily_bandwidth (
		day TEXT PRIMARY KEY,
		bytes INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS hourly_requests (
		hour INTEGER PRIMARY KEY,
		requests INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS status_codes (
		code INTEGER PRIMARY KEY,
		requests INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS top_lists (
		list TEXT,
		rank INTEGER,
		key TEXT,
		requests INTEGER,
		PRIMARY KEY (list, rank)
	);`,
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// SaveReport replaces the stored results with the given report, atomically.
func (s *Store) SaveReport(r *report.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"summary", "daily_unique_filenames", "daily_bandwidth", "hourly_requests", "status_codes", "top_lists"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	summary := map[string]int{
		"total_records":   r.TotalRecords,
		"unique_hosts":    r.UniqueHosts,
		"not_found_count": r.NotFoundCount,
	}
	for key, value := range summary {
		if _, err := tx.Exec("INSERT INTO summary (key, value) VALUES (?, ?)", key, value); err != nil {
			return err
		}
	}

	for day, n := range r.DailyUniqueFilenames {
		if _, err := tx.Exec("INSERT INTO daily_unique_filenames (day, filenames) VALUES (?, ?)", day, n); err != nil {
			return err
		}
	}

	for day, b := range r.DailyBandwidth {
		if _, err := tx.Exec("INSERT INTO daily_bandwidth (day, bytes) VALUES (?, ?)", day, b); err != nil {
			return err
		}
	}

	for hour, n := range r.HourlyDistribution {
		if _, err := tx.Exec("INSERT INTO hourly_requests (hour, requests) VALUES (?, ?)", hour, n); err != nil {
			return err
		}
	}

	for code, n := range r.StatusDistribution {
		if _, err := tx.Exec("INSERT INTO status_codes (code, requests) VALUES (?, ?)", code, n); err != nil {
			return err
		}
	}

	lists := map[string][]stats.Count{
		"top_filenames":            r.TopFilenames,
		"top_not_found_filenames":  r.TopNotFoundFilenames,
		"top_not_found_extensions": r.TopNotFoundExtensions,
	}
	stmt, err := tx.Prepare("INSERT INTO top_lists (list, rank, key, requests) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for name, counts := range lists {
		for rank, c := range counts {
			if _, err := stmt.Exec(name, rank+1, c.Key, c.Count); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
