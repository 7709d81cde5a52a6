// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pricedb persists a consolidated price catalog in SQLite so it can
// be filtered, exported, and reported on without re-reading the archive.
package pricedb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

const (
	indexDir          = "index"
	dbFile            = "prices.db"
	defaultMaxResults = 50
)

// Store manages the price SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the database at dir/index/prices.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS prices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fruit TEXT NOT NULL,
			form TEXT NOT NULL,
			year INTEGER NOT NULL,
			price_int INTEGER,
			price_real REAL,
			price_text TEXT,
			seq INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_fruit ON prices(fruit)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_year ON prices(year)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a store run.
type IngestSummary struct {
	Fruits  int
	Records int
}

// Ingest replaces the stored prices with the contents of c in a single
// transaction. Rows keep the catalog's fruit, form, and record order.
func (s *Store) Ingest(ctx context.Context, c *prices.Catalog, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prices`); err != nil {
		return IngestSummary{}, fmt.Errorf("deleting old prices: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO prices (fruit, form, year, price_int, price_real, price_text, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var (
		summary IngestSummary
		seq     int
	)
	for _, fruit := range c.Fruits() {
		var n int
		for _, form := range c.Forms(fruit) {
			for _, rec := range c.Records(fruit, form) {
				pi, pr, pt := priceColumns(rec.Price)
				if _, err := stmt.ExecContext(ctx, fruit, string(form), rec.Year, pi, pr, pt, seq); err != nil {
					return IngestSummary{}, fmt.Errorf("inserting %s %s %d: %w", fruit, form, rec.Year, err)
				}
				seq++
				n++
			}
		}
		fmt.Fprintf(w, "stored %s (%d records)\n", fruit, n)
		summary.Fruits++
		summary.Records += n
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing prices: %w", err)
	}

	fmt.Fprintf(w, "\nstored: %d fruits, %d records\n", summary.Fruits, summary.Records)
	return summary, nil
}

// priceColumns splits a raw price over the three nullable price columns.
func priceColumns(v any) (sql.NullInt64, sql.NullFloat64, sql.NullString) {
	var (
		pi sql.NullInt64
		pr sql.NullFloat64
		pt sql.NullString
	)
	switch p := v.(type) {
	case nil:
	case int64:
		pi = sql.NullInt64{Int64: p, Valid: true}
	case int:
		pi = sql.NullInt64{Int64: int64(p), Valid: true}
	case float64:
		pr = sql.NullFloat64{Float64: p, Valid: true}
	case string:
		pt = sql.NullString{String: p, Valid: true}
	default:
		pt = sql.NullString{String: fmt.Sprint(p), Valid: true}
	}
	return pi, pr, pt
}

// priceValue is the inverse of priceColumns.
func priceValue(pi sql.NullInt64, pr sql.NullFloat64, pt sql.NullString) any {
	switch {
	case pi.Valid:
		return pi.Int64
	case pr.Valid:
		return pr.Float64
	case pt.Valid:
		return pt.String
	default:
		return nil
	}
}
