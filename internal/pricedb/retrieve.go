// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricedb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

// QueryOptions holds filters for price queries. Zero values do not filter.
type QueryOptions struct {
	Fruit string
	Form  types.Form

	// YearFrom and YearTo bound the year inclusively.
	YearFrom int
	YearTo   int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Fruit == "" && q.Form == "" && q.YearFrom == 0 && q.YearTo == 0
}

// QueryResult is one stored price row.
type QueryResult struct {
	Fruit string     `json:"fruit" yaml:"fruit"`
	Form  types.Form `json:"form" yaml:"form"`
	Year  int        `json:"year" yaml:"year"`
	Price any        `json:"price" yaml:"price"`
}

// Retrieve returns stored prices matching opts in catalog order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT fruit, form, year, price_int, price_real, price_text
		FROM prices
		WHERE 1=1`)

	if opts.Fruit != "" {
		qb.WriteString(` AND fruit = ?`)
		args = append(args, opts.Fruit)
	}
	if opts.Form != "" {
		qb.WriteString(` AND form = ?`)
		args = append(args, string(opts.Form))
	}
	if opts.YearFrom != 0 {
		qb.WriteString(` AND year >= ?`)
		args = append(args, opts.YearFrom)
	}
	if opts.YearTo != 0 {
		qb.WriteString(` AND year <= ?`)
		args = append(args, opts.YearTo)
	}

	qb.WriteString(` ORDER BY seq LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying prices: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr   QueryResult
			form string
			pi   sql.NullInt64
			pr   sql.NullFloat64
			pt   sql.NullString
		)
		if err := rows.Scan(&qr.Fruit, &form, &qr.Year, &pi, &pr, &pt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Form = types.Form(form)
		qr.Price = priceValue(pi, pr, pt)
		results = append(results, qr)
	}
	return results, rows.Err()
}

// Catalog rebuilds an ordered catalog from the rows matching opts.
// MaxResults is ignored.
func (s *Store) Catalog(ctx context.Context, opts QueryOptions) (*prices.Catalog, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, err
	}

	c := prices.NewCatalog()
	for _, r := range results {
		c.Add(r.Fruit, r.Form, types.PriceRecord{Year: r.Year, Price: r.Price})
	}
	return c, nil
}
