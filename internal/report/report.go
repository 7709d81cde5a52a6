// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report derives summary figures from a consolidated price catalog:
// per-fruit price increases between two years and an estimated household
// produce basket for one year.
package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

// ErrNoPrices is returned when a year has no numeric prices to average.
var ErrNoPrices = errors.New("no numeric prices")

// Increase is the relative price change of one fruit between two years.
type Increase struct {
	Fruit string `json:"fruit" yaml:"fruit"`

	// From and To are the prices used. A missing price reads as 0.
	From float64 `json:"from" yaml:"from"`
	To   float64 `json:"to" yaml:"to"`

	// Percent is (To - From) / From * 100, or 0 when From is not positive.
	Percent float64 `json:"percent" yaml:"percent"`
}

// Increases computes the price change between fromYear and toYear for
// every fruit in catalog order, using the first record of form in each
// year. Text prices count as missing.
func Increases(c *prices.Catalog, form types.Form, fromYear, toYear int) []Increase {
	fruits := c.Fruits()
	out := make([]Increase, 0, len(fruits))
	for _, fruit := range fruits {
		recs := c.Records(fruit, form)
		inc := Increase{
			Fruit: fruit,
			From:  priceIn(recs, fromYear),
			To:    priceIn(recs, toYear),
		}
		if inc.From > 0 {
			inc.Percent = (inc.To - inc.From) / inc.From * 100
		}
		out = append(out, inc)
	}
	return out
}

func priceIn(recs []types.PriceRecord, year int) float64 {
	for _, r := range recs {
		if r.Year != year {
			continue
		}
		v, _ := Numeric(r.Price)
		return v
	}
	return 0
}

// BasketRange estimates what a household spends on a produce basket.
type BasketRange struct {
	Year int `json:"year" yaml:"year"`

	// Prices is the number of numeric prices averaged.
	Prices int `json:"prices" yaml:"prices"`

	// Mean is the average price of one item.
	Mean float64 `json:"mean" yaml:"mean"`

	// PerItem is Mean scaled by household size.
	PerItem float64 `json:"per_item" yaml:"per_item"`

	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// String formats the range as "$low - $high".
func (b BasketRange) String() string {
	return fmt.Sprintf("$%.2f - $%.2f", b.Low, b.High)
}

// Basket averages every numeric price recorded for year across fruits and
// forms, scales it by cfg.HouseholdSize, and spans cfg.BasketMin to
// cfg.BasketMax items.
func Basket(c *prices.Catalog, year int, cfg types.ReportConfig) (BasketRange, error) {
	var (
		sum float64
		n   int
	)
	for _, fruit := range c.Fruits() {
		for _, form := range c.Forms(fruit) {
			for _, r := range c.Records(fruit, form) {
				if r.Year != year {
					continue
				}
				if v, ok := Numeric(r.Price); ok {
					sum += v
					n++
				}
			}
		}
	}
	if n == 0 {
		return BasketRange{}, fmt.Errorf("basket for %d: %w", year, ErrNoPrices)
	}

	mean := sum / float64(n)
	perItem := mean * cfg.HouseholdSize
	return BasketRange{
		Year:    year,
		Prices:  n,
		Mean:    mean,
		PerItem: perItem,
		Low:     perItem * float64(cfg.BasketMin),
		High:    perItem * float64(cfg.BasketMax),
	}, nil
}

// MaxPrice returns the largest numeric price in the catalog, or 0.
func MaxPrice(c *prices.Catalog) float64 {
	var top float64
	for _, fruit := range c.Fruits() {
		for _, form := range c.Forms(fruit) {
			for _, r := range c.Records(fruit, form) {
				if v, ok := Numeric(r.Price); ok && v > top {
					top = v
				}
			}
		}
	}
	return top
}

// Numeric converts a raw catalog price to a float. Numeric strings such as
// " 1.25 " are accepted; other text, nil, NaN, and Inf are not.
func Numeric(v any) (float64, bool) {
	var f float64
	switch p := v.(type) {
	case int64:
		f = float64(p)
	case int:
		f = float64(p)
	case float64:
		f = p
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Report groups the figures printed by the report command.
type Report struct {
	Form      types.Form   `json:"form" yaml:"form"`
	FromYear  int          `json:"from_year" yaml:"from_year"`
	ToYear    int          `json:"to_year" yaml:"to_year"`
	Increases []Increase   `json:"increases" yaml:"increases"`
	Basket    *BasketRange `json:"basket,omitempty" yaml:"basket,omitempty"`
	MaxPrice  float64      `json:"max_price" yaml:"max_price"`
}

// Build computes the full report. The basket is taken for cfg.ToYear and
// left nil when that year has no numeric prices.
func Build(c *prices.Catalog, cfg types.ReportConfig) (*Report, error) {
	if cfg.FromYear >= cfg.ToYear {
		return nil, fmt.Errorf("from year %d must be before to year %d", cfg.FromYear, cfg.ToYear)
	}

	r := &Report{
		Form:      cfg.Form,
		FromYear:  cfg.FromYear,
		ToYear:    cfg.ToYear,
		Increases: Increases(c, cfg.Form, cfg.FromYear, cfg.ToYear),
		MaxPrice:  MaxPrice(c),
	}

	basket, err := Basket(c, cfg.ToYear, cfg)
	switch {
	case err == nil:
		r.Basket = &basket
	case !errors.Is(err, ErrNoPrices):
		return nil, err
	}
	return r, nil
}
