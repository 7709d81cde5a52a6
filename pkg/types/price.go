// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Form is the product form a price was recorded for.
type Form string

const (
	FormFresh  Form = "Fresh"
	FormFrozen Form = "Frozen"
)

// AcceptedForms lists the forms kept in the catalog. Every other label
// (Canned, Juice, Dried, ...) is dropped.
var AcceptedForms = []Form{FormFrozen, FormFresh}

// DefaultFruits is the closed set of fruit identifiers the archive is
// searched for, in processing order.
var DefaultFruits = []string{
	"apples", "apricots", "bananas", "berries_mixed", "blackberries", "blueberries",
	"cantaloupe", "cherries", "cranberries", "dates", "figs",
	"grapefruit", "grapes", "honeydew", "kiwi", "mangoes", "nectarines", "oranges",
	"papaya", "peaches", "pears", "plums", "pomegranate", "raspberries",
	"strawberries", "watermelon",
}

// PriceRecord is one yearly price observation for a fruit in one form.
type PriceRecord struct {
	// Year is the archive year the price was taken from.
	Year int `json:"year" yaml:"year"`

	// Price is the raw cell value: int64 or float64 for numeric cells,
	// string for text cells, nil for empty cells.
	Price any `json:"price" yaml:"price"`
}
