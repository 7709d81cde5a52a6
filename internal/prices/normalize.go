// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prices

import (
	"strings"

	"github.com/pdiddy/fruit-archive/internal/sheet"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

// CleanForm strips every character that is not an ASCII letter and trims
// the result, so footnote markers and digits fall away: "Fresh1" → "Fresh",
// "Frozen 2/" → "Frozen". Cleaning a clean label returns it unchanged.
func CleanForm(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') {
			b.WriteByte(ch)
		}
	}
	return strings.TrimSpace(b.String())
}

// AcceptedForm reports whether a cleaned label is exactly one of
// types.AcceptedForms.
func AcceptedForm(label string) (types.Form, bool) {
	for _, f := range types.AcceptedForms {
		if label == string(f) {
			return f, true
		}
	}
	return "", false
}

// Normalize appends one record per accepted row of region to c and returns
// the number of records added. The label cell is rendered as text and
// cleaned; the value cell is stored as is.
func Normalize(c *Catalog, fruit string, year int, region sheet.Grid) int {
	added := 0
	for _, row := range region {
		form, ok := AcceptedForm(CleanForm(row.Label().String()))
		if !ok {
			continue
		}
		c.Add(fruit, form, types.PriceRecord{Year: year, Price: row.Value().Value()})
		added++
	}
	return added
}
