// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"errors"
	"strings"
)

// AnchorText marks the header row of the price table. The match is a
// case-sensitive substring match on the label column, so "Form (units)"
// qualifies and "Information" does not.
const AnchorText = "Form"

// ErrAnchorNotFound is returned when no label cell contains AnchorText.
var ErrAnchorNotFound = errors.New(`no "Form" header row in label column`)

// FindAnchor returns the index of the first row whose label cell is text
// containing AnchorText. Numeric and empty label cells never match.
func FindAnchor(g Grid) (int, error) {
	for i, row := range g {
		if s, ok := row.Label().AsText(); ok && strings.Contains(s, AnchorText) {
			return i, nil
		}
	}
	return -1, ErrAnchorNotFound
}

// DataRegion returns a copy of the rows strictly after anchor, each reduced
// to its label and value cells. Missing cells come back empty. The source
// grid is not modified.
func DataRegion(g Grid, anchor int) Grid {
	start := anchor + 1
	if start < 0 {
		start = 0
	}
	if start >= len(g) {
		return Grid{}
	}

	region := make(Grid, 0, len(g)-start)
	for _, row := range g[start:] {
		region = append(region, Row{row.Label(), row.Value()})
	}
	return region
}
