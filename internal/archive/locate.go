// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Match is the result of looking up one fruit in one year folder.
type Match struct {
	// Found reports whether any pattern matched. A miss is a normal outcome.
	Found bool

	// Path is the selected file when Found is true.
	Path string

	// Pattern is the glob pattern (relative to the folder) that produced Path.
	Pattern string

	// Candidates lists every file matched by Pattern, in lexical order.
	// Path is always Candidates[0].
	Candidates []string
}

// Patterns returns the file name globs tried for fruit, highest precedence
// first. The lower-case name beats the capitalized one, and underscore beats
// space. In formatChangeYear two dash-separated .xlsx patterns are appended
// after the generic ones.
func Patterns(fruit string, year, formatChangeYear int) []string {
	title := capitalize(fruit)
	patterns := []string{
		fruit + "_*.*",
		fruit + " *.*",
		title + "_*.*",
		title + " *.*",
	}
	if year == formatChangeYear {
		patterns = append(patterns,
			title+"-*.xlsx",
			fruit+"-*.xlsx",
		)
	}
	return patterns
}

// Locate evaluates Patterns in order against dir and stops at the first
// pattern with a match. Files matched only by later patterns are ignored,
// so when a folder holds both old- and new-style names for the same fruit
// the old-style file is used.
func Locate(dir, fruit string, year, formatChangeYear int) (Match, error) {
	for _, pattern := range Patterns(fruit, year, formatChangeYear) {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return Match{}, fmt.Errorf("matching %s in %s: %w", pattern, dir, err)
		}
		if len(matches) == 0 {
			continue
		}
		return Match{
			Found:      true,
			Path:       matches[0],
			Pattern:    pattern,
			Candidates: matches,
		}, nil
	}
	return Match{}, nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
