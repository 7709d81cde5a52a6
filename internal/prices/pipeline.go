// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prices builds the consolidated fruit price catalog from a yearly
// spreadsheet archive.
//
// The pipeline is a single sequential pass: year folders in name order,
// then fruits in configured order. Each (year, fruit) lookup ends in one
// Outcome; anything other than OutcomeParsed is logged and skipped.
package prices

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/fruit-archive/internal/archive"
	"github.com/pdiddy/fruit-archive/internal/sheet"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

// Outcome is the result of processing one fruit in one year folder.
type Outcome string

const (
	// OutcomeParsed means a file was found, loaded, and normalized.
	OutcomeParsed Outcome = "parsed"
	// OutcomeNotFound means no file name matched; the fruit is skipped.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeFailed means the file could not be read or had no anchor row.
	OutcomeFailed Outcome = "failed"
)

// BatchResult holds the outcome counts of an extraction run.
type BatchResult struct {
	Years    int
	Parsed   int
	NotFound int
	Failed   int
	Records  int
}

// Total returns the number of (year, fruit) lookups performed.
func (r BatchResult) Total() int {
	return r.Parsed + r.NotFound + r.Failed
}

// HasFailures reports whether any file failed to load or parse.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Result is the catalog built by Run with its batch summary.
type Result struct {
	Catalog *Catalog
	Batch   BatchResult
}

// Run walks cfg.RootDir and builds the catalog. Progress lines go to w.
// A malformed year folder or an unreadable root aborts the run; per-file
// problems are logged and counted in the batch result. Run does not write
// the catalog; see Extract.
func Run(ctx context.Context, cfg types.ArchiveConfig, w io.Writer) (*Result, error) {
	folders, err := archive.YearFolders(cfg.RootDir, cfg.FolderPrefix)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	var batch BatchResult

	for _, folder := range folders {
		fmt.Fprintf(w, "processing year: %d\n", folder.Year)
		batch.Years++

		for _, fruit := range cfg.Fruits {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			outcome, added := ProcessFruit(catalog, folder, fruit, cfg, w)
			switch outcome {
			case OutcomeParsed:
				batch.Parsed++
				batch.Records += added
			case OutcomeNotFound:
				batch.NotFound++
			case OutcomeFailed:
				batch.Failed++
			}
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d years, %d parsed, %d not found, %d failed, %d records\n",
		batch.Years, batch.Parsed, batch.NotFound, batch.Failed, batch.Records)

	return &Result{Catalog: catalog, Batch: batch}, nil
}

// ProcessFruit locates, loads, and normalizes the file for one fruit in one
// year folder, appending accepted rows to c. It returns the outcome and the
// number of records added.
func ProcessFruit(c *Catalog, folder archive.YearFolder, fruit string, cfg types.ArchiveConfig, w io.Writer) (Outcome, int) {
	match, err := archive.Locate(folder.Path, fruit, folder.Year, cfg.FormatChangeYear)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s in %s (%v)\n", fruit, folder.Name, err)
		return OutcomeFailed, 0
	}

	fmt.Fprintf(w, "looking for %s in %s: found %v\n", fruit, folder.Name, match.Candidates)
	if !match.Found {
		fmt.Fprintf(w, "skipped: %s (not found in %s)\n", fruit, folder.Name)
		return OutcomeNotFound, 0
	}

	added, err := extractFile(c, match.Path, fruit, folder.Year, cfg.PreviewRows, w)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", match.Path, err)
		return OutcomeFailed, 0
	}

	fmt.Fprintf(w, "parsed:  %s (%d records)\n", match.Path, added)
	return OutcomeParsed, added
}

func extractFile(c *Catalog, path, fruit string, year, previewRows int, w io.Writer) (int, error) {
	grid, err := sheet.Load(path)
	if err != nil {
		return 0, err
	}
	if previewRows > 0 {
		writePreview(w, path, grid.Head(previewRows))
	}

	anchor, err := sheet.FindAnchor(grid)
	if err != nil {
		return 0, err
	}
	return Normalize(c, fruit, year, sheet.DataRegion(grid, anchor)), nil
}

func writePreview(w io.Writer, path string, head sheet.Grid) {
	fmt.Fprintf(w, "preview %s:\n", path)
	for i, row := range head {
		fmt.Fprintf(w, "  %d:", i)
		for _, cell := range row {
			fmt.Fprintf(w, " %q", cell.String())
		}
		fmt.Fprintln(w)
	}
}

// Extract runs the pipeline and writes the catalog to cfg.OutputFile.
// The file is written even when some lookups failed.
func Extract(ctx context.Context, cfg types.ArchiveConfig, w io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid archive config: %w", err)
	}

	res, err := Run(ctx, cfg, w)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", cfg.RootDir, err)
	}

	if err := WriteCatalog(cfg.OutputFile, res.Catalog, cfg.OutputFormat); err != nil {
		return res, err
	}
	fmt.Fprintf(w, "Selected fruits data successfully saved to %s\n", cfg.OutputFile)
	return res, nil
}
