// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned by Load for extensions it cannot read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Load reads the first worksheet of an Excel workbook (or a CSV file) as a
// headerless Grid. Cell values are read raw, without number formatting, so
// a price stored as 1.2 is returned as 1.2 rather than "$1.20". Workbook
// text cells stay text; CSV fields carry no type and are parsed.
// Legacy .xls files are not supported.
func Load(path string) (Grid, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadWorkbook(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func loadWorkbook(path string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", path)
	}

	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}

	g := make(Grid, len(rows))
	for r, raw := range rows {
		row := make(Row, len(raw))
		for c, value := range raw {
			if value == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
			}
			typ, err := f.GetCellType(sheet, ref)
			if err != nil {
				return nil, fmt.Errorf("reading cell %s of %s: %w", ref, path, err)
			}
			row[c] = workbookCell(typ, value)
		}
		g[r] = row
	}
	return g, nil
}

// workbookCell keeps string-typed cells as text even when they look
// numeric ("1.20", "007"). Only number-typed cells are parsed.
func workbookCell(typ excelize.CellType, raw string) Cell {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return Text(raw)
	default:
		return ParseCell(raw)
	}
}

func loadCSV(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", path, err)
	}
	return FromStrings(rows), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}
