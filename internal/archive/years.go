// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive discovers year folders and per-fruit spreadsheet files in
// a yearly price export tree.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// YearFolder is one accepted year directory under the archive root.
type YearFolder struct {
	// Name is the directory name as found on disk (e.g. "Fruit-2021").
	Name string

	// Path is the directory path joined with the archive root.
	Path string

	// Year is the integer parsed from Name.
	Year int
}

// YearParseError reports a year folder whose name does not carry a numeric
// year. It aborts the whole run.
type YearParseError struct {
	Folder string
	Err    error
}

func (e *YearParseError) Error() string {
	return fmt.Sprintf("parsing year from folder %q: %v", e.Folder, e.Err)
}

func (e *YearParseError) Unwrap() error {
	return e.Err
}

// YearFolders returns the subdirectories of root whose name starts with
// prefix (case-insensitive), sorted by name. The first folder whose year
// cannot be parsed stops the listing with a *YearParseError.
func YearFolders(root, prefix string) ([]YearFolder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading archive root %s: %w", root, err)
	}

	lowerPrefix := strings.ToLower(prefix)
	var folders []YearFolder
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(strings.ToLower(name), lowerPrefix) {
			continue
		}

		path := filepath.Join(root, name)
		// os.Stat follows symlinked year folders.
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		year, err := ParseYear(name)
		if err != nil {
			return nil, err
		}
		folders = append(folders, YearFolder{Name: name, Path: path, Year: year})
	}

	return folders, nil
}

// ParseYear returns the integer in the second dash-separated field of a
// folder name: "Fruit-2021" and "fruit-2021-revised" both yield 2021.
func ParseYear(folder string) (int, error) {
	fields := strings.Split(folder, "-")
	if len(fields) < 2 {
		return 0, &YearParseError{Folder: folder, Err: fmt.Errorf("no %q separator", "-")}
	}
	year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, &YearParseError{Folder: folder, Err: err}
	}
	return year, nil
}
