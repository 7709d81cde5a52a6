// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// OutputFormat selects the encoding of the consolidated catalog file.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

const (
	// DefaultRootDir is the archive root holding one folder per year.
	DefaultRootDir = "./Datasets"

	// DefaultOutputFile is where the consolidated catalog is written.
	DefaultOutputFile = "selected_fruits_data.json"

	// DefaultFolderPrefix selects year folders (compared case-insensitively).
	DefaultFolderPrefix = "fruit-"

	// DefaultFormatChangeYear is the year whose exports switched to
	// dash-separated file names such as "Apples-2022.xlsx".
	DefaultFormatChangeYear = 2022

	// DefaultPreviewRows is the number of grid rows echoed for each loaded file.
	DefaultPreviewRows = 5
)

// ArchiveConfig holds settings for the extraction stage.
type ArchiveConfig struct {
	// RootDir is the directory containing the year folders.
	RootDir string `json:"root_dir" yaml:"root_dir"`

	// OutputFile is the path of the consolidated catalog. It is overwritten.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// OutputFormat selects json (default) or yaml.
	OutputFormat OutputFormat `json:"output_format" yaml:"output_format"`

	// FolderPrefix is the year folder name prefix, e.g. "fruit-".
	FolderPrefix string `json:"folder_prefix" yaml:"folder_prefix"`

	// FormatChangeYear enables the extra dash-separated file patterns.
	FormatChangeYear int `json:"format_change_year" yaml:"format_change_year"`

	// Fruits lists the fruit identifiers to look for, in processing order.
	Fruits []string `json:"fruits" yaml:"fruits"`

	// PreviewRows is how many rows of each loaded grid are logged (0 disables).
	PreviewRows int `json:"preview_rows" yaml:"preview_rows"`
}

// DefaultArchiveConfig returns the fixed settings the extraction has always
// run with.
func DefaultArchiveConfig() ArchiveConfig {
	fruits := make([]string, len(DefaultFruits))
	copy(fruits, DefaultFruits)
	return ArchiveConfig{
		RootDir:          DefaultRootDir,
		OutputFile:       DefaultOutputFile,
		OutputFormat:     FormatJSON,
		FolderPrefix:     DefaultFolderPrefix,
		FormatChangeYear: DefaultFormatChangeYear,
		Fruits:           fruits,
		PreviewRows:      DefaultPreviewRows,
	}
}

// Validate reports configuration values the pipeline cannot run with.
func (c ArchiveConfig) Validate() error {
	var errs []error
	if c.RootDir == "" {
		errs = append(errs, errors.New("root directory is required"))
	}
	if c.OutputFile == "" {
		errs = append(errs, errors.New("output file is required"))
	}
	if c.FolderPrefix == "" {
		errs = append(errs, errors.New("folder prefix is required"))
	}
	if len(c.Fruits) == 0 {
		errs = append(errs, errors.New("at least one fruit is required"))
	}
	switch c.OutputFormat {
	case FormatJSON, FormatYAML, "":
	default:
		errs = append(errs, fmt.Errorf("unsupported output format %q: use json or yaml", c.OutputFormat))
	}
	return errors.Join(errs...)
}

// StoreConfig holds settings for the SQLite price store.
type StoreConfig struct {
	// Dir is the base directory for the store (contains index/).
	Dir string `json:"dir" yaml:"dir"`

	// CatalogFile is the consolidated catalog loaded by "db store".
	CatalogFile string `json:"catalog_file" yaml:"catalog_file"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DefaultStoreConfig returns a store rooted at ./data reading the default
// catalog file.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Dir:         "data",
		CatalogFile: DefaultOutputFile,
		MaxResults:  50,
	}
}

// ReportConfig holds settings for the price report.
type ReportConfig struct {
	// CatalogFile is the consolidated catalog the report reads.
	CatalogFile string `json:"catalog_file" yaml:"catalog_file"`

	// Form selects which form's prices are compared (default Fresh).
	Form Form `json:"form" yaml:"form"`

	// FromYear and ToYear bound the price increase comparison.
	FromYear int `json:"from_year" yaml:"from_year"`
	ToYear   int `json:"to_year" yaml:"to_year"`

	// HouseholdSize scales the mean price to a household (default 2.51).
	HouseholdSize float64 `json:"household_size" yaml:"household_size"`

	// BasketMin and BasketMax are the item counts bounding the basket range.
	BasketMin int `json:"basket_min" yaml:"basket_min"`
	BasketMax int `json:"basket_max" yaml:"basket_max"`
}

// DefaultReportConfig returns the report settings used by the published charts.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		CatalogFile:   DefaultOutputFile,
		Form:          FormFresh,
		FromYear:      2013,
		ToYear:        2022,
		HouseholdSize: 2.51,
		BasketMin:     5,
		BasketMax:     10,
	}
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Report  ReportConfig  `json:"report" yaml:"report"`
}
