// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Build the consolidated price catalog from the yearly archive",
	Long: `Extract walks the archive root for fruit-<year> folders, finds each
fruit's spreadsheet, locates the "Form" header row, and keeps the Fresh and
Frozen price rows beneath it. The catalog is written to the output file
(overwritten) as JSON or YAML.

Fruits with no file in a year, and files that cannot be read, are logged
and skipped. A year folder whose name does not end in a number stops the run.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(viper.GetViper()).Archive

	res, err := prices.Extract(cmd.Context(), cfg, os.Stdout)
	if err != nil {
		return err
	}
	if res.Batch.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d file(s) could not be parsed\n", res.Batch.Failed)
	}
	return nil
}

func init() {
	d := types.DefaultArchiveConfig()
	extractCmd.Flags().String("root", d.RootDir, "archive root containing the year folders")
	extractCmd.Flags().String("output", d.OutputFile, "catalog output file (overwritten)")
	extractCmd.Flags().String("format", string(d.OutputFormat), "output format: json or yaml")
	extractCmd.Flags().String("prefix", d.FolderPrefix, "year folder name prefix (case-insensitive)")
	extractCmd.Flags().Int("format-change-year", d.FormatChangeYear, "year whose files may use dash-separated names")
	extractCmd.Flags().StringSlice("fruits", d.Fruits, "fruits to extract, in order")
	extractCmd.Flags().Int("preview-rows", d.PreviewRows, "rows of each loaded sheet to echo (0 disables)")

	bindFlags(extractCmd, map[string]string{
		"root":               keyRootDir,
		"output":             keyOutputFile,
		"format":             keyOutputFormat,
		"prefix":             keyFolderPrefix,
		"format-change-year": keyFormatChangeYear,
		"fruits":             keyFruits,
		"preview-rows":       keyPreviewRows,
	})

	rootCmd.AddCommand(extractCmd)
}
