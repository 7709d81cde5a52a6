// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fruit-archive/internal/pricedb"
	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the price store (store, query, export)",
	Long: `Db manages a local SQLite copy of the consolidated catalog. Use
subcommands to load a catalog file, query prices, or export them.`,
}

// --- store subcommand ---

var dbStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Load a catalog file into the price store",
	Long: `Store reads a catalog written by extract (JSON, or YAML for .yaml/.yml
files) and replaces the contents of the price store with it.`,
	RunE: runDBStore,
}

func runDBStore(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(viper.GetViper()).Store

	catalog, err := prices.ReadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}

	store, err := pricedb.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(cmd.Context(), catalog, os.Stdout)
	return err
}

// --- query subcommand ---

var dbQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query stored prices by fruit, form, and year",
	RunE:  runDBQuery,
}

func runDBQuery(cmd *cobra.Command, args []string) error {
	store, err := pricedb.NewStore(pipelineConfig(viper.GetViper()).Store)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(cmd.Context(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(os.Stdout, results, jsonOutput)
}

func formatQueryOutput(w io.Writer, results []pricedb.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []pricedb.QueryResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-16s  %-6s  %-4s  %s\n", "Fruit", "Form", "Year", "Price")
	fmt.Fprintln(w, strings.Repeat("-", 44))

	for _, r := range results {
		fmt.Fprintf(w, "%-16s  %-6s  %-4d  %s\n", r.Fruit, r.Form, r.Year, formatPrice(r.Price))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func formatPrice(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

// --- export subcommand ---

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored prices to YAML or JSON",
	Long: `Export writes the stored prices (or a filtered subset) to
<dir>/index/export.yaml or export.json. Supports the same filter flags as
query.`,
	RunE: runDBExport,
}

func runDBExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := pricedb.NewStore(pipelineConfig(viper.GetViper()).Store)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) pricedb.QueryOptions {
	fruit, _ := cmd.Flags().GetString("fruit")
	form, _ := cmd.Flags().GetString("form")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	limit, _ := cmd.Flags().GetInt("limit")

	return pricedb.QueryOptions{
		Fruit:      fruit,
		Form:       types.Form(form),
		YearFrom:   from,
		YearTo:     to,
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("fruit", "", "filter by fruit")
	cmd.Flags().String("form", "", "filter by form: Fresh or Frozen")
	cmd.Flags().Int("from", 0, "first year to include")
	cmd.Flags().Int("to", 0, "last year to include")
}

func init() {
	d := types.DefaultStoreConfig()

	// Shared flags on the parent command, inherited by subcommands.
	dbCmd.PersistentFlags().String("dir", d.Dir, "base directory for the store (contains index/)")
	dbCmd.PersistentFlags().Int("max-results", d.MaxResults, "default maximum number of query results")
	bindFlags(dbCmd, map[string]string{
		"dir":         keyStoreDir,
		"max-results": keyStoreMaxResults,
	})

	// Store flags.
	dbStoreCmd.Flags().String("catalog", d.CatalogFile, "catalog file written by extract")
	bindFlags(dbStoreCmd, map[string]string{"catalog": keyStoreCatalog})

	// Query flags.
	addFilterFlags(dbQueryCmd)
	dbQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	dbQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	addFilterFlags(dbExportCmd)
	dbExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	dbCmd.AddCommand(dbStoreCmd)
	dbCmd.AddCommand(dbQueryCmd)
	dbCmd.AddCommand(dbExportCmd)

	rootCmd.AddCommand(dbCmd)
}
