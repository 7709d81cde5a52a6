// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fruit-archive/internal/pricedb"
	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/internal/report"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize price increases and the household basket estimate",
	Long: `Report reads the consolidated catalog and prints, for each fruit, the
percentage price change of one form between two years, followed by the
estimated cost of a 5 to 10 item produce basket for a household of 2.51
people in the later year.

Use --db to read prices from the price store instead of the catalog file.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	pc := pipelineConfig(viper.GetViper())
	fromDB, _ := cmd.Flags().GetBool("db")

	catalog, err := loadReportCatalog(cmd.Context(), pc, fromDB)
	if err != nil {
		return err
	}

	r, err := report.Build(catalog, pc.Report)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatReportOutput(os.Stdout, r, jsonOutput)
}

func loadReportCatalog(ctx context.Context, pc types.PipelineConfig, fromDB bool) (*prices.Catalog, error) {
	if !fromDB {
		return prices.ReadCatalog(pc.Report.CatalogFile)
	}

	store, err := pricedb.NewStore(pc.Store)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Catalog(ctx, pricedb.QueryOptions{})
}

func formatReportOutput(w io.Writer, r *report.Report, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "%s price change %d -> %d\n\n", r.Form, r.FromYear, r.ToYear)
	fmt.Fprintf(w, "%-16s  %8s  %8s  %9s\n", "Fruit", "From", "To", "Change")
	fmt.Fprintln(w, strings.Repeat("-", 47))
	for _, inc := range r.Increases {
		fmt.Fprintf(w, "%-16s  %8.2f  %8.2f  %8.1f%%\n", inc.Fruit, inc.From, inc.To, inc.Percent)
	}

	fmt.Fprintf(w, "\nHighest price: %.2f\n", r.MaxPrice)
	if r.Basket == nil {
		fmt.Fprintf(w, "Basket %d: no numeric prices\n", r.ToYear)
		return nil
	}
	fmt.Fprintf(w, "Basket %d: %s (mean %.2f over %d prices)\n",
		r.Basket.Year, r.Basket, r.Basket.Mean, r.Basket.Prices)
	return nil
}

func init() {
	d := types.DefaultReportConfig()
	reportCmd.Flags().String("catalog", d.CatalogFile, "catalog file written by extract")
	reportCmd.Flags().String("form", string(d.Form), "form to compare: Fresh or Frozen")
	reportCmd.Flags().Int("from", d.FromYear, "base year of the comparison")
	reportCmd.Flags().Int("to", d.ToYear, "final year of the comparison and basket year")
	reportCmd.Flags().Float64("household-size", d.HouseholdSize, "people per household")
	reportCmd.Flags().Bool("db", false, "read prices from the price store")
	reportCmd.Flags().Bool("json", false, "output the report as JSON")

	bindFlags(reportCmd, map[string]string{
		"catalog":        keyReportCatalog,
		"form":           keyReportForm,
		"from":           keyReportFromYear,
		"to":             keyReportToYear,
		"household-size": keyReportHousehold,
	})

	rootCmd.AddCommand(reportCmd)
}
