// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fruit-archive/pkg/types"
)

// Config keys. Nested keys map to FRUIT_ARCHIVE_<SECTION>_<KEY> env vars.
const (
	keyRootDir          = "archive.root_dir"
	keyOutputFile       = "archive.output_file"
	keyOutputFormat     = "archive.output_format"
	keyFolderPrefix     = "archive.folder_prefix"
	keyFormatChangeYear = "archive.format_change_year"
	keyFruits           = "archive.fruits"
	keyPreviewRows      = "archive.preview_rows"

	keyStoreDir        = "store.dir"
	keyStoreCatalog    = "store.catalog_file"
	keyStoreMaxResults = "store.max_results"

	keyReportCatalog   = "report.catalog_file"
	keyReportForm      = "report.form"
	keyReportFromYear  = "report.from_year"
	keyReportToYear    = "report.to_year"
	keyReportHousehold = "report.household_size"
	keyReportBasketMin = "report.basket_min"
	keyReportBasketMax = "report.basket_max"
)

func setDefaults(v *viper.Viper) {
	a := types.DefaultArchiveConfig()
	v.SetDefault(keyRootDir, a.RootDir)
	v.SetDefault(keyOutputFile, a.OutputFile)
	v.SetDefault(keyOutputFormat, string(a.OutputFormat))
	v.SetDefault(keyFolderPrefix, a.FolderPrefix)
	v.SetDefault(keyFormatChangeYear, a.FormatChangeYear)
	v.SetDefault(keyFruits, a.Fruits)
	v.SetDefault(keyPreviewRows, a.PreviewRows)

	s := types.DefaultStoreConfig()
	v.SetDefault(keyStoreDir, s.Dir)
	v.SetDefault(keyStoreCatalog, s.CatalogFile)
	v.SetDefault(keyStoreMaxResults, s.MaxResults)

	r := types.DefaultReportConfig()
	v.SetDefault(keyReportCatalog, r.CatalogFile)
	v.SetDefault(keyReportForm, string(r.Form))
	v.SetDefault(keyReportFromYear, r.FromYear)
	v.SetDefault(keyReportToYear, r.ToYear)
	v.SetDefault(keyReportHousehold, r.HouseholdSize)
	v.SetDefault(keyReportBasketMin, r.BasketMin)
	v.SetDefault(keyReportBasketMax, r.BasketMax)
}

// pipelineConfig resolves every stage config from flags, env, config file,
// and defaults, in viper's precedence order.
func pipelineConfig(v *viper.Viper) types.PipelineConfig {
	return types.PipelineConfig{
		Archive: types.ArchiveConfig{
			RootDir:          v.GetString(keyRootDir),
			OutputFile:       v.GetString(keyOutputFile),
			OutputFormat:     types.OutputFormat(v.GetString(keyOutputFormat)),
			FolderPrefix:     v.GetString(keyFolderPrefix),
			FormatChangeYear: v.GetInt(keyFormatChangeYear),
			Fruits:           v.GetStringSlice(keyFruits),
			PreviewRows:      v.GetInt(keyPreviewRows),
		},
		Store: types.StoreConfig{
			Dir:         v.GetString(keyStoreDir),
			CatalogFile: v.GetString(keyStoreCatalog),
			MaxResults:  v.GetInt(keyStoreMaxResults),
		},
		Report: types.ReportConfig{
			CatalogFile:   v.GetString(keyReportCatalog),
			Form:          types.Form(v.GetString(keyReportForm)),
			FromYear:      v.GetInt(keyReportFromYear),
			ToYear:        v.GetInt(keyReportToYear),
			HouseholdSize: v.GetFloat64(keyReportHousehold),
			BasketMin:     v.GetInt(keyReportBasketMin),
			BasketMax:     v.GetInt(keyReportBasketMax),
		},
	}
}

// bindFlags binds each named flag of cmd to its config key so that a flag
// set on the command line overrides env and config file values.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		cobra.CheckErr(viper.BindPFlag(key, flag))
	}
}
