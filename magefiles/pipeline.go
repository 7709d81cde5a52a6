//go:build mage

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/pdiddy/fruit-archive/internal/pricedb"
	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/internal/report"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

// Extract builds selected_fruits_data.json from ./Datasets with the default settings.
func Extract(ctx context.Context) error {
	mg.Deps(Init)
	_, err := prices.Extract(ctx, types.DefaultArchiveConfig(), os.Stdout)
	return err
}

// Store loads the extracted catalog into data/index/prices.db.
func Store(ctx context.Context) error {
	mg.CtxDeps(ctx, Extract)

	cfg := types.DefaultStoreConfig()
	catalog, err := prices.ReadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}
	store, err := pricedb.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(ctx, catalog, os.Stdout)
	return err
}

// Basket prints the household basket estimate for the default report year.
func Basket() error {
	cfg := types.DefaultReportConfig()
	catalog, err := prices.ReadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}
	b, err := report.Basket(catalog, cfg.ToYear, cfg)
	if err != nil {
		return err
	}
	fmt.Println(b)
	return nil
}
