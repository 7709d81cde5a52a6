// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricedb

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fruit-archive/internal/prices"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(types.StoreConfig{Dir: dir, MaxResults: 50})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleCatalog() *prices.Catalog {
	c := prices.NewCatalog()
	c.Add("bananas", types.FormFresh, types.PriceRecord{Year: 2021, Price: 0.5})
	c.Add("bananas", types.FormFresh, types.PriceRecord{Year: 2022, Price: 0.55})
	c.Add("apples", types.FormFrozen, types.PriceRecord{Year: 2021, Price: int64(2)})
	c.Add("apples", types.FormFresh, types.PriceRecord{Year: 2021, Price: 1.2})
	c.Add("apples", types.FormFresh, types.PriceRecord{Year: 2022, Price: "1.80*"})
	c.Add("kiwi", types.FormFresh, types.PriceRecord{Year: 2022, Price: nil})
	return c
}

func ingest(t *testing.T, s *Store, c *prices.Catalog) IngestSummary {
	t.Helper()
	var buf bytes.Buffer
	summary, err := s.Ingest(context.Background(), c, &buf)
	require.NoError(t, err)
	return summary
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	assert.FileExists(t, filepath.Join(dir, indexDir, dbFile))
}

func TestIngest(t *testing.T) {
	s, _ := testStore(t)

	var buf bytes.Buffer
	summary, err := s.Ingest(context.Background(), sampleCatalog(), &buf)
	require.NoError(t, err)

	assert.Equal(t, IngestSummary{Fruits: 3, Records: 6}, summary)
	assert.Contains(t, buf.String(), "stored bananas (2 records)")
	assert.Contains(t, buf.String(), "stored apples (3 records)")
	assert.Contains(t, buf.String(), "stored: 3 fruits, 6 records")
}

func TestIngest_ReplacesPreviousSnapshot(t *testing.T) {
	s, _ := testStore(t)
	ingest(t, s, sampleCatalog())

	next := prices.NewCatalog()
	next.Add("figs", types.FormFresh, types.PriceRecord{Year: 2020, Price: 4.1})
	ingest(t, s, next)

	got, err := s.Retrieve(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []QueryResult{
		{Fruit: "figs", Form: types.FormFresh, Year: 2020, Price: 4.1},
	}, got)
}

func TestIngest_CanceledContextKeepsOldRows(t *testing.T) {
	s, _ := testStore(t)
	ingest(t, s, sampleCatalog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Ingest(ctx, prices.NewCatalog(), &bytes.Buffer{})
	require.Error(t, err)

	got, err := s.Retrieve(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestRetrieve_Filters(t *testing.T) {
	s, _ := testStore(t)
	ingest(t, s, sampleCatalog())

	tests := []struct {
		name string
		opts QueryOptions
		want []QueryResult
	}{
		{
			name: "fruit",
			opts: QueryOptions{Fruit: "bananas"},
			want: []QueryResult{
				{Fruit: "bananas", Form: types.FormFresh, Year: 2021, Price: 0.5},
				{Fruit: "bananas", Form: types.FormFresh, Year: 2022, Price: 0.55},
			},
		},
		{
			name: "form",
			opts: QueryOptions{Form: types.FormFrozen},
			want: []QueryResult{
				{Fruit: "apples", Form: types.FormFrozen, Year: 2021, Price: int64(2)},
			},
		},
		{
			name: "year range",
			opts: QueryOptions{YearFrom: 2022, YearTo: 2022, Form: types.FormFresh},
			want: []QueryResult{
				{Fruit: "bananas", Form: types.FormFresh, Year: 2022, Price: 0.55},
				{Fruit: "apples", Form: types.FormFresh, Year: 2022, Price: "1.80*"},
				{Fruit: "kiwi", Form: types.FormFresh, Year: 2022, Price: nil},
			},
		},
		{
			name: "no match",
			opts: QueryOptions{Fruit: "papaya"},
			want: nil,
		},
		{
			name: "max results",
			opts: QueryOptions{MaxResults: 2},
			want: []QueryResult{
				{Fruit: "bananas", Form: types.FormFresh, Year: 2021, Price: 0.5},
				{Fruit: "bananas", Form: types.FormFresh, Year: 2022, Price: 0.55},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Retrieve(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryOptions_IsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.True(t, QueryOptions{MaxResults: 10}.IsEmpty())
	assert.False(t, QueryOptions{Fruit: "kiwi"}.IsEmpty())
	assert.False(t, QueryOptions{YearTo: 2020}.IsEmpty())
}

func TestCatalog_RebuildsOrderAndPriceTypes(t *testing.T) {
	s, _ := testStore(t)
	want := sampleCatalog()
	ingest(t, s, want)

	got, err := s.Catalog(context.Background(), QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, want.Fruits(), got.Fruits())
	for _, fruit := range want.Fruits() {
		assert.Equal(t, want.Forms(fruit), got.Forms(fruit), fruit)
		for _, form := range want.Forms(fruit) {
			assert.Equal(t, want.Records(fruit, form), got.Records(fruit, form), "%s %s", fruit, form)
		}
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StoreConfig{Dir: dir}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	ingest(t, s, sampleCatalog())
	require.NoError(t, s.Close())

	s, err = NewStore(cfg)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Retrieve(context.Background(), QueryOptions{Fruit: "apples"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExportJSON(t *testing.T) {
	s, dir := testStore(t)
	ingest(t, s, sampleCatalog())

	path, err := s.ExportJSON(context.Background(), QueryOptions{Fruit: "apples"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, indexDir, "export.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Frozen", rows[0]["form"])
	assert.Equal(t, float64(2), rows[0]["price"])
	assert.Equal(t, "1.80*", rows[2]["price"])
}

func TestExportYAML(t *testing.T) {
	s, dir := testStore(t)
	ingest(t, s, sampleCatalog())

	path, err := s.ExportYAML(context.Background(), QueryOptions{YearFrom: 2022})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, indexDir, "export.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []QueryResult
	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "bananas", rows[0].Fruit)
	assert.Equal(t, 2022, rows[0].Year)
	assert.Nil(t, rows[2].Price)
}

func TestExport_EmptyStoreWritesEmptyList(t *testing.T) {
	s, _ := testStore(t)

	path, err := s.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestPriceColumns(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"int64", int64(7), int64(7)},
		{"int", 7, int64(7)},
		{"float", 1.25, 1.25},
		{"text", "n/a", "n/a"},
		{"other", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priceValue(priceColumns(tt.in)))
		})
	}
}
