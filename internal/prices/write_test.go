// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prices

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fruit-archive/pkg/types"
)

func TestEncodeCatalog_JSONIndent(t *testing.T) {
	c := NewCatalog()
	c.Add("apples", types.FormFresh, types.PriceRecord{Year: 2021, Price: 1.2})

	data, err := EncodeCatalog(c, types.FormatJSON)
	require.NoError(t, err)

	want := strings.Join([]string{
		`{`,
		`    "apples": {`,
		`        "Fresh": [`,
		`            {`,
		`                "year": 2021,`,
		`                "price": 1.2`,
		`            }`,
		`        ]`,
		`    }`,
		`}`,
	}, "\n")
	assert.Equal(t, want, string(data))
}

func TestEncodeCatalog_YAML(t *testing.T) {
	c := NewCatalog()
	c.Add("kiwi", types.FormFrozen, types.PriceRecord{Year: 2020, Price: int64(3)})
	c.Add("apples", types.FormFresh, types.PriceRecord{Year: 2021, Price: 1.2})

	data, err := EncodeCatalog(c, types.FormatYAML)
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "kiwi:"), strings.Index(out, "apples:"))
	assert.Contains(t, out, "year: 2020")
	assert.Contains(t, out, "price: 1.2")
}

func TestEncodeCatalog_UnknownFormat(t *testing.T) {
	_, err := EncodeCatalog(NewCatalog(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestWriteAndReadCatalog(t *testing.T) {
	c := NewCatalog()
	c.Add("strawberries", types.FormFrozen, types.PriceRecord{Year: 2016, Price: 3.47})
	c.Add("strawberries", types.FormFresh, types.PriceRecord{Year: 2016, Price: 2.58})
	c.Add("blueberries", types.FormFresh, types.PriceRecord{Year: 2016, Price: "4.73 1/"})

	for _, tt := range []struct {
		file   string
		format types.OutputFormat
	}{
		{"catalog.json", types.FormatJSON},
		{"catalog.yaml", types.FormatYAML},
	} {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", tt.file)
			require.NoError(t, WriteCatalog(path, c, tt.format))

			got, err := ReadCatalog(path)
			require.NoError(t, err)
			assert.Equal(t, c.Fruits(), got.Fruits())
			assert.Equal(t, c.Forms("strawberries"), got.Forms("strawberries"))
			assert.Equal(t, c.Records("blueberries", types.FormFresh), got.Records("blueberries", types.FormFresh))
		})
	}
}

func TestWriteCatalog_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selected_fruits_data.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0o644))

	require.NoError(t, WriteCatalog(path, NewCatalog(), types.FormatJSON))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestReadCatalog_Missing(t *testing.T) {
	_, err := ReadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
