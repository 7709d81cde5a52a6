// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prices

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/fruit-archive/internal/sheet"
	"github.com/pdiddy/fruit-archive/pkg/types"
)

func TestCleanForm(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Fresh", "Fresh"},
		{"Fresh1", "Fresh"},
		{"Frozen 2/", "Frozen"},
		{"  Frozen  ", "Frozen"},
		{"Canned1", "Canned"},
		{"Fresh, pre-cut", "Freshprecut"},
		{"Dried (prunes)", "Driedprunes"},
		{"2021", ""},
		{"", ""},
		{"Frésh", "Frsh"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := CleanForm(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CleanForm(got), "cleaning is idempotent")
		})
	}
}

func TestAcceptedForm(t *testing.T) {
	tests := []struct {
		label  string
		want   types.Form
		wantOK bool
	}{
		{"Fresh", types.FormFresh, true},
		{"Frozen", types.FormFrozen, true},
		{"Canned", "", false},
		{"fresh", "", false},
		{"FreshFrozen", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := AcceptedForm(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	region := sheet.Grid{
		{sheet.Text("Fresh1"), sheet.Number(1.2)},
		{sheet.Text("Frozen"), sheet.Number(0.95)},
		{sheet.Text("Canned1"), sheet.Number(0.8)},
		{sheet.Int(42), sheet.Number(9.99)},
		{sheet.Text("Fresh 3/"), sheet.Text("n.a.")},
		{sheet.Text("Frozen"), sheet.Cell{}},
		{},
	}

	c := NewCatalog()
	added := Normalize(c, "apples", 2021, region)

	assert.Equal(t, 4, added)
	assert.Equal(t, []string{"apples"}, c.Fruits())
	assert.Equal(t, []types.Form{types.FormFresh, types.FormFrozen}, c.Forms("apples"))
	assert.Equal(t, []types.PriceRecord{
		{Year: 2021, Price: 1.2},
		{Year: 2021, Price: "n.a."},
	}, c.Records("apples", types.FormFresh))
	assert.Equal(t, []types.PriceRecord{
		{Year: 2021, Price: 0.95},
		{Year: 2021, Price: nil},
	}, c.Records("apples", types.FormFrozen))
	assert.Empty(t, c.Records("apples", "Canned"))
}

func TestNormalize_NoAcceptedRowsAddsNoFruit(t *testing.T) {
	c := NewCatalog()
	added := Normalize(c, "dates", 2020, sheet.Grid{
		{sheet.Text("Dried"), sheet.Number(5.1)},
		{sheet.Text("Canned"), sheet.Number(2)},
	})
	assert.Zero(t, added)
	assert.Zero(t, c.Len())
}
