// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		folder  string
		want    int
		wantErr bool
	}{
		{folder: "Fruit-2021", want: 2021},
		{folder: "fruit-2013", want: 2013},
		{folder: "FRUIT-1999", want: 1999},
		{folder: "fruit-2022-revised", want: 2022},
		{folder: "fruit-abc", wantErr: true},
		{folder: "fruit-", wantErr: true},
		{folder: "fruit2021", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			got, err := ParseYear(tt.folder)
			if tt.wantErr {
				var perr *YearParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.folder, perr.Folder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearFolders(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "fruit-2022")
	mkdir(t, root, "Fruit-2013")
	mkdir(t, root, "FRUIT-2020")
	mkdir(t, root, "vegetables-2021")
	mkdir(t, root, "notes")
	require.NoError(t, os.WriteFile(filepath.Join(root, "fruit-2019.txt"), []byte("not a folder"), 0o644))

	folders, err := YearFolders(root, "fruit-")
	require.NoError(t, err)

	var names []string
	var years []int
	for _, f := range folders {
		names = append(names, f.Name)
		years = append(years, f.Year)
		assert.Equal(t, filepath.Join(root, f.Name), f.Path)
	}
	// Byte-wise name order: upper-case sorts before lower-case.
	assert.Equal(t, []string{"FRUIT-2020", "Fruit-2013", "fruit-2022"}, names)
	assert.Equal(t, []int{2020, 2013, 2022}, years)
}

func TestYearFolders_MalformedYearIsFatal(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "fruit-2021")
	mkdir(t, root, "fruit-latest")

	folders, err := YearFolders(root, "fruit-")
	assert.Nil(t, folders)

	var perr *YearParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "fruit-latest", perr.Folder)
	assert.Contains(t, err.Error(), `"fruit-latest"`)
}

func TestYearFolders_MissingRoot(t *testing.T) {
	_, err := YearFolders(filepath.Join(t.TempDir(), "missing"), "fruit-")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func mkdir(t *testing.T, root, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o755))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}
