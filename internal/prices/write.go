// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fruit-archive/pkg/types"
)

// jsonIndent is the indentation of the written catalog.
const jsonIndent = "    "

// EncodeCatalog renders c in the given format. An empty format means JSON.
func EncodeCatalog(c *Catalog, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.FormatJSON, "":
		data, err := json.MarshalIndent(c, "", jsonIndent)
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return data, nil
	case types.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(4)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// WriteCatalog encodes c and writes it to path, replacing any existing file.
func WriteCatalog(path string, c *Catalog, format types.OutputFormat) error {
	data, err := EncodeCatalog(c, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return nil
}

// ReadCatalog loads a catalog written by WriteCatalog. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	c := NewCatalog()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
	}
	return c, nil
}
