// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prices

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fruit-archive/pkg/types"
)

// Catalog accumulates price records as fruit → form → records. Fruits,
// forms, and records all keep insertion order, and that order is kept
// when the catalog is encoded.
type Catalog struct {
	fruits  []string
	entries map[string]*fruitEntry
}

type fruitEntry struct {
	forms   []types.Form
	records map[types.Form][]types.PriceRecord
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*fruitEntry)}
}

// Add appends rec under fruit and form, creating either entry on first use.
func (c *Catalog) Add(fruit string, form types.Form, rec types.PriceRecord) {
	e := c.entry(fruit, form)
	e.records[form] = append(e.records[form], rec)
}

// entry returns the fruit entry, registering fruit and form in order if
// they are new. A registered form may hold no records.
func (c *Catalog) entry(fruit string, form types.Form) *fruitEntry {
	e := c.ensureFruit(fruit)
	if _, ok := e.records[form]; !ok {
		e.forms = append(e.forms, form)
		e.records[form] = []types.PriceRecord{}
	}
	return e
}

func (c *Catalog) ensureFruit(fruit string) *fruitEntry {
	if c.entries == nil {
		c.entries = make(map[string]*fruitEntry)
	}
	e, ok := c.entries[fruit]
	if !ok {
		e = &fruitEntry{records: make(map[types.Form][]types.PriceRecord)}
		c.entries[fruit] = e
		c.fruits = append(c.fruits, fruit)
	}
	return e
}

// addAll registers fruit and form, then appends recs. Forms with no records
// are kept so decoding and re-encoding preserves the document.
func (c *Catalog) addAll(fruit string, form types.Form, recs []types.PriceRecord) {
	c.entry(fruit, form)
	for _, rec := range recs {
		rec.Price = normalizePrice(rec.Price)
		c.Add(fruit, form, rec)
	}
}

// Fruits returns the fruit identifiers in insertion order.
func (c *Catalog) Fruits() []string {
	out := make([]string, len(c.fruits))
	copy(out, c.fruits)
	return out
}

// Forms returns the forms recorded for fruit in insertion order.
func (c *Catalog) Forms(fruit string) []types.Form {
	e, ok := c.entries[fruit]
	if !ok {
		return nil
	}
	out := make([]types.Form, len(e.forms))
	copy(out, e.forms)
	return out
}

// Records returns a copy of the records for fruit and form.
func (c *Catalog) Records(fruit string, form types.Form) []types.PriceRecord {
	e, ok := c.entries[fruit]
	if !ok {
		return nil
	}
	recs := e.records[form]
	out := make([]types.PriceRecord, len(recs))
	copy(out, recs)
	return out
}

// Len returns the number of fruits in the catalog.
func (c *Catalog) Len() int { return len(c.fruits) }

// Count returns the total number of records across all fruits and forms.
func (c *Catalog) Count() int {
	n := 0
	for _, e := range c.entries {
		for _, recs := range e.records {
			n += len(recs)
		}
	}
	return n
}

// MarshalJSON encodes the catalog as nested objects in insertion order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fruit := range c.fruits {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, fruit); err != nil {
			return nil, err
		}
		e := c.entries[fruit]
		buf.WriteByte('{')
		for j, form := range e.forms {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONKey(&buf, string(form)); err != nil {
				return nil, err
			}
			recs, err := json.Marshal(e.records[form])
			if err != nil {
				return nil, fmt.Errorf("encoding %s %s records: %w", fruit, form, err)
			}
			buf.Write(recs)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

// UnmarshalJSON decodes a catalog written by MarshalJSON, keeping the key
// order of the document. Integral prices decode as int64, other numbers as
// float64.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	*c = Catalog{entries: make(map[string]*fruitEntry)}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		fruit, err := stringToken(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		c.ensureFruit(fruit)
		for dec.More() {
			form, err := stringToken(dec)
			if err != nil {
				return err
			}
			var recs []types.PriceRecord
			if err := dec.Decode(&recs); err != nil {
				return fmt.Errorf("decoding %s %s records: %w", fruit, form, err)
			}
			c.addAll(fruit, types.Form(form), recs)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("reading catalog: expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("reading catalog: %w", err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("reading catalog: expected key, got %v", tok)
	}
	return s, nil
}

// MarshalYAML encodes the catalog as an ordered YAML mapping.
func (c *Catalog) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fruit := range c.fruits {
		e := c.entries[fruit]
		forms := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, form := range e.forms {
			var recs yaml.Node
			if err := recs.Encode(e.records[form]); err != nil {
				return nil, fmt.Errorf("encoding %s %s records: %w", fruit, form, err)
			}
			forms.Content = append(forms.Content, scalar(string(form)), &recs)
		}
		root.Content = append(root.Content, scalar(fruit), forms)
	}
	return root, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// UnmarshalYAML decodes a catalog written by MarshalYAML, keeping key order.
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	*c = Catalog{entries: make(map[string]*fruitEntry)}

	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("reading catalog: line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fruit := node.Content[i].Value
		forms := node.Content[i+1]
		if forms.Kind != yaml.MappingNode {
			return fmt.Errorf("reading catalog: line %d: %s: expected a mapping of forms", forms.Line, fruit)
		}
		c.ensureFruit(fruit)
		for j := 0; j+1 < len(forms.Content); j += 2 {
			form := forms.Content[j].Value
			var recs []types.PriceRecord
			if err := forms.Content[j+1].Decode(&recs); err != nil {
				return fmt.Errorf("decoding %s %s records: %w", fruit, form, err)
			}
			c.addAll(fruit, types.Form(form), recs)
		}
	}
	return nil
}

// normalizePrice maps decoder-specific numeric types onto int64 and float64.
func normalizePrice(v any) any {
	switch p := v.(type) {
	case json.Number:
		if i, err := p.Int64(); err == nil {
			return i
		}
		if f, err := p.Float64(); err == nil {
			return f
		}
		return p.String()
	case int:
		return int64(p)
	case uint64:
		return float64(p)
	default:
		return v
	}
}
