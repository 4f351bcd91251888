package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bakhva/appraise/internal/model"
)

// document is the wire form of a dataset: rows plus the per-field distinct
// codes computed upstream. Field keys use display-style names verbatim.
type document struct {
	Rows   []model.Record   `json:"rows"`
	Unique map[string][]int `json:"unique"`
}

// ParseDocument reads a dataset document. A document with no rows yields a
// valid empty dataset. Unique-code lists present in the document are kept in
// document order; fields the document omits are derived from the rows.
// labels may be nil.
func ParseDocument(r io.Reader, labels *Labels) (*Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset document: %w", err)
	}

	unique := make(map[model.Field][]int, len(doc.Unique))
	for name, codes := range doc.Unique {
		unique[model.Field(name)] = codes
	}
	return New(doc.Rows, unique, labels), nil
}

// LoadDocument reads a dataset document from disk.
func LoadDocument(path string, labels *Labels) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset document: %w", err)
	}
	defer f.Close()
	return ParseDocument(f, labels)
}
