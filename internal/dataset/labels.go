package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bakhva/appraise/internal/model"
)

// Labels is the typed two-way mapping between categorical codes and their
// display labels. Both directions are resolved once at build time; nothing
// ever parses a code out of a display string.
type Labels struct {
	byLabel map[model.Field]map[string]int
	byCode  map[model.Field]map[int]string
}

// NewLabels builds the mapping from field -> label -> code tables. Unknown
// fields are dropped. When two labels share a code, the lexicographically
// first label is kept for decoding, so the result is deterministic.
func NewLabels(tables map[model.Field]map[string]int) *Labels {
	l := &Labels{
		byLabel: make(map[model.Field]map[string]int),
		byCode:  make(map[model.Field]map[int]string),
	}
	for _, f := range model.CategoricalFields() {
		table := tables[f]
		if len(table) == 0 {
			continue
		}

		forward := make(map[string]int, len(table))
		reverse := make(map[int]string, len(table))
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			code := table[name]
			forward[name] = code
			if _, ok := reverse[code]; !ok {
				reverse[code] = name
			}
		}
		l.byLabel[f] = forward
		l.byCode[f] = reverse
	}
	return l
}

// Label returns the display label for a code.
func (l *Labels) Label(f model.Field, code int) (string, bool) {
	label, ok := l.byCode[f][code]
	return label, ok
}

// Code returns the code for a display label. Lookup is exact first, then
// case-insensitive, so CLI input like "bmw" still resolves.
func (l *Labels) Code(f model.Field, label string) (int, bool) {
	table := l.byLabel[f]
	if code, ok := table[label]; ok {
		return code, true
	}
	for name, code := range table {
		if strings.EqualFold(name, label) {
			return code, true
		}
	}
	return 0, false
}

// Names returns every known label for a field in alphabetical order.
func (l *Labels) Names(f model.Field) []string {
	table := l.byLabel[f]
	if len(table) == 0 {
		return nil
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tables returns the forward mapping for every field, keyed by field. The
// result shares no state with the Labels value.
func (l *Labels) Tables() map[model.Field]map[string]int {
	out := make(map[model.Field]map[string]int, len(l.byLabel))
	for f, table := range l.byLabel {
		copied := make(map[string]int, len(table))
		for name, code := range table {
			copied[name] = code
		}
		out[f] = copied
	}
	return out
}

// ParseLabels reads a label-mapping document: a JSON object keyed by field
// name, each value mapping display label to integer code.
func ParseLabels(r io.Reader) (*Labels, error) {
	var raw map[string]map[string]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse label mapping: %w", err)
	}

	tables := make(map[model.Field]map[string]int, len(raw))
	for name, table := range raw {
		tables[model.Field(name)] = table
	}
	return NewLabels(tables), nil
}

// LoadLabels reads a label-mapping document from disk.
func LoadLabels(path string) (*Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label mapping: %w", err)
	}
	defer f.Close()
	return ParseLabels(f)
}
