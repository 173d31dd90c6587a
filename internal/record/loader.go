// Package record loads parsed tweet records from JSON input.
//
// The input is either a filesystem path to a JSON file or a literal JSON
// string; Load decides which by checking whether the argument resolves to an
// existing regular file. This mirrors how the tool is driven from scripts,
// where small record sets are passed inline and large ones via files.
//
// Design decision: There is deliberately no schema validation here beyond
// what JSON decoding itself guarantees. The records are produced by the
// archive parser and trusted to carry the known field set; a field that is
// missing simply decodes to its zero value and renders as an empty cell.
package record

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/claromes/waybacktweets/internal/model"
)

// Load reads tweet records from a file path or a literal JSON string.
// If source names an existing file it is read as UTF-8 and decoded;
// otherwise source itself is decoded as JSON. Decode errors propagate
// to the caller in both branches.
func Load(source string) ([]model.TweetRecord, error) {
	if info, err := os.Stat(source); err == nil && info.Mode().IsRegular() {
		return LoadFile(source)
	}
	return Parse([]byte(source))
}

// LoadFile reads and decodes tweet records from a JSON file.
func LoadFile(path string) ([]model.TweetRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse records file %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes tweet records from raw JSON text.
// The expected shape is an array of record objects.
func Parse(data []byte) ([]model.TweetRecord, error) {
	var records []model.TweetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid records JSON: %w", err)
	}
	return records, nil
}
