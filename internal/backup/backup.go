// Package backup provides JSON export and import of the item collection.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dori/larder/internal/model"
)

// ErrEmptyCollection is returned when an export is requested with nothing
// to export; no file is produced.
var ErrEmptyCollection = errors.New("no items to export")

// ErrNotArray is returned when an import payload does not top-level-parse
// to a JSON array. The check runs before any replacement happens.
var ErrNotArray = errors.New("backup must be a JSON array")

// Export writes the collection as a pretty-printed JSON array.
func Export(w io.Writer, items []model.Item) error {
	if len(items) == 0 {
		return ErrEmptyCollection
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// WriteFile exports to a file at path. The empty-collection check runs
// before the file is created, so a rejected export leaves nothing behind.
func WriteFile(path string, items []model.Item) error {
	if len(items) == 0 {
		return ErrEmptyCollection
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	return Export(f, items)
}

// Parse reads a candidate backup. Non-array payloads (a single object, a
// scalar, unparsable text) are rejected without producing a collection;
// element shape beyond that is tolerant, so older backups missing genre,
// area, or remarks load with empty defaults.
func Parse(r io.Reader) ([]model.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrNotArray
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	return items, nil
}

// Filename returns the conventional backup file name for an export date,
// e.g. larder_backup_2026-08-31.json.
func Filename(date time.Time) string {
	return fmt.Sprintf("larder_backup_%s.json", date.Format("2006-01-02"))
}
