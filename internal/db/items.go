package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dori/larder/internal/model"
)

// itemsKey is the storage slot holding the JSON-encoded item collection.
const itemsKey = "items"

// LoadItems reads the persisted collection. A missing slot means a fresh
// install and loads as an empty collection. Entries written by older
// versions may lack genre, area, or remarks; those decode to empty values.
func (db *DB) LoadItems() ([]model.Item, error) {
	var raw string
	err := db.QueryRow(`SELECT value FROM storage WHERE key = ?`, itemsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read items slot: %w", err)
	}

	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode stored items: %w", err)
	}
	return items, nil
}

// SaveItems overwrites the slot with the full collection. The write is a
// single statement, so readers never observe a partially written blob.
func (db *DB) SaveItems(items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, itemsKey, string(raw), time.Now())
	if err != nil {
		return fmt.Errorf("write items slot: %w", err)
	}
	return nil
}
