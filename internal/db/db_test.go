package db

import (
	"path/filepath"
	"testing"

	"github.com/dori/larder/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadItemsFreshInstall(t *testing.T) {
	db := openTestDB(t)

	items, err := db.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems on empty database: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	want := []model.Item{
		{ID: "a", Name: "Milk", Date: "2026-09-07", Genre: "Dairy", Area: "Fridge"},
		{ID: "b", Name: "Rice", Date: "2027-01-01", Genre: "Grains", Area: "Pantry", Remarks: "opened"},
	}
	if err := db.SaveItems(want); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	got, err := db.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Item %d mismatch: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveOverwritesPreviousBlob(t *testing.T) {
	db := openTestDB(t)

	first := []model.Item{{ID: "a", Name: "Milk", Date: "2026-09-07"}}
	if err := db.SaveItems(first); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	second := []model.Item{
		{ID: "b", Name: "Rice", Date: "2027-01-01"},
		{ID: "c", Name: "Beans", Date: "2027-02-01"},
	}
	if err := db.SaveItems(second); err != nil {
		t.Fatalf("SaveItems overwrite: %v", err)
	}

	got, err := db.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 items after overwrite, got %d", len(got))
	}
	if got[0].Name != "Rice" {
		t.Errorf("Expected first item Rice, got %s", got[0].Name)
	}
}

func TestSaveNilClearsCollection(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveItems([]model.Item{{ID: "a", Name: "Milk", Date: "2026-09-07"}}); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}
	if err := db.SaveItems(nil); err != nil {
		t.Fatalf("SaveItems(nil): %v", err)
	}

	got, err := db.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty collection, got %d items", len(got))
	}
}

func TestLoadToleratesOlderBlobShape(t *testing.T) {
	db := openTestDB(t)

	// Simulate a blob written before genre/area/remarks existed
	legacy := `[{"name": "Old entry", "date": "2024-05-01"}]`
	_, err := db.Exec(`INSERT INTO storage (key, value, updated_at) VALUES ('items', ?, datetime('now'))`, legacy)
	if err != nil {
		t.Fatalf("Failed to seed legacy blob: %v", err)
	}

	got, err := db.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(got))
	}
	if got[0].Name != "Old entry" || got[0].Genre != "" || got[0].ID != "" {
		t.Errorf("Legacy fields should decode to empty values, got %+v", got[0])
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.SaveItems([]model.Item{{ID: "a", Name: "Milk", Date: "2026-09-07"}}); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}
	db.Close()

	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	got, err := db.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems after reopen: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Milk" {
		t.Errorf("Expected persisted Milk item, got %+v", got)
	}
}
