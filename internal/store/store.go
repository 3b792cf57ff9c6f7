// Package store holds the session's item collection and pushes every
// mutation through a persistence collaborator.
package store

import (
	"errors"
	"fmt"

	"github.com/dori/larder/internal/model"
	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned for positional operations on positions
// that no longer exist. Callers resolve positions from a freshly derived
// view, so hitting this is a programming defect rather than user error.
var ErrIndexOutOfRange = errors.New("item index out of range")

// ErrNotFound is returned for identifier-based operations on unknown IDs.
var ErrNotFound = errors.New("item not found")

// Persister loads and saves the complete collection. Writes replace the
// whole stored blob; there are no partial updates.
type Persister interface {
	LoadItems() ([]model.Item, error)
	SaveItems(items []model.Item) error
}

// Store is the in-memory ordered item collection. Insertion order is the
// collection's identity order. The store itself never initiates a removal;
// delete confirmation happens upstream.
type Store struct {
	persister Persister
	items     []model.Item
}

// New creates an empty store backed by the given persister.
func New(p Persister) *Store {
	return &Store{persister: p}
}

// Load replaces the in-memory collection with the persisted one. Items from
// an older blob may lack synthetic IDs; they are assigned here and written
// back so later edits can resolve by identifier.
func (s *Store) Load() error {
	items, err := s.persister.LoadItems()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	assigned := false
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
			assigned = true
		}
	}
	s.items = items

	if assigned {
		return s.persist()
	}
	return nil
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Add appends an item, assigning an ID when missing, and persists. The item
// is stored as given; field validation is the caller's job.
func (s *Store) Add(item model.Item) (model.Item, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	s.items = append(s.items, item)
	if err := s.persist(); err != nil {
		// Roll back so the collection matches what was actually written
		s.items = s.items[:len(s.items)-1]
		return model.Item{}, err
	}
	return item, nil
}

// ReplaceAt overwrites the item at a current position and persists. The
// existing item's ID is kept unless the replacement carries its own.
func (s *Store) ReplaceAt(index int, item model.Item) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.items))
	}
	if item.ID == "" {
		item.ID = s.items[index].ID
	}
	s.items[index] = item
	return s.persist()
}

// RemoveAt deletes the item at a current position and persists.
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.items))
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.persist()
}

// Replace overwrites the item with the given ID, preserving its position.
func (s *Store) Replace(id string, item model.Item) error {
	i, ok := s.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	item.ID = id
	return s.ReplaceAt(i, item)
}

// Remove deletes the item with the given ID.
func (s *Store) Remove(id string) error {
	i, ok := s.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.RemoveAt(i)
}

// ReplaceAll swaps in a whole new collection (import). There is no merge;
// the previous contents are gone once this returns. IDs are assigned to
// incoming items that lack them.
func (s *Store) ReplaceAll(items []model.Item) error {
	next := make([]model.Item, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ID == "" {
			next[i].ID = uuid.New().String()
		}
	}
	s.items = next
	return s.persist()
}

func (s *Store) indexOf(id string) (int, bool) {
	for i, it := range s.items {
		if it.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) persist() error {
	if err := s.persister.SaveItems(s.items); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}
