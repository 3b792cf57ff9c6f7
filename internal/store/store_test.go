package store

import (
	"testing"

	"github.com/dori/larder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister records saves so tests can assert every mutation was
// written through.
type fakePersister struct {
	items     []model.Item
	saveCount int
	loadErr   error
	saveErr   error
}

func (f *fakePersister) LoadItems() ([]model.Item, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.items, nil
}

func (f *fakePersister) SaveItems(items []model.Item) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = items
	f.saveCount++
	return nil
}

func newTestStore(t *testing.T, seed ...model.Item) (*Store, *fakePersister) {
	t.Helper()
	p := &fakePersister{items: seed}
	s := New(p)
	require.NoError(t, s.Load())
	return s, p
}

func TestAddPersistsImmediately(t *testing.T) {
	s, p := newTestStore(t)

	saved, err := s.Add(model.NewItem("Milk", "2099-01-01", "Dairy", "Fridge", ""))
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, p.saveCount)
	assert.Equal(t, "Milk", p.items[0].Name)
}

func TestAddRollsBackOnPersistFailure(t *testing.T) {
	s, p := newTestStore(t)
	p.saveErr = assert.AnError

	_, err := s.Add(model.NewItem("Milk", "2099-01-01", "", "", ""))
	require.Error(t, err)

	// The failed item must not linger in memory while the blob lacks it
	assert.Equal(t, 0, s.Len())

	p.saveErr = nil
	saved, err := s.Add(model.NewItem("Eggs", "2099-01-02", "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "Eggs", saved.Name)
	assert.Equal(t, 1, s.Len())
}

func TestReplaceAtKeepsIdentity(t *testing.T) {
	s, p := newTestStore(t)
	saved, err := s.Add(model.NewItem("Milk", "2099-01-01", "Dairy", "Fridge", ""))
	require.NoError(t, err)

	updated := model.Item{Name: "Whole milk", Date: "2099-02-01"}
	require.NoError(t, s.ReplaceAt(0, updated))

	got := s.Items()[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Whole milk", got.Name)
	assert.Equal(t, 2, p.saveCount)
}

func TestRemoveAt(t *testing.T) {
	s, p := newTestStore(t)
	_, err := s.Add(model.NewItem("Milk", "2099-01-01", "", "", ""))
	require.NoError(t, err)
	_, err = s.Add(model.NewItem("Eggs", "2099-01-02", "", "", ""))
	require.NoError(t, err)

	require.NoError(t, s.RemoveAt(0))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Eggs", s.Items()[0].Name)
	assert.Equal(t, 3, p.saveCount)
}

func TestIndexOutOfRange(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Add(model.NewItem("Milk", "2099-01-01", "", "", ""))
	require.NoError(t, err)

	assert.ErrorIs(t, s.RemoveAt(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveAt(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.ReplaceAt(5, model.Item{}), ErrIndexOutOfRange)

	// Failed mutations leave the collection alone
	assert.Equal(t, 1, s.Len())
}

func TestReplaceAndRemoveByID(t *testing.T) {
	s, _ := newTestStore(t)
	saved, err := s.Add(model.NewItem("Milk", "2099-01-01", "", "", ""))
	require.NoError(t, err)

	require.NoError(t, s.Replace(saved.ID, model.Item{Name: "Oat milk", Date: "2099-03-01"}))
	assert.Equal(t, "Oat milk", s.Items()[0].Name)
	assert.Equal(t, saved.ID, s.Items()[0].ID)

	assert.ErrorIs(t, s.Replace("missing", model.Item{}), ErrNotFound)
	assert.ErrorIs(t, s.Remove("missing"), ErrNotFound)

	require.NoError(t, s.Remove(saved.ID))
	assert.Equal(t, 0, s.Len())
}

func TestReplaceAllOverwritesEverything(t *testing.T) {
	s, p := newTestStore(t)
	_, err := s.Add(model.NewItem("Milk", "2099-01-01", "", "", ""))
	require.NoError(t, err)

	incoming := []model.Item{
		{Name: "Rice", Date: "2099-05-01"},
		{Name: "Beans", Date: "2099-06-01"},
	}
	require.NoError(t, s.ReplaceAll(incoming))

	assert.Equal(t, 2, s.Len())
	for _, it := range s.Items() {
		assert.NotEmpty(t, it.ID, "imported items get ids assigned")
	}
	assert.Len(t, p.items, 2)
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	seed := []model.Item{
		{ID: "existing", Name: "Milk", Date: "2099-01-01"},
		{Name: "Legacy", Date: "2099-01-02"},
	}
	s, p := newTestStore(t, seed...)

	items := s.Items()
	assert.Equal(t, "existing", items[0].ID)
	assert.NotEmpty(t, items[1].ID)

	// Backfilling an id counts as a mutation and persists
	assert.Equal(t, 1, p.saveCount)
}

func TestItemsReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Add(model.NewItem("Milk", "2099-01-01", "", "", ""))
	require.NoError(t, err)

	items := s.Items()
	items[0].Name = "Tampered"

	assert.Equal(t, "Milk", s.Items()[0].Name)
}
