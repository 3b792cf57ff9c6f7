package views

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/larder/internal/model"
	"github.com/dori/larder/internal/store"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	items []model.Item
}

func (p *memPersister) LoadItems() ([]model.Item, error) { return p.items, nil }

func (p *memPersister) SaveItems(items []model.Item) error {
	p.items = items
	return nil
}

func newListFixture(t *testing.T, items ...model.Item) ListView {
	t.Helper()
	s := store.New(&memPersister{items: items})
	require.NoError(t, s.Load())
	return NewListView(s, t.TempDir()).SetSize(80, 24)
}

func press(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func drive(t *testing.T, v ListView, msgs ...tea.Msg) ListView {
	t.Helper()
	for _, msg := range msgs {
		next, _ := v.Update(msg)
		v = next.(ListView)
	}
	return v
}

func TestDeleteLastFilteredRowThenEdit(t *testing.T) {
	v := newListFixture(t,
		model.Item{ID: "a", Name: "Milk", Date: "2099-01-01", Genre: "Dairy"},
		model.Item{ID: "b", Name: "Cheese", Date: "2099-01-02", Genre: "Dairy"},
		model.Item{ID: "c", Name: "Peas", Date: "2099-01-03", Genre: "Frozen"},
	)

	// Filter to Dairy, move to its last row, delete it
	v = drive(t, v, press('f'), press('j'), press('d'), press('y'))
	assert.Equal(t, ListModeNormal, v.mode)
	assert.Equal(t, 2, v.store.Len())

	// The cursor must land on a surviving filtered row; enter edits it
	next, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = next.(ListView)
	require.NotNil(t, cmd)

	msg, ok := cmd().(EditItemMsg)
	require.True(t, ok)
	assert.Equal(t, "Milk", msg.Item.Name)
}

func TestDeleteOnlyFilteredRowLeavesEmptyList(t *testing.T) {
	v := newListFixture(t,
		model.Item{ID: "a", Name: "Milk", Date: "2099-01-01", Genre: "Dairy"},
		model.Item{ID: "c", Name: "Peas", Date: "2099-01-03", Genre: "Frozen"},
	)

	// Filter twice to Frozen (its only row), delete it, then keep pressing
	v = drive(t, v, press('f'), press('f'), press('d'), press('y'),
		press('d'), press('j'))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "enter on an empty derivation must do nothing")
	assert.Equal(t, 1, v.store.Len())
}

func TestDeleteDeclinedKeepsEverything(t *testing.T) {
	v := newListFixture(t,
		model.Item{ID: "a", Name: "Milk", Date: "2099-01-01"},
	)

	v = drive(t, v, press('d'))
	assert.True(t, v.IsInputMode())

	v = drive(t, v, press('n'))
	assert.False(t, v.IsInputMode())
	assert.Equal(t, 1, v.store.Len())
}

func TestRecipeSearchLink(t *testing.T) {
	v := newListFixture(t,
		model.Item{ID: "a", Name: "豚肉", Date: "2099-01-01"},
	)

	v = drive(t, v, press('r'))
	assert.True(t, strings.HasPrefix(v.statusMsg, "Recipes: https://cookpad.com/search/"))
	assert.NotContains(t, v.statusMsg, "豚肉", "multibyte names are escaped for the URL")
}

func TestPadHandlesMultibyteNames(t *testing.T) {
	// CJK text is double-width; pad must measure and cut by display cells
	cases := []string{"ほうれん草のおひたし", "Milk", "味噌"}
	for _, name := range cases {
		got := pad(name, 12)
		assert.Equal(t, 12, runewidth.StringWidth(got), name)
		assert.True(t, utf8.ValidString(got), "truncation must not split runes")
	}
}
