package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/larder/internal/expiry"
	"github.com/dori/larder/internal/model"
	"github.com/dori/larder/internal/store"
	"github.com/dori/larder/internal/ui/theme"
)

// Form field indices, in focus order
const (
	fieldName = iota
	fieldYear
	fieldMonth
	fieldDay
	fieldGenre
	fieldArea
	fieldRemarks
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Year", "Month", "Day", "Genre", "Storage area", "Remarks",
}

// FormView is the item entry screen, used both for new items and edits
type FormView struct {
	store  *store.Store
	width  int
	height int

	inputs [fieldCount]textinput.Model
	focus  int

	// ID of the item being edited; empty when adding
	editingID string

	errMsg string
}

// NewFormView creates a new entry form
func NewFormView(s *store.Store) FormView {
	v := FormView{store: s}

	placeholders := [fieldCount]string{
		"Milk", "2026", "8", "31", "dairy", "fridge", "",
	}
	limits := [fieldCount]int{64, 4, 2, 2, 32, 32, 128}

	for i := range v.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		v.inputs[i] = ti
	}

	v.prefillToday()
	v.inputs[fieldName].Focus()
	return v
}

// Reset clears the form back to a blank new-item state with today's date.
func (v FormView) Reset() FormView {
	for i := range v.inputs {
		v.inputs[i].SetValue("")
	}
	v.prefillToday()
	v.editingID = ""
	v.errMsg = ""
	return v.setFocus(fieldName)
}

// SetItem loads an existing item into the form for editing.
func (v FormView) SetItem(it model.Item) FormView {
	v.inputs[fieldName].SetValue(it.Name)
	if d, err := expiry.ParseDate(it.Date); err == nil {
		v.inputs[fieldYear].SetValue(strconv.Itoa(d.Year()))
		v.inputs[fieldMonth].SetValue(strconv.Itoa(int(d.Month())))
		v.inputs[fieldDay].SetValue(strconv.Itoa(d.Day()))
	}
	v.inputs[fieldGenre].SetValue(it.Genre)
	v.inputs[fieldArea].SetValue(it.Area)
	v.inputs[fieldRemarks].SetValue(it.Remarks)
	v.editingID = it.ID
	v.errMsg = ""
	return v.setFocus(fieldName)
}

func (v *FormView) prefillToday() {
	now := time.Now()
	v.inputs[fieldYear].SetValue(strconv.Itoa(now.Year()))
	v.inputs[fieldMonth].SetValue(strconv.Itoa(int(now.Month())))
	v.inputs[fieldDay].SetValue(strconv.Itoa(now.Day()))
}

func (v FormView) setFocus(i int) FormView {
	v.focus = i
	for j := range v.inputs {
		if j == i {
			v.inputs[j].Focus()
		} else {
			v.inputs[j].Blur()
		}
	}
	return v
}

// Init initializes the form view
func (v FormView) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the view dimensions
func (v FormView) SetSize(width, height int) FormView {
	v.width = width
	v.height = height
	for i := range v.inputs {
		v.inputs[i].Width = 32
	}
	return v
}

// IsInputMode returns whether the view is capturing text input
func (v FormView) IsInputMode() bool {
	return true
}

// Update handles messages
func (v FormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			reset := v.Reset()
			return reset, func() tea.Msg { return FormClosedMsg{} }

		case "tab", "down":
			return v.setFocus((v.focus + 1) % fieldCount), nil

		case "shift+tab", "up":
			return v.setFocus((v.focus + fieldCount - 1) % fieldCount), nil

		case "enter":
			return v.submit()
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

// submit validates the form and saves through the store. On a validation
// failure the message is shown and every field keeps its value so the user
// can correct it.
func (v FormView) submit() (tea.Model, tea.Cmd) {
	item := model.Item{
		ID:      v.editingID,
		Name:    strings.TrimSpace(v.inputs[fieldName].Value()),
		Date:    v.dateValue(),
		Genre:   strings.TrimSpace(v.inputs[fieldGenre].Value()),
		Area:    strings.TrimSpace(v.inputs[fieldArea].Value()),
		Remarks: strings.TrimSpace(v.inputs[fieldRemarks].Value()),
	}

	if err := item.Validate(); err != nil {
		v.errMsg = validationMessage(err)
		return v, nil
	}

	var err error
	if v.editingID != "" {
		err = v.store.Replace(v.editingID, item)
	} else {
		item, err = v.store.Add(item)
	}
	if err != nil {
		v.errMsg = err.Error()
		return v, nil
	}

	saved := item
	reset := v.Reset()
	return reset, func() tea.Msg { return ItemSavedMsg{Item: saved} }
}

// dateValue assembles the canonical date string from the three date fields.
// Unparsable components yield a string that fails validation downstream.
func (v FormView) dateValue() string {
	year, err1 := strconv.Atoi(strings.TrimSpace(v.inputs[fieldYear].Value()))
	month, err2 := strconv.Atoi(strings.TrimSpace(v.inputs[fieldMonth].Value()))
	day, err3 := strconv.Atoi(strings.TrimSpace(v.inputs[fieldDay].Value()))
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	// Impossible combinations like month 13 or Feb 30 survive formatting
	// and are rejected by validation, never rolled over.
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func validationMessage(err error) string {
	if errors.Is(err, model.ErrValidation) {
		return strings.TrimPrefix(err.Error(), model.ErrValidation.Error()+": ")
	}
	return err.Error()
}

// View renders the entry form
func (v FormView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := "New item"
	if v.editingID != "" {
		title = "Edit item"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	labelStyle := styles.Label.Width(14)
	focusedLabel := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(14)

	for i := range v.inputs {
		label := fieldLabels[i]
		if i == v.focus {
			b.WriteString(focusedLabel.Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}
		b.WriteString(v.inputs[i].View())
		b.WriteString("\n")
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render("✗ " + v.errMsg))
		b.WriteString("\n")
	}

	return styles.Panel.Render(b.String())
}
