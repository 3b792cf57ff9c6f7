package views

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/larder/internal/backup"
	"github.com/dori/larder/internal/expiry"
	"github.com/dori/larder/internal/store"
	"github.com/dori/larder/internal/ui/theme"
	"github.com/dori/larder/internal/view"
	"github.com/mattn/go-runewidth"
)

// ListMode represents the current input mode of the list view
type ListMode int

const (
	ListModeNormal ListMode = iota
	ListModeConfirmDelete
)

// ListView displays the filtered, sorted item table
type ListView struct {
	store     *store.Store
	exportDir string
	width     int
	height    int

	cursor       int
	scrollOffset int

	mode ListMode
	// Pending delete, resolved by ID so a concurrent reorder cannot
	// redirect the confirmation to a different row
	deleteID   string
	deleteName string

	// Filter and sort state; empty filter values match everything
	genreFilter string
	areaFilter  string
	sortOrder   view.SortOrder

	// Aggregate expiry notice panel, shown on first display and after
	// saves, dismissed by the next keypress
	showNotices bool

	statusMsg string
}

// NewListView creates a new list view
func NewListView(s *store.Store, exportDir string) ListView {
	return ListView{
		store:       s,
		exportDir:   exportDir,
		sortOrder:   view.SortAsc,
		showNotices: true,
	}
}

// Init initializes the list view
func (v ListView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	return v
}

// ShowNotices re-arms the aggregate notice panel (after a save).
func (v ListView) ShowNotices() ListView {
	v.showNotices = true
	return v
}

// IsInputMode returns whether the view is capturing input exclusively
func (v ListView) IsInputMode() bool {
	return v.mode == ListModeConfirmDelete
}

// rows derives the current list from the store's full contents. Derivation
// happens on every call so a row whose date passed since the last render
// reclassifies without an explicit refresh.
func (v ListView) rows() []view.Row {
	q := view.ListQuery{Genre: v.genreFilter, Area: v.areaFilter, Sort: v.sortOrder}
	return view.DeriveList(v.store.Items(), q, time.Now())
}

// Update handles messages
func (v ListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.mode == ListModeConfirmDelete {
		return v.handleDeleteConfirm(keyMsg)
	}
	return v.handleNormalMode(keyMsg)
}

// handleNormalMode handles keypresses in normal mode
func (v ListView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any keypress clears the status line and the notice panel
	v.statusMsg = ""
	v.showNotices = false

	rows := v.rows()
	// The derivation can shrink between keypresses (deletes, filter
	// changes), so the cursor is clamped before any row access
	if v.cursor >= len(rows) {
		v.cursor = max(0, len(rows)-1)
	}

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case "g":
		v.cursor = 0

	case "G":
		v.cursor = max(0, len(rows)-1)

	case "a":
		return v, func() tea.Msg { return AddItemMsg{} }

	case "enter":
		if len(rows) > 0 {
			item := rows[v.cursor].Item
			return v, func() tea.Msg { return EditItemMsg{Item: item} }
		}

	case "d":
		if len(rows) > 0 {
			v.mode = ListModeConfirmDelete
			v.deleteID = rows[v.cursor].Item.ID
			v.deleteName = rows[v.cursor].Item.Name
		}

	case "f":
		v.genreFilter = nextFilterValue(v.genreFilter, v.distinctGenres())
		v.cursor = 0

	case "F":
		v.areaFilter = nextFilterValue(v.areaFilter, v.distinctAreas())
		v.cursor = 0

	case "s":
		if v.sortOrder == view.SortAsc {
			v.sortOrder = view.SortDesc
		} else {
			v.sortOrder = view.SortAsc
		}

	case "r":
		if len(rows) > 0 {
			v.statusMsg = "Recipes: " + recipeSearchURL(rows[v.cursor].Item.Name)
		}

	case "ctrl+e":
		return v.exportBackup()
	}

	v.ensureCursorVisible(len(rows))
	return v, nil
}

// handleDeleteConfirm handles the delete confirmation prompt. Declining
// leaves the collection untouched and writes nothing.
func (v ListView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = ListModeNormal
		if err := v.store.Remove(v.deleteID); err != nil {
			v.statusMsg = fmt.Sprintf("Delete failed: %v", err)
		} else {
			v.statusMsg = fmt.Sprintf("Deleted %q", v.deleteName)
		}
		v.deleteID = ""
		v.deleteName = ""
		// Clamp against the filtered derivation, not the raw store size
		if rows := v.rows(); v.cursor >= len(rows) {
			v.cursor = max(0, len(rows)-1)
		}

	case "n", "N", "esc":
		v.mode = ListModeNormal
		v.deleteID = ""
		v.deleteName = ""
		v.statusMsg = "Delete cancelled"
	}

	return v, nil
}

// recipeSearchURL builds a recipe search link for an item, shown in the
// status line so it can be opened or copied from the terminal.
func recipeSearchURL(name string) string {
	return "https://cookpad.com/search/" + url.PathEscape(name)
}

// exportBackup writes the full collection to the data directory.
func (v ListView) exportBackup() (tea.Model, tea.Cmd) {
	path := filepath.Join(v.exportDir, backup.Filename(time.Now()))
	if err := backup.WriteFile(path, v.store.Items()); err != nil {
		v.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return v, nil
	}
	v.statusMsg = fmt.Sprintf("Exported to %s", path)
	return v, nil
}

// distinctGenres returns the genre labels present in the collection, sorted.
func (v ListView) distinctGenres() []string {
	seen := map[string]bool{}
	for _, it := range v.store.Items() {
		if it.Genre != "" {
			seen[it.Genre] = true
		}
	}
	return sortedKeys(seen)
}

// distinctAreas returns the storage area labels present, sorted.
func (v ListView) distinctAreas() []string {
	seen := map[string]bool{}
	for _, it := range v.store.Items() {
		if it.Area != "" {
			seen[it.Area] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nextFilterValue(current string, values []string) string {
	if current == "" {
		if len(values) > 0 {
			return values[0]
		}
		return ""
	}
	for i, val := range values {
		if val == current {
			if i+1 < len(values) {
				return values[i+1]
			}
			return "" // wrap back to "all"
		}
	}
	return ""
}

func (v *ListView) ensureCursorVisible(total int) {
	if v.cursor >= total {
		v.cursor = max(0, total-1)
	}
	visible := v.visibleRowCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

func (v ListView) visibleRowCount() int {
	// Reserve lines for the filter bar, table header, and status line
	available := v.height - 5
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the list screen
func (v ListView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	rows := v.rows()
	var sections []string

	sections = append(sections, v.renderFilterBar())

	if v.showNotices {
		if panel := v.renderNotices(); panel != "" {
			sections = append(sections, panel)
		}
	}

	if len(rows) == 0 {
		empty := styles.Label.Render("No items. Press 'a' to add one.")
		sections = append(sections, "", empty)
	} else {
		sections = append(sections, v.renderTable(rows))
	}

	if v.mode == ListModeConfirmDelete {
		prompt := lipgloss.NewStyle().Foreground(t.Warning).Bold(true).
			Render(fmt.Sprintf("Delete %q? (y/n)", v.deleteName))
		sections = append(sections, prompt)
	} else if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}

	return strings.Join(sections, "\n")
}

// renderFilterBar renders the active filter and sort controls
func (v ListView) renderFilterBar() string {
	styles := theme.Current.Styles

	display := func(s string) string {
		if s == "" {
			return "all"
		}
		return s
	}

	parts := []string{
		styles.HelpKey.Render("f") + styles.HelpDesc.Render(" genre: ") + display(v.genreFilter),
		styles.HelpKey.Render("F") + styles.HelpDesc.Render(" area: ") + display(v.areaFilter),
		styles.HelpKey.Render("s") + styles.HelpDesc.Render(" sort: ") + string(v.sortOrder),
	}
	sep := styles.HelpSeparator.Render(" │ ")
	return strings.Join(parts, sep)
}

// renderNotices renders the aggregate expiry warning, derived across the
// whole collection regardless of the filters above.
func (v ListView) renderNotices() string {
	styles := theme.Current.Styles

	notices := view.DeriveNotices(v.store.Items(), time.Now())
	if notices.Empty() {
		return ""
	}

	var lines []string
	if len(notices.Expired) > 0 {
		var names []string
		for _, it := range notices.Expired {
			names = append(names, fmt.Sprintf("%s (%s)", it.Name, it.Date))
		}
		lines = append(lines, styles.NoticeExpired.Render("Expired: "+strings.Join(names, ", ")))
	}
	if len(notices.Upcoming) > 0 {
		var names []string
		for _, it := range notices.Upcoming {
			names = append(names, fmt.Sprintf("%s (%s)", it.Name, it.Date))
		}
		lines = append(lines, styles.NoticeUpcoming.Render("Expiring soon: "+strings.Join(names, ", ")))
	}

	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// renderTable renders the item rows
func (v ListView) renderTable(rows []view.Row) string {
	styles := theme.Current.Styles

	nameW, dateW, genreW, areaW := 22, 12, 12, 12
	remarksW := v.width - nameW - dateW - genreW - areaW - 6
	if remarksW < 8 {
		remarksW = 8
	}

	header := styles.Label.Render(
		pad("NAME", nameW) + pad("EXPIRES", dateW) + pad("GENRE", genreW) +
			pad("AREA", areaW) + pad("REMARKS", remarksW))

	lines := []string{header}

	visible := v.visibleRowCount()
	end := v.scrollOffset + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := v.scrollOffset; i < end; i++ {
		r := rows[i]
		line := pad(r.Item.Name, nameW) + pad(r.Item.Date, dateW) +
			pad(r.Item.Genre, genreW) + pad(r.Item.Area, areaW) +
			pad(r.Item.Remarks, remarksW)

		var style lipgloss.Style
		switch {
		case i == v.cursor:
			style = styles.ItemSelected
		case r.Status.Severity == expiry.SeverityExpired:
			style = styles.ItemExpired
		case r.Status.Severity == expiry.SeverityUpcoming:
			style = styles.ItemUpcoming
		default:
			style = styles.ItemNormal
		}

		lines = append(lines, style.Render(line))
	}

	return strings.Join(lines, "\n")
}

// pad truncates and pads by display width, so multibyte names keep the
// columns aligned and never get cut mid-rune.
func pad(s string, w int) string {
	if runewidth.StringWidth(s) > w-1 {
		s = runewidth.Truncate(s, w-2, "…")
	}
	return runewidth.FillRight(s, w)
}
