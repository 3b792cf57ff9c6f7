package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/larder/internal/expiry"
	"github.com/dori/larder/internal/store"
	"github.com/dori/larder/internal/ui/theme"
	"github.com/dori/larder/internal/view"
	"github.com/mattn/go-runewidth"
)

// CalendarView displays one month of expiry dates as a Sunday-first grid
type CalendarView struct {
	store  *store.Store
	width  int
	height int

	// Viewed month as an offset from the real current month, 0 = now
	offset int
}

// NewCalendarView creates a new calendar view
func NewCalendarView(s *store.Store) CalendarView {
	return CalendarView{store: s}
}

// Init initializes the calendar view
func (v CalendarView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v CalendarView) SetSize(width, height int) CalendarView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is capturing input exclusively
func (v CalendarView) IsInputMode() bool {
	return false
}

// Update handles messages
func (v CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "H", "pgup":
		v.offset--
	case "L", "pgdown":
		v.offset++
	case "t":
		v.offset = 0
	}

	return v, nil
}

var weekdayHeadings = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// View renders the calendar screen. The grid is derived fresh on every
// render from the full collection at the current offset.
func (v CalendarView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	now := time.Now()
	year, month := view.MonthOf(now, v.offset)
	grid := view.DeriveCalendar(v.store.Items(), year, month, now)

	cellW := (v.width - 2) / 7
	if cellW < 10 {
		cellW = 10
	}
	cellH := 4

	title := styles.Title.Render(fmt.Sprintf("%s %d", month, year))
	nav := styles.HelpDesc.Render("H prev · L next · t today")
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", nav)

	headCells := make([]string, 7)
	for i, h := range weekdayHeadings {
		headCells[i] = styles.Label.Width(cellW).Align(lipgloss.Center).Render(h)
	}
	headRow := lipgloss.JoinHorizontal(lipgloss.Top, headCells...)

	todayDate := expiry.FormatDate(now)
	viewingToday := year == now.Year() && month == now.Month()

	cellBase := lipgloss.NewStyle().
		Width(cellW).
		Height(cellH).
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border)

	var weekRows []string
	for _, week := range grid.Weeks {
		cells := make([]string, 7)
		for i, day := range week {
			cells[i] = v.renderCell(day, cellBase, cellW, viewingToday, todayDate, year, month)
		}
		weekRows = append(weekRows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(append([]string{header, headRow}, weekRows...), "\n")
}

// renderCell renders one day cell, blank cells included
func (v CalendarView) renderCell(day view.Day, base lipgloss.Style, cellW int, viewingToday bool, todayDate string, year int, month time.Month) string {
	t := theme.Current.Theme

	if day.Day == 0 {
		return base.Render("")
	}

	dayStyle := lipgloss.NewStyle().Foreground(t.Foreground)
	cellDate := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day.Day)
	if viewingToday && cellDate == todayDate {
		dayStyle = dayStyle.Bold(true).Foreground(t.Primary)
	}

	lines := []string{dayStyle.Render(fmt.Sprintf("%d", day.Day))}
	for _, row := range day.Items {
		name := row.Item.Name
		if runewidth.StringWidth(name) > cellW-2 {
			name = runewidth.Truncate(name, cellW-2, "…")
		}
		var itemStyle lipgloss.Style
		switch row.Status.Severity {
		case expiry.SeverityExpired:
			itemStyle = lipgloss.NewStyle().Foreground(t.Expired)
		case expiry.SeverityUpcoming:
			itemStyle = lipgloss.NewStyle().Foreground(t.Upcoming)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(t.Normal)
		}
		lines = append(lines, itemStyle.Render(name))
	}

	return base.Render(strings.Join(lines, "\n"))
}
