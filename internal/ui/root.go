package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/larder/internal/app"
	"github.com/dori/larder/internal/ui/theme"
	"github.com/dori/larder/internal/ui/views"
	"go.uber.org/zap"
)

// RootModel is the main application model that manages screens
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	log    *zap.Logger
	width  int
	height int

	currentScreen Screen
	formView      views.FormView
	listView      views.ListView
	calendarView  views.CalendarView
	helpVisible   bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App, startScreen Screen) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		log:           application.Log,
		currentScreen: startScreen,
		formView:      views.NewFormView(application.Store),
		listView:      views.NewListView(application.Store, application.DataDir),
		calendarView:  views.NewCalendarView(application.Store),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	switch m.currentScreen {
	case ScreenForm:
		return m.formView.Init()
	case ScreenCalendar:
		return m.calendarView.Init()
	default:
		return m.listView.Init()
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.formView = m.formView.SetSize(m.width, contentHeight)
		m.listView = m.listView.SetSize(m.width, contentHeight)
		m.calendarView = m.calendarView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := false
		switch m.currentScreen {
		case ScreenForm:
			isInputMode = m.formView.IsInputMode()
		case ScreenList:
			isInputMode = m.listView.IsInputMode()
		case ScreenCalendar:
			isInputMode = m.calendarView.IsInputMode()
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.FormScreen):
			m.formView = m.formView.Reset()
			m.currentScreen = ScreenForm
			return m, m.formView.Init()
		case key.Matches(msg, m.keys.ListScreen):
			m.currentScreen = ScreenList
			return m, m.listView.Init()
		case key.Matches(msg, m.keys.CalendarScreen):
			m.currentScreen = ScreenCalendar
			return m, m.calendarView.Init()
		}

	case views.AddItemMsg:
		m.formView = m.formView.Reset()
		m.currentScreen = ScreenForm
		return m, m.formView.Init()

	case views.EditItemMsg:
		m.formView = m.formView.SetItem(msg.Item)
		m.currentScreen = ScreenForm
		return m, m.formView.Init()

	case views.ItemSavedMsg:
		m.log.Debug("item saved", zap.String("name", msg.Item.Name), zap.String("date", msg.Item.Date))
		m.listView = m.listView.ShowNotices()
		m.currentScreen = ScreenList
		m.statusMsg = fmt.Sprintf("Saved %q", msg.Item.Name)
		return m, nil

	case views.FormClosedMsg:
		m.currentScreen = ScreenList
		return m, nil
	}

	// Delegate to current screen
	switch m.currentScreen {
	case ScreenForm:
		newFormView, cmd := m.formView.Update(msg)
		m.formView = newFormView.(views.FormView)
		cmds = append(cmds, cmd)
	case ScreenList:
		newListView, cmd := m.listView.Update(msg)
		m.listView = newListView.(views.ListView)
		cmds = append(cmds, cmd)
	case ScreenCalendar:
		newCalendarView, cmd := m.calendarView.Update(msg)
		m.calendarView = newCalendarView.(views.CalendarView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentScreen {
		case ScreenForm:
			content = m.formView.View()
		case ScreenList:
			content = m.listView.View()
		case ScreenCalendar:
			content = m.calendarView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("larder")

	indicatorStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	screenIndicator := indicatorStyle.Render(fmt.Sprintf("[%s]", m.currentScreen.String()))
	themeIndicator := indicatorStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, screenIndicator)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string

	switch m.currentScreen {
	case ScreenForm:
		line1 = key("tab", "next field") + sep +
			key("shift+tab", "prev field") + sep +
			key("enter", "save") + sep +
			key("esc", "cancel")
		line2 = key("ctrl+t", "theme") + sep +
			key("ctrl+c", "quit")

	case ScreenList:
		if m.listView.IsInputMode() {
			line1 = key("y", "confirm delete") + sep + key("n/esc", "cancel")
			line2 = ""
		} else {
			line1 = key("a", "add") + sep +
				key("enter", "edit") + sep +
				key("d", "delete") + sep +
				key("f/F", "filter") + sep +
				key("s", "sort") + sep +
				key("ctrl+e", "export")
			line2 = key("j/k", "navigate") + sep +
				key("r", "recipes") + sep +
				key("1-3", "screens") + sep +
				key("?", "help")
		}

	case ScreenCalendar:
		line1 = key("H/L", "months") + sep +
			key("t", "today")
		line2 = key("1-3", "screens") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Larder Help"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Screens"))
	b.WriteString("\n")
	screenKeys := [][]string{
		{"1", "Entry form"},
		{"2", "Item list"},
		{"3", "Calendar"},
	}
	for _, kv := range screenKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("List"))
	b.WriteString("\n")
	listKeys := [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"g / G", "Go to top/bottom"},
		{"a", "Add new item"},
		{"enter", "Edit item"},
		{"d", "Delete item (asks y/n)"},
		{"f / F", "Cycle genre/area filter"},
		{"s", "Toggle sort order"},
		{"r", "Show recipe search link"},
		{"ctrl+e", "Export backup file"},
	}
	for _, kv := range listKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Calendar"))
	b.WriteString("\n")
	calKeys := [][]string{
		{"H / L", "Previous/next month"},
		{"t", "Jump to current month"},
	}
	for _, kv := range calKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("System"))
	b.WriteString("\n")
	sysKeys := [][]string{
		{"ctrl+t", "Cycle theme"},
		{"?", "Toggle this help"},
		{"q / ctrl+c", "Quit"},
	}
	for _, kv := range sysKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
