package ui

// Screen represents the current active screen
type Screen int

const (
	ScreenForm Screen = iota
	ScreenList
	ScreenCalendar
)

// String returns the display name for a screen
func (s Screen) String() string {
	switch s {
	case ScreenForm:
		return "Entry"
	case ScreenList:
		return "List"
	case ScreenCalendar:
		return "Calendar"
	default:
		return "Unknown"
	}
}

// ScreenByName resolves a --view flag value to a screen.
func ScreenByName(name string) (Screen, bool) {
	switch name {
	case "form", "entry":
		return ScreenForm, true
	case "list":
		return ScreenList, true
	case "calendar":
		return ScreenCalendar, true
	}
	return ScreenList, false
}
