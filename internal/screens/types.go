package screens

// Screen represents the different screens/views in the application
type Screen int

// Screen constants define all possible screens in the application
const (
	ScreenForm Screen = iota
	ScreenRunning
	ScreenComplete
	ScreenError
	ScreenAbout
)

// String returns the string representation of a screen
func (s Screen) String() string {
	switch s {
	case ScreenForm:
		return "Form"
	case ScreenRunning:
		return "Running"
	case ScreenComplete:
		return "Complete"
	case ScreenError:
		return "Error"
	case ScreenAbout:
		return "About"
	default:
		return "Unknown"
	}
}

// Locked reports whether form input is ignored on this screen.
func (s Screen) Locked() bool {
	return s == ScreenRunning
}
