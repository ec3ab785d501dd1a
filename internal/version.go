// Package internal provides version information and build metadata for PC Copy.
//
// To update the version, change the AppVersion constant. All other version
// strings are derived from it.
package internal

// Application metadata constants.
const (
	// AppName is the display name of the application
	AppName = "EZPZ PC Copy"

	// AppID names the binary, the config directory and the log file
	AppID = "pccopy"

	// AppVersion follows semantic versioning (major.minor.patch)
	AppVersion = "1.2.0"

	// AppAuthor is shown in the form footer
	AppAuthor = "IT Helpdesk"

	// AppDesc is the tagline used in UI and CLI help
	AppDesc = "Copy a user's profile between two computers"
)

// GetVersionString returns just the version number for programmatic use.
func GetVersionString() string {
	return AppVersion
}

// GetFullVersionString returns the application name with version for display.
// Example: "EZPZ PC Copy v1.2.0"
func GetFullVersionString() string {
	return AppName + " v" + AppVersion
}

// GetAppTitle returns the window title used by the classic form.
func GetAppTitle() string {
	return "EZPZ - PC Copy"
}

// GetSubtitle returns a compact version and author string for UI footers.
// Example: "v1.2.0 by IT Helpdesk"
func GetSubtitle() string {
	return "v" + AppVersion + " by " + AppAuthor
}
