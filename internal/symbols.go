// Package internal provides Unicode symbol definitions with ASCII fallbacks.
//
// Helpdesk machines are often reached over SSH or an old Windows console, so
// every symbol the form draws has a plain ASCII twin.
package internal

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SymbolSet defines the symbols used throughout the UI
type SymbolSet struct {
	// Status indicators
	Success string
	Error   string
	Warning string

	// Form controls
	Checked   string
	Unchecked string
	Cursor    string
	Folder    string
	File      string

	// Progress animation frames
	Progress []string
	Arrow    string
}

// UnicodeSymbols provides rich Unicode symbols for modern terminals
var UnicodeSymbols = SymbolSet{
	Success: "✓",
	Error:   "✗",
	Warning: "⚠️",

	Checked:   "☑",
	Unchecked: "☐",
	Cursor:    "❯",
	Folder:    "📁",
	File:      "📄",

	Progress: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	Arrow:    "➜",
}

// ASCIISymbols provides ASCII-only fallbacks for compatibility
var ASCIISymbols = SymbolSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",

	Checked:   "[x]",
	Unchecked: "[ ]",
	Cursor:    ">",
	Folder:    "[D]",
	File:      "[F]",

	Progress: []string{"|", "/", "-", "\\"},
	Arrow:    "->",
}

// CurrentSymbols holds the active symbol set based on terminal capabilities
var CurrentSymbols SymbolSet

func init() {
	CurrentSymbols = detectSymbolSet()
}

// detectSymbolSet determines the appropriate symbol set based on terminal capabilities
func detectSymbolSet() SymbolSet {
	if v := os.Getenv("PCCOPY_ASCII"); v == "1" || v == "true" {
		return ASCIISymbols
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" || term == "vt100" || strings.HasPrefix(term, "xterm-mono") {
		return ASCIISymbols
	}

	// cmd.exe has limited Unicode support, Windows Terminal is fine
	if os.Getenv("COMSPEC") != "" && !isWindowsTerminal() {
		return ASCIISymbols
	}

	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" {
		locale := strings.ToLower(os.Getenv("LANG"))
		if !strings.Contains(locale, "utf-8") && !strings.Contains(locale, "utf8") {
			return ASCIISymbols
		}
	}

	return UnicodeSymbols
}

func isWindowsTerminal() bool {
	return os.Getenv("WT_SESSION") != ""
}

// ForceASCII switches to ASCII symbols regardless of terminal detection
func ForceASCII() {
	CurrentSymbols = ASCIISymbols
}

// progressSpinner builds a bubbles spinner from the active progress frames.
func progressSpinner() spinner.Spinner {
	return spinner.Spinner{Frames: CurrentSymbols.Progress, FPS: time.Second / 10}
}

// checkbox renders a checkbox glyph.
func checkbox(on bool) string {
	if on {
		return CurrentSymbols.Checked
	}
	return CurrentSymbols.Unchecked
}

// FormatSuccess formats a success message with the appropriate symbol
func FormatSuccess(message string) string {
	return CurrentSymbols.Success + " " + message
}

// FormatError formats an error message with the appropriate symbol
func FormatError(message string) string {
	return CurrentSymbols.Error + " " + message
}

// FormatWarning formats a warning message with the appropriate symbol
func FormatWarning(message string) string {
	return CurrentSymbols.Warning + " " + message
}
