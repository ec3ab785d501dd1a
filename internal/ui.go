package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pccopy/internal/profile"
	"pccopy/internal/screens"
)

// Styles
var (
	// Tokyo Night palette
	primaryColor    = lipgloss.Color("#7aa2f7") // blue
	secondaryColor  = lipgloss.Color("#9ece6a") // green
	warningColor    = lipgloss.Color("#e0af68") // yellow
	errorColor      = lipgloss.Color("#f7768e") // red
	successColor    = lipgloss.Color("#9ece6a") // green
	textColor       = lipgloss.Color("#c0caf5") // foreground
	dimColor        = lipgloss.Color("#565f89") // comment
	backgroundColor = lipgloss.Color("#1a1b26") // background

	asciiStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Align(lipgloss.Center).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Width(14)

	focusedLabelStyle = labelStyle.
				Foreground(primaryColor).
				Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(dimColor)

	focusedInputBoxStyle = inputBoxStyle.
				BorderForeground(primaryColor)

	menuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Foreground(textColor)

	checkboxStyle = menuItemStyle.
			Width(22)

	focusedCheckboxStyle = checkboxStyle.
				Foreground(primaryColor).
				Bold(true)

	buttonStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Foreground(textColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor)

	selectedButtonStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Background(primaryColor).
				Foreground(backgroundColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3).
			Margin(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(warningColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(errorColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(successColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor)

	consoleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Align(lipgloss.Center).
			Italic(true).
			MarginTop(1)
)

// ASCII art for the program name
const asciiArt = `╔═╗╔═╗  ╔═╗╔═╗╔═╗╦ ╦
╠═╝║    ║  ║ ║╠═╝╚╦╝
╩  ╚═╝  ╚═╝╚═╝╩   ╩ `

// Render header with the ASCII art, title and version line
func (m Model) renderHeader() string {
	ascii := asciiStyle.Render(asciiArt)
	title := titleStyle.Render(AppDesc)
	subtitle := subtitleStyle.Render(GetSubtitle())
	return ascii + "\n" + title + "\n" + subtitle
}

// place centers a rendered body in the terminal with the standard border
func (m Model) place(body string) string {
	content := borderStyle.Width(max(m.width-8, 40)).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render the main form
func (m Model) renderForm() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n")

	// Fields
	for i, label := range screens.FieldLabels {
		focused := m.focus == screens.FieldFocus(i)
		ls, bs := labelStyle, inputBoxStyle
		if focused {
			ls, bs = focusedLabelStyle, focusedInputBoxStyle
		}
		row := lipgloss.JoinHorizontal(lipgloss.Bottom, ls.Render(label), bs.Render(m.inputs[i].View()))
		s.WriteString(row + "\n")
	}
	s.WriteString("\n")

	// Checkbox grid, two per row like the classic layout
	cats := profile.Categories()
	for row := 0; row < len(cats); row += screens.GridColumns {
		var cells []string
		for col := 0; col < screens.GridColumns && row+col < len(cats); col++ {
			cells = append(cells, m.renderCheckbox(cats[row+col]))
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	s.WriteString("\n")

	// Buttons
	var buttons []string
	for i, label := range screens.ActionChoices {
		a := screens.Action(i)
		if m.focus == screens.ButtonFocus(a) {
			buttons = append(buttons, selectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, buttonStyle.Render(label))
		}
		if i < len(screens.ActionChoices)-1 {
			buttons = append(buttons, "  ")
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...) + "\n")

	if n := m.selection.Len(); n > 0 {
		s.WriteString(helpStyle.Render(fmt.Sprintf("%d of %d categories selected", n, len(cats))) + "\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return m.place(s.String())
}

func (m Model) renderCheckbox(c profile.Category) string {
	cursor := "  "
	style := checkboxStyle
	if m.focus == screens.CategoryFocus(c) {
		cursor = CurrentSymbols.Cursor + " "
		style = focusedCheckboxStyle
	}
	return style.Render(cursor + checkbox(m.selection.Has(c)) + " " + c.String())
}

// renderConsole shows the console lines of the current or last transfer
func (m Model) renderConsole() string {
	if len(m.lines) == 0 {
		return ""
	}
	return consoleStyle.Render(strings.Join(m.lines, "\n"))
}

// Render the running screen
func (m Model) renderRunning() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n")

	if m.canceling {
		s.WriteString(warningStyle.Render(FormatWarning("Canceling transfer")) + "\n")
	} else {
		s.WriteString(titleStyle.Render(m.spinner.View()+" "+m.action.String()) + "\n")
	}

	p := m.Params().Trimmed()
	s.WriteString(fmt.Sprintf("%s  %s %s %s\n", CurrentSymbols.Folder, p.OldComputer, CurrentSymbols.Arrow, p.NewComputer))
	s.WriteString(fmt.Sprintf("%s  %s\n", CurrentSymbols.File, p.Username))
	if m.logPath != "" {
		s.WriteString("Log: " + m.logPath + "\n")
	}
	s.WriteString("\n")

	if console := m.renderConsole(); console != "" {
		s.WriteString(console + "\n")
	}

	if m.canceling {
		s.WriteString(helpStyle.Render("Waiting for the current copy to stop..."))
	} else {
		s.WriteString(helpStyle.Render("Please wait... • ctrl+c: cancel and quit"))
	}

	return m.place(s.String())
}

// Render completion screen that requires manual dismissal
func (m Model) renderComplete() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(FormatSuccess(m.action.String())) + "\n\n")
	if console := m.renderConsole(); console != "" {
		s.WriteString(console + "\n\n")
	}
	s.WriteString(successStyle.Render(m.message) + "\n\n")

	sum := m.summary
	s.WriteString(subtitleStyle.Render(fmt.Sprintf("%d categories • %d paths • %s files • %s in %s",
		len(sum.Categories), sum.Pairs, FormatNumber(int64(sum.Stats.Files)), FormatBytes(sum.Stats.Bytes),
		sum.Duration.Round(time.Millisecond))) + "\n")

	s.WriteString(helpStyle.Render("Press any key to return to the form"))

	return m.place(s.String())
}

// Render error screen that requires manual dismissal
func (m Model) renderError() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(FormatError("Error")) + "\n\n")
	if console := m.renderConsole(); console != "" {
		s.WriteString(console + "\n\n")
	}
	s.WriteString(errorStyle.Render(m.message) + "\n\n")

	if m.logPath != "" {
		s.WriteString(subtitleStyle.Render("Details: "+m.logPath) + "\n")
	}
	s.WriteString(helpStyle.Render("Press any key to return to the form"))

	return m.place(s.String())
}

// Render the about screen
func (m Model) renderAbout() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n")
	s.WriteString(titleStyle.Render(GetFullVersionString()) + "\n")

	s.WriteString("Copies a user's profile from one computer's admin share to another's.\n")
	s.WriteString("Existing files on the new computer are overwritten, nothing is deleted.\n\n")

	r := m.handler.Resolver()
	s.WriteString(fmt.Sprintf("Share root: %s\n\n", r.ShareRoot("<computer>")))
	for _, c := range profile.Categories() {
		var paths []string
		for _, e := range profile.Entries(c) {
			paths = append(paths, strings.Join(e.Segments, "/"))
		}
		s.WriteString(fmt.Sprintf("%-11s %s\n", c.String(), strings.Join(paths, ", ")))
	}

	s.WriteString(helpStyle.Render("Press any key to return to the form"))

	return m.place(s.String())
}
