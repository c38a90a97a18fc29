package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Footer renders the alert or status line and the key hints.
type Footer struct {
	alert   string
	message string
	width   int
	help    help.Model

	// Styles
	alertStyle     lipgloss.Style
	messageStyle   lipgloss.Style
	separatorStyle lipgloss.Style
}

// NewFooter creates a new Footer instance.
func NewFooter() *Footer {
	return &Footer{
		help: help.New(),

		alertStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		messageStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")),

		separatorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")),
	}
}

// SetAlert shows an alert until ClearAlert is called.
func (f *Footer) SetAlert(alert string) {
	f.alert = alert
}

// ClearAlert removes the alert.
func (f *Footer) ClearAlert() {
	f.alert = ""
}

// Alert returns the current alert, if any.
func (f *Footer) Alert() string {
	return f.alert
}

// SetMessage sets the status message.
func (f *Footer) SetMessage(message string) {
	f.message = message
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
	f.help.Width = width
}

// ToggleHelp switches between short and full key help.
func (f *Footer) ToggleHelp() {
	f.help.ShowAll = !f.help.ShowAll
}

// ShowingAll reports whether full help is shown.
func (f *Footer) ShowingAll() bool {
	return f.help.ShowAll
}

// View renders the footer with hints from keys.
func (f *Footer) View(keys help.KeyMap) string {
	var status string
	switch {
	case f.alert != "":
		status = f.alertStyle.Render(f.alert)
	case f.message != "":
		status = f.messageStyle.Render(f.message)
	}

	hints := f.help.View(keys)
	if status == "" {
		return hints
	}
	if f.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, status, hints)
	}
	return status + f.separatorStyle.Render(" │ ") + hints
}
