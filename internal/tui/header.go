package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Title is the application title shown on the landing screen and the header.
const Title = "Todo-List"

// Header renders the title bar and the landing screen.
type Header struct {
	width  int
	height int
}

// NewHeader creates a new Header.
func NewHeader() *Header {
	return &Header{
		width:  80,
		height: 24,
	}
}

// SetSize sets the available terminal size.
func (h *Header) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the one-line title bar above the lists.
func (h *Header) View() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4ECDC4")).
		Width(h.width).
		Align(lipgloss.Center).
		Render(Title)
}

// Height returns the title bar height in lines.
func (h *Header) Height() int {
	return 1
}

// LandingView renders the landing screen with its Continue action.
func (h *Header) LandingView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFC857")).
		Render(Title)

	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Foreground(lipgloss.Color("15")).
		Padding(0, 3).
		Render("Continue")

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Italic(true).
		Render("press enter")

	block := lipgloss.JoinVertical(lipgloss.Center, title, "", button, hint)
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, block)
}
