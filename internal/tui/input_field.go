package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AddSubmittedMsg is sent when the user presses enter in the input field.
// Text is passed as typed, including when it is empty.
type AddSubmittedMsg struct {
	Text string
}

// InputField is the text input for new todo items.
type InputField struct {
	input   textinput.Model
	width   int
	focused bool
}

// NewInputField creates a new InputField.
func NewInputField() *InputField {
	ti := textinput.New()
	ti.Placeholder = "Enter something to do..."
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Width = 60

	return &InputField{
		input: ti,
		width: 80,
	}
}

// SetWidth sets the width of the input field.
func (f *InputField) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 4 // prompt and padding
}

// Update handles messages for the input field.
func (f *InputField) Update(msg tea.Msg) (*InputField, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		text := f.input.Value()
		return f, func() tea.Msg {
			return AddSubmittedMsg{Text: text}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// Value returns the current text.
func (f *InputField) Value() string {
	return f.input.Value()
}

// Reset clears the input.
func (f *InputField) Reset() {
	f.input.Reset()
}

// View renders the input field.
func (f *InputField) View() string {
	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	borderColor := lipgloss.Color("240")
	if f.focused {
		borderColor = lipgloss.Color("63")
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(f.width - 2)

	prompt := promptStyle.Render("+ ")
	return boxStyle.Render(prompt + f.input.View())
}

// Focus sets focus on the input field.
func (f *InputField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

// Blur removes focus from the input field.
func (f *InputField) Blur() {
	f.focused = false
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f *InputField) Focused() bool {
	return f.focused
}
