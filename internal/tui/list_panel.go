package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/todolist/internal/screen"
)

// ListPanel displays one of the two lists with a cursor, selection underline and
// an inline editor for the row in edit mode.
type ListPanel struct {
	title        string
	rows         []screen.Row
	cursor       int
	scrollOffset int
	width        int
	height       int
	focused      bool
	loading      bool

	editor textinput.Model

	// Styles
	titleStyle    lipgloss.Style
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	cursorStyle   lipgloss.Style
	hintStyle     lipgloss.Style
	emptyStyle    lipgloss.Style
}

// NewListPanel creates a panel with the given title.
func NewListPanel(title string) *ListPanel {
	editor := textinput.New()
	editor.CharLimit = 500
	editor.Prompt = ""

	return &ListPanel{
		title:  title,
		editor: editor,
		width:  80,
		height: 10,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1),

		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Underline(true),

		cursorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true),

		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
	}
}

// SetRows replaces the rendered rows, keeping the cursor in range.
func (p *ListPanel) SetRows(rows []screen.Row) {
	p.rows = rows
	if p.cursor >= len(p.rows) {
		p.cursor = len(p.rows) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureVisible()
}

// SetLoading sets whether the list is still being loaded.
func (p *ListPanel) SetLoading(loading bool) {
	p.loading = loading
}

// SetSize updates the panel dimensions.
func (p *ListPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.editor.Width = width - 20
	p.ensureVisible()
}

// SetFocused sets whether this panel has keyboard focus.
func (p *ListPanel) SetFocused(focused bool) {
	p.focused = focused
}

// Focused reports whether the panel has keyboard focus.
func (p *ListPanel) Focused() bool {
	return p.focused
}

// Cursor returns the position of the cursor row.
func (p *ListPanel) Cursor() int {
	return p.cursor
}

// Len returns the number of rows.
func (p *ListPanel) Len() int {
	return len(p.rows)
}

// MoveUp moves the cursor one row up.
func (p *ListPanel) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
		p.ensureVisible()
	}
}

// MoveDown moves the cursor one row down.
func (p *ListPanel) MoveDown() {
	if p.cursor < len(p.rows)-1 {
		p.cursor++
		p.ensureVisible()
	}
}

// StartEdit seeds the inline editor with draft and focuses it.
func (p *ListPanel) StartEdit(draft string) tea.Cmd {
	p.editor.SetValue(draft)
	p.editor.CursorEnd()
	return p.editor.Focus()
}

// StopEdit blurs the inline editor.
func (p *ListPanel) StopEdit() {
	p.editor.Blur()
	p.editor.Reset()
}

// EditorValue returns the inline editor's text.
func (p *ListPanel) EditorValue() string {
	return p.editor.Value()
}

// UpdateEditor forwards msg to the inline editor.
func (p *ListPanel) UpdateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return cmd
}

// ensureVisible adjusts scroll offset to keep the cursor visible.
func (p *ListPanel) ensureVisible() {
	visibleRows := p.visibleRows()
	if p.cursor < p.scrollOffset {
		p.scrollOffset = p.cursor
	} else if p.cursor >= p.scrollOffset+visibleRows {
		p.scrollOffset = p.cursor - visibleRows + 1
	}
}

func (p *ListPanel) visibleRows() int {
	// title and borders
	return max(p.height-3, 1)
}

// View renders the panel.
func (p *ListPanel) View() string {
	var b strings.Builder

	b.WriteString(p.titleStyle.Render(p.title))
	b.WriteString("\n")

	switch {
	case p.loading:
		b.WriteString(p.emptyStyle.Render("  Loading..."))
	case len(p.rows) == 0:
		b.WriteString(p.emptyStyle.Render("  Nothing here"))
	default:
		end := min(p.scrollOffset+p.visibleRows(), len(p.rows))
		for i := p.scrollOffset; i < end; i++ {
			b.WriteString(p.renderRow(i))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	borderColor := lipgloss.Color("240")
	if p.focused {
		borderColor = lipgloss.Color("63")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(p.width - 2).
		Height(p.height - 2).
		Render(b.String())
}

// renderRow renders one row. A row in edit mode renders as the editor even when
// it is selected, so the underline is not shown while editing.
func (p *ListPanel) renderRow(i int) string {
	row := p.rows[i]

	marker := "  "
	if p.focused && i == p.cursor {
		marker = p.cursorStyle.Render("› ")
	}

	if row.Editing {
		return marker + p.editor.View() + " " + p.hintStyle.Render("[enter] save")
	}

	text := p.truncate(row.Text)
	if row.Selected {
		return marker + p.selectedStyle.Render(text)
	}
	return marker + p.normalStyle.Render(text)
}

func (p *ListPanel) truncate(text string) string {
	maxLen := max(p.width-8, 10)
	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return text
}
