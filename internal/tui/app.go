package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ShayCichocki/todolist/internal/screen"
	"github.com/ShayCichocki/todolist/internal/todo"
)

// EmptyTextAlert is shown when the user adds an empty item.
const EmptyTextAlert = "Please enter something to do."

// Panel titles.
const (
	TodosTitle     = "Todo List:"
	CompletedTitle = "Completed Tasks:"
)

// LoadedMsg is sent when the lists have been read from storage.
type LoadedMsg struct {
	Err error
}

// Focus identifies which part of the todo screen receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusTodos
	FocusCompleted
)

// Options configures the App.
type Options struct {
	// SkipLanding starts on the todo screen.
	SkipLanding bool
}

// App is the root bubbletea model.
type App struct {
	screen *screen.Screen
	logger *log.Logger
	keys   KeyMap

	header    *Header
	input     *InputField
	todos     *ListPanel
	completed *ListPanel
	footer    *Footer

	landing  bool
	focus    Focus
	editing  bool
	width    int
	height   int
	quitting bool
}

// NewApp creates the root model over s.
func NewApp(s *screen.Screen, logger *log.Logger, opts Options) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &App{
		screen:    s,
		logger:    logger,
		keys:      DefaultKeyMap(),
		header:    NewHeader(),
		input:     NewInputField(),
		todos:     NewListPanel(TodosTitle),
		completed: NewListPanel(CompletedTitle),
		footer:    NewFooter(),
		landing:   !opts.SkipLanding,
		width:     80,
		height:    24,
	}
	a.updateSizes()
	a.refresh()
	return a
}

// NewProgram creates a bubbletea program running app.
func NewProgram(app *App, altScreen bool) *tea.Program {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tea.NewProgram(app, opts...)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadCmd()}
	if !a.landing {
		cmds = append(cmds, a.setFocus(FocusInput))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Err: a.screen.Load(context.Background())}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case LoadedMsg:
		if msg.Err != nil {
			a.logger.Error("error loading lists", "err", msg.Err)
		}
		a.refresh()
		return a, nil

	case AddSubmittedMsg:
		return a, a.add(msg.Text)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.editing {
		return a, a.todos.UpdateEditor(msg)
	}
	if a.focus == FocusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		a.quitting = true
		return a, tea.Quit
	}

	if a.landing {
		if key.Matches(msg, a.keys.Continue) {
			a.landing = false
			return a, a.setFocus(FocusInput)
		}
		return a, nil
	}

	a.footer.ClearAlert()

	if a.editing {
		return a, a.handleEditKey(msg)
	}

	if key.Matches(msg, a.keys.Focus) {
		return a, a.setFocus((a.focus + 1) % 3)
	}

	if a.focus == FocusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.footer.ToggleHelp()
	case key.Matches(msg, a.keys.Up):
		a.activePanel().MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.activePanel().MoveDown()
	case key.Matches(msg, a.keys.Toggle):
		a.toggle()
	case key.Matches(msg, a.keys.Edit):
		return a, a.beginEdit()
	case key.Matches(msg, a.keys.Promote):
		a.promote()
	case key.Matches(msg, a.keys.Delete):
		a.deleteSelected()
	case key.Matches(msg, a.keys.Cancel):
		return a, a.setFocus(FocusInput)
	}
	return a, nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Save):
		a.check(a.screen.CommitEdit(a.todos.EditorValue()))
		a.endEdit()
		return nil
	case key.Matches(msg, a.keys.Cancel):
		a.check(a.screen.CancelEdit())
		a.endEdit()
		return nil
	}

	cmd := a.todos.UpdateEditor(msg)
	a.check(a.screen.SetDraft(a.todos.EditorValue()))
	return cmd
}

func (a *App) add(text string) tea.Cmd {
	item, err := a.screen.Add(text)
	if errors.Is(err, todo.ErrEmptyText) {
		a.footer.SetAlert(EmptyTextAlert)
		return nil
	}
	if err != nil {
		a.check(err)
		return nil
	}
	a.logger.Debug("added todo", "id", item.ID)
	a.input.Reset()
	a.refresh()
	a.todos.cursor = a.todos.Len() - 1
	a.todos.ensureVisible()
	return nil
}

func (a *App) toggle() {
	switch a.focus {
	case FocusTodos:
		a.check(a.screen.ToggleTodo(a.todos.Cursor()))
	case FocusCompleted:
		a.check(a.screen.ToggleCompleted(a.completed.Cursor()))
	}
	a.refresh()
}

func (a *App) beginEdit() tea.Cmd {
	if a.focus != FocusTodos || a.todos.Len() == 0 {
		return nil
	}
	if err := a.screen.BeginEdit(a.todos.Cursor()); err != nil {
		a.check(err)
		return nil
	}
	a.editing = true
	a.refresh()
	view := a.screen.View()
	draft := ""
	if i := view.EditIndex(); i >= 0 {
		draft = view.Todos[i].Draft
	}
	return a.todos.StartEdit(draft)
}

func (a *App) endEdit() {
	a.editing = false
	a.todos.StopEdit()
	a.refresh()
}

func (a *App) promote() {
	n, err := a.screen.PromoteSelected()
	if err != nil {
		a.check(err)
		return
	}
	if n > 0 {
		a.footer.SetMessage(fmt.Sprintf("Moved %d to completed", n))
	}
	a.refresh()
}

func (a *App) deleteSelected() {
	todos, completed, err := a.screen.DeleteSelected()
	if err != nil {
		a.check(err)
		return
	}
	if n := todos + completed; n > 0 {
		a.footer.SetMessage(fmt.Sprintf("Deleted %d", n))
	}
	a.refresh()
}

// check logs errors from gestures that referred to something no longer there.
func (a *App) check(err error) {
	if err != nil {
		a.logger.Debug("gesture ignored", "err", err)
	}
}

func (a *App) setFocus(f Focus) tea.Cmd {
	a.focus = f
	a.todos.SetFocused(f == FocusTodos)
	a.completed.SetFocused(f == FocusCompleted)
	if f == FocusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

func (a *App) activePanel() *ListPanel {
	if a.focus == FocusCompleted {
		return a.completed
	}
	return a.todos
}

// refresh copies the screen state into the panels.
func (a *App) refresh() {
	view := a.screen.View()
	loading := !view.Ready()
	a.todos.SetLoading(loading)
	a.completed.SetLoading(loading)
	a.todos.SetRows(view.Todos)
	a.completed.SetRows(view.Completed)
}

// updateSizes splits the terminal between the header, input, panels and footer.
func (a *App) updateSizes() {
	a.header.SetSize(a.width, a.height)
	a.input.SetWidth(a.width)
	a.footer.SetWidth(a.width)

	inputHeight := 3
	footerHeight := 2
	panelsHeight := max(a.height-a.header.Height()-inputHeight-footerHeight, 6)
	todosHeight := panelsHeight / 2
	a.todos.SetSize(a.width, todosHeight)
	a.completed.SetSize(a.width, panelsHeight-todosHeight)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.landing {
		return a.header.LandingView()
	}

	var keys help.KeyMap = a.keys
	if a.editing {
		keys = editKeys{a.keys}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		a.input.View(),
		a.todos.View(),
		a.completed.View(),
		a.footer.View(keys),
	)
}

// Landing reports whether the landing screen is shown.
func (a *App) Landing() bool {
	return a.landing
}

// Focus returns the focused part of the screen.
func (a *App) Focus() Focus {
	return a.focus
}

// Editing reports whether an item is being edited inline.
func (a *App) Editing() bool {
	return a.editing
}
