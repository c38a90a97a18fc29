// Package tui provides the terminal user interface for todolist.
//
// The App starts on a landing screen titled "Todo-List". Pressing enter on
// Continue reveals the todo screen:
//   - an input field for new items
//   - the "Todo List:" panel of pending items
//   - the "Completed Tasks:" panel
//   - a footer with alerts and key hints
//
// Every gesture is forwarded to a screen.Screen, which owns the lists and
// persists each change. The App only keeps cursor, focus and layout state.
//
// Usage:
//
//	app := tui.NewApp(s, logger, tui.Options{})
//	if _, err := tui.NewProgram(app, true).Run(); err != nil {
//	    return err
//	}
package tui
