// Package tui is the terminal front-end of the signup form.
//
// It drives the same field descriptors, form state and registration store as
// the web front-end. Input is sanitized after every keystroke and each field
// shows its first validation error inline. The submission runs in a tea.Cmd
// and reports back with SubmittedMsg; on success the model records the login
// URL and quits.
//
//	m := tui.New(client, tui.WithLoginURL(cfg.LoginURL), tui.WithLogger(log))
//	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
package tui
