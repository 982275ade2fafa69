package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for both views.
type keyMap struct {
	// Global
	Quit key.Binding

	// Login view
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Toggle    key.Binding

	// Chart view
	Refresh     key.Binding
	CycleSeries key.Binding
	LogOut      key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Sign in"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle remember me"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		CycleSeries: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next series"),
		),
		LogOut: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Log out"),
		),
	}
}
