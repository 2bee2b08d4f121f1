package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Digits    key.Binding
	Submit    key.Binding
	Delete    key.Binding
	Clear     key.Binding
	PlayAgain key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		// Digits is help-only; typed runes go through the machine's validation.
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "type")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Delete:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("←", "delete")),
		Clear:     key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("c", "clear")),
		PlayAgain: key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p", "play again")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
