package tui

import "github.com/charmbracelet/bubbles/key"

// Single-letter bindings only apply outside the editor, where they would otherwise be typed.
type keyMap struct {
	Type      key.Binding
	Record    key.Binding
	Stop      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Type: key.NewBinding(
		key.WithKeys("t", "enter"),
		key.WithHelp("t", "digitar"),
	),
	Record: key.NewBinding(
		key.WithKeys("r", "ctrl+r"),
		key.WithHelp("r", "gravar"),
	),
	Stop: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "parar"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "salvar"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "descartar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "sair"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "sair"),
	),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
