package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit      key.Binding
	Down      key.Binding
	Up        key.Binding
	Mode      key.Binding
	Collapse  key.Binding
	Expand    key.Binding
	Aggregate key.Binding
	Complete  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Down: key.NewBinding(
			key.WithKeys("ctrl+n", "down"),
			key.WithHelp("↓/ctrl+n", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("ctrl+p", "up"),
			key.WithHelp("↑/ctrl+p", "prev"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "list/tree"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "expand"),
		),
		Aggregate: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "aggregation"),
		),
		Complete: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use path"),
		),
	}
}

func (k keyMap) short(tree bool) []key.Binding {
	if tree {
		return []key.Binding{k.Down, k.Up, k.Collapse, k.Expand, k.Mode, k.Aggregate, k.Quit}
	}
	return []key.Binding{k.Down, k.Up, k.Complete, k.Mode, k.Aggregate, k.Quit}
}
