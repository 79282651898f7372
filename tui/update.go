package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Mode):
		m.toggleMode()
		return m, nil
	case key.Matches(msg, m.keys.Aggregate):
		m.cycleAggregation()
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		if r, ok := m.selected(); ok {
			m.setQuery(r.path)
		}
		return m, nil
	case m.mode == treeMode && key.Matches(msg, m.keys.Collapse):
		m.collapse()
		return m, nil
	case m.mode == treeMode && key.Matches(msg, m.keys.Expand):
		m.expand()
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

// move steps the cursor and wraps around at either end.
func (m *Model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.rows)) % len(m.rows)
	m.scroll()
}

// toggleMode switches between list and tree, staying on the same path when
// the other mode shows it.
func (m *Model) toggleMode() {
	path := ""
	if r, ok := m.selected(); ok {
		path = r.path
	}

	if m.mode == listMode {
		m.mode = treeMode
	} else {
		m.mode = listMode
	}
	m.cursor = 0
	m.refresh()
	m.moveTo(path)
}

func (m *Model) moveTo(path string) {
	for i, r := range m.rows {
		if r.path == path {
			m.cursor = i
			m.scroll()
			return
		}
	}
}

// collapse closes the selected node, or moves to its parent when it is
// already closed.
func (m *Model) collapse() {
	r, ok := m.selected()
	if !ok || r.node == nil {
		return
	}
	if r.node.IsExpanded && len(r.node.Children) > 0 {
		r.node.IsExpanded = false
		m.refresh()
		return
	}
	if p, ok := m.parents[r.node]; ok {
		m.moveTo(p.Path)
	}
}

func (m *Model) expand() {
	r, ok := m.selected()
	if !ok || r.node == nil || len(r.node.Children) == 0 {
		return
	}
	r.node.IsExpanded = true
	m.refresh()
}
