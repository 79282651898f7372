package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/jedipunkz/fieldlens/accessor"
	"github.com/jedipunkz/fieldlens/aggregate"
)

var (
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	financialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	paneStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true)
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	var b strings.Builder
	b.WriteString(m.query.View())
	b.WriteString("\n")

	mode := "list"
	if m.mode == treeMode {
		mode = "tree"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("[%s] %d fields", mode, len(m.rows))))
	b.WriteString("\n")

	h := m.listHeight()
	for i := m.offset; i < len(m.rows) && i < m.offset+h; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	for i := len(m.rows) - m.offset; i < h; i++ {
		b.WriteString("\n")
	}

	b.WriteString(paneStyle.Width(max(m.width, 1)).Render(m.valuePane()))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.short(m.mode == treeMode)))
	return b.String()
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	label := r.label
	if m.mode == treeMode {
		marker := "  "
		if r.node != nil && len(r.node.Children) > 0 {
			marker = "▸ "
			if r.node.IsExpanded {
				marker = "▾ "
			}
		}
		label = strings.Repeat("  ", r.depth) + marker + label
	}
	if r.node != nil && r.node.IsFinancialData {
		label += financialStyle.Render(" $")
	}
	if kind, ok := m.aggregation(r); ok {
		label += dimStyle.Render(" [" + kind.String() + "]")
	}

	if i == m.cursor {
		return selectedStyle.Render("> " + label)
	}
	return "  " + label
}

// valuePane shows the resolved value of the selected row with its display
// hint and, when one is chosen, the aggregate.
func (m *Model) valuePane() string {
	r, ok := m.selected()
	if !ok {
		return dimStyle.Render("No matching fields.")
	}

	resolved := accessor.Resolve(m.doc, r.path)
	hint := aggregate.ClassifyDisplay(resolved)

	var b strings.Builder
	b.WriteString(headerStyle.Render(r.path))
	b.WriteString("  ")
	b.WriteString(hint.Formatted)
	if hint.Icon != "" {
		b.WriteString(" " + hint.Icon)
	}
	b.WriteString(dimStyle.Render(" (" + string(hint.Kind) + ")"))
	if kind, ok := m.aggregation(r); ok {
		b.WriteString("  ")
		b.WriteString(selectedStyle.Render(aggregate.Aggregate(aggregate.Values(resolved), kind).Display))
	}
	b.WriteString("\n")

	lines := strings.Split(HighlightJSON(prettyValue(resolved)), "\n")
	room := m.height - m.listHeight() - 6
	if room < 1 {
		room = 1
	}
	if len(lines) > room {
		lines = append(lines[:room], dimStyle.Render("…"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
