// Package tui is the interactive field browser: a fuzzy-filtered list of every
// analyzed path, a collapsible field tree, and a value pane for the selection.
package tui

import (
	"os"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/internal/logging"
	"github.com/jedipunkz/fieldlens/schema"
	"github.com/jedipunkz/fieldlens/value"
)

type viewMode int

const (
	listMode viewMode = iota
	treeMode
)

// row is one selectable line in either mode.
type row struct {
	path    string
	label   string
	depth   int
	options []aggregate.Kind
	node    *schema.Node
}

// Model is the bubbletea model of the browser.
type Model struct {
	doc     *value.Value
	descs   []*schema.Descriptor
	nodes   []*schema.Node
	parents map[*schema.Node]*schema.Node

	query textinput.Model
	keys  keyMap
	help  help.Model

	mode   viewMode
	rows   []row
	cursor int
	offset int

	// chosen aggregation per path, as an index into the row's options
	aggregations map[string]int

	width  int
	height int
}

// New analyzes doc and returns a browser positioned on the first field.
func New(doc *value.Value, analyzer *schema.Analyzer) *Model {
	if analyzer == nil {
		analyzer = schema.New(schema.DefaultOptions())
	}

	q := textinput.New()
	q.Prompt = "Search Query: "
	q.Placeholder = "path"
	q.Focus()

	m := &Model{
		doc:          doc,
		descs:        analyzer.Analyze(doc),
		nodes:        analyzer.BuildTree(doc),
		parents:      map[*schema.Node]*schema.Node{},
		query:        q,
		keys:         defaultKeyMap(),
		help:         help.New(),
		aggregations: map[string]int{},
		width:        80,
		height:       24,
	}

	for _, n := range m.nodes {
		// top-level containers start open
		if len(n.Children) > 0 {
			n.IsExpanded = true
		}
		n.Walk(func(p *schema.Node) bool {
			for _, c := range p.Children {
				m.parents[c] = p
			}
			return true
		})
	}

	m.refresh()
	logging.L().Debugw("browser ready", "descriptors", len(m.descs), "roots", len(m.nodes))
	return m
}

// Run starts the program and blocks until the user quits. When stdin is a pipe
// the program reads keys from the controlling terminal.
func Run(doc *value.Value, analyzer *schema.Analyzer) error {
	var opts []tea.ProgramOption
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return errors.Wrap(err, "opening terminal for input")
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}

	if _, err := tea.NewProgram(New(doc, analyzer), opts...).Run(); err != nil {
		return errors.Wrap(err, "running browser")
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// setQuery replaces the query text and refilters.
func (m *Model) setQuery(q string) {
	m.query.SetValue(q)
	m.query.CursorEnd()
	m.refresh()
}

// refresh rebuilds the rows for the current mode and query and keeps the
// cursor in range.
func (m *Model) refresh() {
	q := m.query.Value()
	if m.mode == treeMode {
		m.rows = treeRows(m.nodes, q)
	} else {
		m.rows = listRows(filterDescriptors(m.descs, q))
	}

	switch {
	case len(m.rows) == 0:
		m.cursor = -1
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= len(m.rows):
		m.cursor = len(m.rows) - 1
	}
	m.scroll()
}

func listRows(descs []*schema.Descriptor) []row {
	rows := make([]row, 0, len(descs))
	for _, d := range descs {
		rows = append(rows, row{
			path:    d.Path,
			label:   d.Path,
			depth:   d.Depth - 1,
			options: d.AggregationOptions,
		})
	}
	return rows
}

// treeRows flattens the expanded part of the tree. With a query, nodes that
// match or have a matching descendant are shown regardless of expansion.
func treeRows(nodes []*schema.Node, query string) []row {
	var rows []row
	var visit func(n *schema.Node)
	visit = func(n *schema.Node) {
		if query != "" && !subtreeMatches(n, query) {
			return
		}
		rows = append(rows, row{
			path:    n.Path,
			label:   n.DisplayLabel,
			depth:   n.Depth,
			options: n.AggregationOptions,
			node:    n,
		})
		if query != "" || n.IsExpanded {
			for _, c := range n.Children {
				visit(c)
			}
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return rows
}

func subtreeMatches(n *schema.Node, query string) bool {
	return !n.Walk(func(x *schema.Node) bool {
		return !fuzzyFind(x.Path, query)
	})
}

func (m *Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// aggregation is the chosen aggregation for r, if any.
func (m *Model) aggregation(r row) (aggregate.Kind, bool) {
	i, ok := m.aggregations[r.path]
	if !ok || i < 0 || i >= len(r.options) {
		return "", false
	}
	return r.options[i], true
}

// cycleAggregation steps through none and each of the row's options.
func (m *Model) cycleAggregation() {
	r, ok := m.selected()
	if !ok || len(r.options) == 0 {
		return
	}
	i, ok := m.aggregations[r.path]
	if !ok {
		i = -1
	}
	i++
	if i >= len(r.options) {
		delete(m.aggregations, r.path)
		return
	}
	m.aggregations[r.path] = i
}

func (m *Model) listHeight() int {
	h := (m.height - 4) / 2
	if h < 3 {
		h = 3
	}
	return h
}

// scroll keeps the cursor inside the visible window of rows.
func (m *Model) scroll() {
	h := m.listHeight()
	switch {
	case m.cursor < 0:
		m.offset = 0
	case m.cursor >= m.offset+h:
		m.offset = m.cursor - h + 1
	case m.cursor < m.offset:
		m.offset = m.cursor
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
