package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedipunkz/fieldlens/schema"
	"github.com/jedipunkz/fieldlens/value"
)

const quotesDoc = `{"meta":{"symbol":"AAPL"},"results":[{"date":"2024-01-01","close":150.2},{"date":"2024-01-02","close":151.8}]}`

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keyLeft  = tea.KeyPressMsg{Code: tea.KeyLeft}
	keyRight = tea.KeyPressMsg{Code: tea.KeyRight}
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyCtrlN = tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	keyCtrlA = tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}
)

func newModel(t *testing.T) *Model {
	t.Helper()
	return New(value.MustParse(quotesDoc), nil)
}

func rowPaths(m *Model) []string {
	var out []string
	for _, r := range m.rows {
		out = append(out, r.path)
	}
	return out
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestFuzzyFind(t *testing.T) {
	tests := []struct {
		key   string
		query string
		want  bool
	}{
		{"results.close", "", true},
		{"results.close", "rc", true},
		{"results.close", "close", true},
		{"results.close", "CLOSE", true},
		{"results.close", "cr", false},
		{"meta.symbol", "close", false},
		{"données.prix", "dp", true},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, fuzzyFind(test.key, test.query), "%s ~ %s", test.key, test.query)
	}
}

func TestNewListsEveryDescriptor(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, []string{"meta", "meta.symbol", "results", "results.date", "results.close"}, rowPaths(m))
	assert.Equal(t, 0, m.cursor)
}

func TestNavigationWraps(t *testing.T) {
	m := newModel(t)

	press(m, keyDown, keyCtrlN)
	assert.Equal(t, 2, m.cursor)

	press(m, keyUp, keyUp, keyUp)
	assert.Equal(t, 4, m.cursor)

	press(m, keyDown)
	assert.Equal(t, 0, m.cursor)
}

func TestQueryFilters(t *testing.T) {
	m := newModel(t)

	m.setQuery("close")
	assert.Equal(t, []string{"results.close"}, rowPaths(m))

	m.setQuery("zzz")
	assert.Empty(t, m.rows)
	assert.Equal(t, -1, m.cursor)
	assert.Contains(t, m.render(), "No matching fields.")

	m.setQuery("")
	press(m, keyDown, keyEnter)
	assert.Equal(t, "meta.symbol", m.query.Value())
	assert.Equal(t, []string{"meta.symbol"}, rowPaths(m))
}

func TestTreeMode(t *testing.T) {
	m := newModel(t)
	press(m, keyTab)
	require.Equal(t, treeMode, m.mode)
	assert.Equal(t, []string{"meta", "meta.symbol", "results", "results[].date", "results[].close"}, rowPaths(m))

	// collapse meta, then open it again
	press(m, keyLeft)
	assert.Equal(t, []string{"meta", "results", "results[].date", "results[].close"}, rowPaths(m))
	press(m, keyRight)
	assert.Len(t, m.rows, 5)

	// left on a leaf moves to its parent
	press(m, keyDown, keyDown, keyDown)
	require.Equal(t, "results[].date", m.rows[m.cursor].path)
	press(m, keyLeft)
	assert.Equal(t, "results", m.rows[m.cursor].path)

	m.setQuery("close")
	assert.Equal(t, []string{"results", "results[].close"}, rowPaths(m))

	// back to the list on the same path when it exists there
	m.setQuery("")
	m.moveTo("meta.symbol")
	press(m, keyTab)
	assert.Equal(t, listMode, m.mode)
	assert.Equal(t, "meta.symbol", m.rows[m.cursor].path)
}

func TestTreeRowsHonourExpansion(t *testing.T) {
	nodes := schema.BuildTree(value.MustParse(quotesDoc))
	assert.Len(t, treeRows(nodes, ""), 2)

	nodes[1].IsExpanded = true
	rows := treeRows(nodes, "")
	require.Len(t, rows, 4)
	assert.Equal(t, 1, rows[2].depth)
	assert.Equal(t, "Date", rows[2].label)
}

func TestAggregationCycle(t *testing.T) {
	m := newModel(t)
	m.setQuery("results.close")
	require.Equal(t, []string{"results.close"}, rowPaths(m))

	press(m, keyCtrlA)
	assert.Contains(t, m.valuePane(), "First: 150.2")

	press(m, keyCtrlA, keyCtrlA)
	assert.Contains(t, m.valuePane(), "Avg: 151.00")
	assert.Contains(t, m.renderRow(0), "[avg]")

	press(m, keyCtrlA, keyCtrlA, keyCtrlA, keyCtrlA)
	_, ok := m.aggregation(m.rows[0])
	assert.False(t, ok)

	// scalars without options do nothing
	m.setQuery("meta.symbol")
	press(m, keyCtrlA)
	assert.Empty(t, m.aggregations["meta.symbol"])
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	cmd := press(m, keyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSize(t *testing.T) {
	m := newModel(t)
	press(m, tea.WindowSizeMsg{Width: 120, Height: 12})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 4, m.listHeight())

	press(m, keyUp)
	assert.Equal(t, 4, m.cursor)
	assert.Equal(t, 1, m.offset)
}
