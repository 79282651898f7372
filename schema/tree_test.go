package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedipunkz/fieldlens/value"
)

func nodePaths(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Path)
	}
	return out
}

func TestBuildTree(t *testing.T) {
	nodes := BuildTree(value.MustParse(quotesDoc))
	require.Equal(t, []string{"meta", "results"}, nodePaths(nodes))

	meta := nodes[0]
	assert.Equal(t, 0, meta.Depth)
	assert.Equal(t, "Meta", meta.DisplayLabel)
	assert.Equal(t, Object, meta.Kind)
	assert.False(t, meta.IsExpanded)
	require.Equal(t, []string{"meta.symbol"}, nodePaths(meta.Children))
	assert.Equal(t, 1, meta.Children[0].Depth)
	assert.Equal(t, "AAPL", meta.Children[0].SampleValue.Str())

	results := nodes[1]
	assert.Equal(t, ArrayOfObjects, results.Kind)
	require.NotNil(t, results.ArrayLength)
	assert.Equal(t, 2, *results.ArrayLength)
	assert.Equal(t, []string{"results[].date", "results[].close"}, nodePaths(results.Children))
	assert.True(t, results.Children[1].IsFinancialData)
	assert.False(t, results.IsExpanded)
}

func TestBuildTreeOptions(t *testing.T) {
	doc := value.MustParse(quotesDoc)

	nodes := BuildTree(doc, WithArrayItems(false))
	assert.Empty(t, nodes[1].Children)

	nodes = BuildTree(doc, WithAutoExpandArrays(true))
	assert.True(t, nodes[1].IsExpanded)
	assert.False(t, nodes[0].IsExpanded)

	nodes = BuildTree(doc, WithSampleValues(false))
	assert.Nil(t, nodes[0].SampleValue)
	assert.Nil(t, nodes[0].Children[0].SampleValue)

	nodes = BuildTree(value.MustParse(`{"a": {"b": {"c": 1}}}`), WithMaxDepth(0))
	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Children)

	nodes = BuildTree(value.MustParse(`{"a": {"b": {"c": 1}}}`), WithMaxDepth(1))
	require.Len(t, nodes[0].Children, 1)
	assert.Empty(t, nodes[0].Children[0].Children)
}

func TestBuildTreeGroupByDataType(t *testing.T) {
	doc := value.MustParse(`{"obj": {"x": 1}, "count": 3, "name": "x", "list": [1]}`)

	assert.Equal(t, []string{"obj", "count", "name", "list"}, nodePaths(BuildTree(doc)))
	assert.Equal(t, []string{"name", "count", "list", "obj"}, nodePaths(BuildTree(doc, WithGroupByDataType(true))))
}

func TestBuildTreeRootArray(t *testing.T) {
	doc := value.MustParse(`[{"close": 1}, {"close": 2}]`)
	nodes := BuildTree(doc)
	require.Equal(t, []string{"[].close"}, nodePaths(nodes))
	assert.Equal(t, 0, nodes[0].Depth)

	assert.Empty(t, BuildTree(doc, WithArrayItems(false)))
	assert.Empty(t, BuildTree(value.MustParse(`[1, 2]`)))
}

func TestBuildTreeIsFresh(t *testing.T) {
	doc := value.MustParse(quotesDoc)
	first := BuildTree(doc)
	first[0].IsExpanded = true

	second := BuildTree(doc)
	assert.False(t, second[0].IsExpanded)
}

// The tree and the flat list come from one traversal and must agree.
func TestTreeMatchesAnalysis(t *testing.T) {
	doc := value.MustParse(`{
		"portfolio": {"name": "core", "value": 1200.5, "positions": [{"ticker": "A", "qty": 3}]},
		"asOf": "2024-06-01",
		"tags": ["x"]
	}`)

	a := New(Options{MaxDepth: 4})
	descs := a.Analyze(doc)
	nodes := a.BuildTree(doc)

	checked := 0
	for _, root := range nodes {
		root.Walk(func(n *Node) bool {
			if strings.Contains(n.Path, "[]") {
				return true
			}
			d, ok := Find(descs, n.Path)
			require.True(t, ok, "missing descriptor for %s", n.Path)
			assert.Equal(t, d.Kind, n.Kind, n.Path)
			assert.Equal(t, d.ValueType, n.ValueType, n.Path)
			assert.Equal(t, d.AggregationOptions, n.AggregationOptions, n.Path)
			assert.Equal(t, d.IsFinancialData, n.IsFinancialData, n.Path)
			assert.Equal(t, d.Depth-1, n.Depth, n.Path)
			checked++
			return true
		})
	}
	assert.Equal(t, 6, checked)

	n, ok := FindNode(nodes, "portfolio.positions[].qty")
	require.True(t, ok)
	assert.Equal(t, NumberType, n.ValueType)
	_, ok = FindNode(nodes, "nope")
	assert.False(t, ok)
}

func TestDisplayLabel(t *testing.T) {
	tests := map[string]string{
		"stockPrice":   "Stock Price",
		"close_price":  "Close Price",
		"market-cap":   "Market Cap",
		"52WeekHigh":   "52 Week High",
		"USDRate":      "USD Rate",
		"id":           "Id",
		"rsi14":        "Rsi 14",
		"alreadyOK":    "Already OK",
		"volume":       "Volume",
		"__":           "__",
		"exchange.utc": "Exchange Utc",
	}

	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, DisplayLabel(key))
		})
	}
}
