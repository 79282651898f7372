package widget

import (
	"strings"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/internal/logging"
	"github.com/jedipunkz/fieldlens/schema"
	"github.com/jedipunkz/fieldlens/value"
)

const quotesDoc = `{
	"meta": {"symbol": "AAPL", "active": true},
	"price": 151.25,
	"results": [
		{"date": "2024-01-01", "close": 150.2},
		{"date": "2024-01-02", "close": 151.8}
	]
}`

func TestParseSelection(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Selection
		wantErr bool
	}{
		"path only":      {in: "meta.symbol", want: Selection{Path: "meta.symbol"}},
		"with agg":       {in: "results.close:avg", want: Selection{Path: "results.close", Aggregation: aggregate.Avg}},
		"long agg":       {in: "results.close:average", want: Selection{Path: "results.close", Aggregation: aggregate.Avg}},
		"with name":      {in: "results.close:max:Best Close", want: Selection{Path: "results.close", Aggregation: aggregate.Max, DisplayName: "Best Close"}},
		"name no agg":    {in: "price::Price Now", want: Selection{Path: "price", DisplayName: "Price Now"}},
		"name has colon": {in: "price::At 10:30", want: Selection{Path: "price", DisplayName: "At 10:30"}},
		"empty path":     {in: ":avg", wantErr: true},
		"bad agg":        {in: "price:median", wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseSelection(test.in)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestLoadSelections(t *testing.T) {
	want := []Selection{
		{Path: "meta.symbol", DisplayName: "Ticker"},
		{Path: "results.close", Aggregation: aggregate.Avg},
	}

	tests := map[string]string{
		"yaml object": `
fields:
  - path: meta.symbol
    displayName: Ticker
  - path: results.close
    aggregation: mean
`,
		"yaml list": `
- path: meta.symbol
  displayName: Ticker
- path: results.close
  aggregation: avg
`,
		"json": `{"fields": [{"path": "meta.symbol", "displayName": "Ticker"}, {"path": "results.close", "aggregation": "avg"}]}`,
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := LoadSelections(strings.NewReader(in))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadSelectionsErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "  \n",
		"scalar":       "hello",
		"missing path": "- aggregation: avg\n",
		"bad agg":      "- path: a\n  aggregation: median\n",
		"bad yaml":     "fields: [",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSelections(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestSelectionLabel(t *testing.T) {
	assert.Equal(t, "Close", Selection{Path: "results[].close"}.Label())
	assert.Equal(t, "Stock Price", Selection{Path: "quote.stockPrice"}.Label())
	assert.Equal(t, "Mine", Selection{Path: "quote.stockPrice", DisplayName: "Mine"}.Label())
	assert.Equal(t, "[]", Selection{Path: "[]"}.Label())
}

func TestSuggest(t *testing.T) {
	descs := schema.Analyze(value.MustParse(quotesDoc), 0)

	got := Suggest(descs, 0)
	assert.Equal(t, []Selection{
		{Path: "price"},
		{Path: "results.close", Aggregation: aggregate.Avg},
	}, got)

	assert.Len(t, Suggest(descs, 1), 1)
	assert.Empty(t, Suggest(nil, 5))
}

func TestEvaluate(t *testing.T) {
	logging.InitTest()
	doc := value.MustParse(quotesDoc)
	fields := Evaluate(doc, []Selection{
		{Path: "meta.symbol"},
		{Path: "results.close", Aggregation: aggregate.Avg, DisplayName: "Avg Close"},
		{Path: "results.close", Aggregation: aggregate.Count},
		{Path: "meta.active"},
		{Path: "price"},
		{Path: "nope.nothing"},
		{Path: "nope.nothing", Aggregation: aggregate.Max},
	})
	require.Len(t, fields, 7)

	var lines []string
	for _, f := range fields {
		lines = append(lines, f.Label+" = "+f.Display())
	}
	autogold.Expect([]string{
		"Symbol = AAPL", "Avg Close = Avg: 151.00", "Close = 2 items",
		"Active = True",
		"Price = $151.25",
		"Nothing = N/A",
		"Nothing = N/A",
	}).Equal(t, lines)

	assert.True(t, value.Equal(value.MustParse(`[150.2, 151.8]`), fields[1].Raw))
	assert.Equal(t, 151.0, fields[1].Result.Value.Float())
	assert.Equal(t, aggregate.HintNumber, fields[1].Hint.Kind)
	assert.Equal(t, "✓", fields[3].Hint.Icon)
	assert.Nil(t, fields[5].Raw)
	assert.Nil(t, fields[5].Result)
	assert.Equal(t, aggregate.HintEmpty, fields[5].Hint.Kind)
}
