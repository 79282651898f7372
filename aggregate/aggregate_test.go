package aggregate

import (
	"testing"
	"time"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedipunkz/fieldlens/value"
)

func nums(ns ...float64) []*value.Value {
	out := make([]*value.Value, 0, len(ns))
	for _, n := range ns {
		out = append(out, value.NewNumber(n))
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := map[string]struct {
		values  []*value.Value
		kind    Kind
		want    *value.Value
		display string
	}{
		"count":          {nums(1, 2, 3), Count, value.NewNumber(3), "3 items"},
		"count empty":    {nil, Count, value.NewNumber(0), "0 items"},
		"first":          {nums(4, 5), First, value.NewNumber(4), "First: 4"},
		"last":           {nums(4, 5), Last, value.NewNumber(5), "Last: 5"},
		"first empty":    {nil, First, nil, "First: N/A"},
		"last empty":     {nil, Last, nil, "Last: N/A"},
		"avg":            {nums(1, 2, 3), Avg, value.NewNumber(2), "Avg: 2.00"},
		"avg closes":     {nums(150.2, 151.8), Avg, value.NewNumber(151), "Avg: 151.00"},
		"avg fraction":   {nums(0.1, 0.2), Avg, value.NewNumber(0.15), "Avg: 0.15"},
		"max":            {nums(1, 99, 3), Max, value.NewNumber(99), "Max: 99"},
		"min":            {nums(7, 1, 3), Min, value.NewNumber(1), "Min: 1"},
		"max empty":      {nil, Max, nil, "N/A"},
		"min no numbers": {[]*value.Value{value.NewString("x"), value.NewBool(true)}, Min, nil, "N/A"},
		"unknown kind":   {nums(1), Kind("median"), nil, "N/A"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := Aggregate(test.values, test.kind)
			assert.Equal(t, test.display, got.Display)
			if test.want == nil {
				assert.Nil(t, got.Value)
				return
			}
			assert.True(t, value.Equal(test.want, got.Value), "value %s", got.Value)
		})
	}
}

func TestAggregateCoercesStrings(t *testing.T) {
	values := []*value.Value{
		value.NewString("10.5"),
		value.NewString(" 4.5 "),
		value.NewString("n/a"),
		value.NewNull(),
		value.NewNumber(5),
		value.MustParse(`{"x": 1}`),
	}

	got := Aggregate(values, Avg)
	assert.Equal(t, "Avg: 6.67", got.Display)

	assert.Equal(t, "Max: 10.5", Aggregate(values, Max).Display)
	assert.Equal(t, "6 items", Aggregate(values, Count).Display)
}

func TestAggregatePath(t *testing.T) {
	doc := value.MustParse(`{"items": [{"p": 1}, {"p": 2}, {"p": 3}], "single": 7}`)

	assert.Equal(t, "Avg: 2.00", AggregatePath(doc, "items[].p", Avg).Display)
	assert.Equal(t, "Avg: 2.00", AggregatePath(doc, "items.p", Avg).Display)
	assert.Equal(t, "1 items", AggregatePath(doc, "single", Count).Display)
	assert.Equal(t, "0 items", AggregatePath(doc, "missing", Count).Display)
	assert.Equal(t, "N/A", AggregatePath(doc, "missing", Max).Display)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind(" Average ")
	require.NoError(t, err)
	assert.Equal(t, Avg, got)

	_, err = ParseKind("median")
	assert.Error(t, err)
}

func TestFormatScalar(t *testing.T) {
	tests := map[string]string{
		`null`:          "N/A",
		`[]`:            "Empty array",
		`[1, 2]`:        "Array (2 items)",
		`{}`:            "Empty object",
		`{"a": 1}`:      "Object",
		`"text"`:        "text",
		`12.5`:          "12.5",
		`true`:          "true",
		`1.0`:           "1",
		`-3`:            "-3",
		`"with space "`: "with space ",
	}

	for src, want := range tests {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, want, FormatScalar(value.MustParse(src)))
		})
	}

	assert.Equal(t, "N/A", FormatScalar(nil))
}

func TestParseDate(t *testing.T) {
	dates := []string{
		"2024-01-02",
		"2024-01",
		"2024-03-05T10:00:00Z",
		"2024-03-05 10:00:00",
		"01/02/2024",
		"Jan 1 2024",
		"Mon Jan 01 2024",
		"March 5, 2024",
		"5 Mar 2024",
		" 2024-01-02 ",
	}
	for _, s := range dates {
		_, ok := ParseDate(s)
		assert.True(t, ok, "%q should parse", s)
	}

	notDates := []string{"", "AAPL", "EURUSD", "fund", "hello world", "1700000000", "12.5", "-3"}
	for _, s := range notDates {
		_, ok := ParseDate(s)
		assert.False(t, ok, "%q should not parse", s)
	}

	got, ok := ParseDate("2024-03-05T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), got.UTC())
}

func TestClassifyDisplay(t *testing.T) {
	render := func(src string) DisplayHint {
		return ClassifyDisplay(value.MustParse(src))
	}

	autogold.Expect(DisplayHint{Kind: "percentage", Formatted: "45.00%"}).Equal(t, render(`0.45`))
	autogold.Expect(DisplayHint{Kind: "currency", Formatted: "$1,234.56"}).Equal(t, render(`1234.56`))
	autogold.Expect(DisplayHint{Kind: "number", Formatted: "1,500,000"}).Equal(t, render(`1500000`))
	autogold.Expect(DisplayHint{Kind: "number", Formatted: "-2.50"}).Equal(t, render(`-2.5`))
	autogold.Expect(DisplayHint{Kind: "date", Formatted: "Jan 2, 2024"}).Equal(t, render(`"2024-01-02"`))
	autogold.Expect(DisplayHint{Kind: "date", Formatted: "Mar 5, 2024"}).Equal(t, render(`"2024-03-05T10:00:00Z"`))
	autogold.Expect(DisplayHint{Kind: "date", Formatted: "Jan 1, 2024"}).Equal(t, render(`"2024-01"`))
	autogold.Expect(DisplayHint{Kind: "date", Formatted: "Jan 1, 2024"}).Equal(t, render(`"Jan 1 2024"`))
	autogold.Expect(DisplayHint{Kind: "text", Formatted: "20240101"}).Equal(t, render(`"20240101"`))
	autogold.Expect(DisplayHint{Kind: "link", Formatted: "https://example.com/q", Icon: "↗"}).Equal(t, render(`"https://example.com/q"`))
	autogold.Expect(DisplayHint{Kind: "boolean", Formatted: "True", Icon: "✓"}).Equal(t, render(`true`))
	autogold.Expect(DisplayHint{Kind: "text", Formatted: "AAPL"}).Equal(t, render(`"AAPL"`))
	autogold.Expect(DisplayHint{Kind: "empty", Formatted: "N/A"}).Equal(t, render(`null`))
	autogold.Expect(DisplayHint{Kind: "array", Formatted: "Array (1 items)"}).Equal(t, render(`[1]`))
}
