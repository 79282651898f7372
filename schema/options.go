package schema

import (
	"strings"
	"time"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/value"
)

const (
	// DefaultMaxDepth bounds Analyze.
	DefaultMaxDepth = 3

	// DefaultTreeDepth bounds BuildTree.
	DefaultTreeDepth = 4
)

// DefaultFinancialKeywords mark a field as financial when its path contains one
// of them, ignoring case.
var DefaultFinancialKeywords = []string{
	"price", "cost", "value", "amount", "rate", "yield", "return",
	"high", "low", "open", "close", "volume", "market", "cap",
	"dividend", "earning", "revenue", "profit", "loss",
	"currency", "exchange", "stock", "share", "ticker",
	"portfolio", "investment", "fund", "etf", "bond",
}

// Options configure an Analyzer. Zero fields fall back to the defaults above.
type Options struct {
	// MaxDepth stops descent below this depth. Non-positive means DefaultMaxDepth.
	MaxDepth int

	// FinancialKeywords replaces DefaultFinancialKeywords when non-empty.
	FinancialKeywords []string

	// DateLayouts, when non-empty, limits date detection to these time.Parse
	// layouts. By default any format dateparse recognizes counts.
	DateLayouts []string
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		MaxDepth:          DefaultMaxDepth,
		FinancialKeywords: DefaultFinancialKeywords,
	}
}

// Analyzer holds classification rules. It has no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	maxDepth    int
	keywords    []string
	dateLayouts []string
}

// New returns an Analyzer for opts.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		maxDepth:    opts.MaxDepth,
		dateLayouts: opts.DateLayouts,
	}
	if a.maxDepth <= 0 {
		a.maxDepth = DefaultMaxDepth
	}

	keywords := opts.FinancialKeywords
	if len(keywords) == 0 {
		keywords = DefaultFinancialKeywords
	}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			a.keywords = append(a.keywords, k)
		}
	}

	return a
}

var defaultAnalyzer = New(DefaultOptions())

// MaxDepth returns the configured descent limit.
func (a *Analyzer) MaxDepth() int {
	return a.maxDepth
}

// IsFinancial reports whether path names financial data.
func (a *Analyzer) IsFinancial(path string) bool {
	p := strings.ToLower(path)
	for _, k := range a.keywords {
		if strings.Contains(p, k) {
			return true
		}
	}
	return false
}

// IsDate reports whether s looks like a date: any format dateparse accepts, or
// one of the configured layouts when Options.DateLayouts was set.
func (a *Analyzer) IsDate(s string) bool {
	if len(a.dateLayouts) == 0 {
		_, ok := aggregate.ParseDate(s)
		return ok
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, layout := range a.dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ValueType classifies a single value. Containers and null are ObjectType.
func (a *Analyzer) ValueType(v *value.Value) ValueType {
	switch v.Kind() {
	case value.String:
		if a.IsDate(v.Str()) {
			return DateType
		}
		return StringType
	case value.Number:
		return NumberType
	case value.Bool:
		return BooleanType
	}
	return ObjectType
}

var (
	scalarNumericOptions    = []aggregate.Kind{aggregate.Avg, aggregate.Max, aggregate.Min}
	arrayNumericOptions     = []aggregate.Kind{aggregate.Count, aggregate.Avg, aggregate.Max, aggregate.Min, aggregate.First, aggregate.Last}
	arrayOptions            = []aggregate.Kind{aggregate.Count, aggregate.First, aggregate.Last}
	emptyArrayOptions       = []aggregate.Kind{aggregate.Count}
	flattenedNumericOptions = []aggregate.Kind{aggregate.First, aggregate.Last, aggregate.Avg, aggregate.Max, aggregate.Min, aggregate.Count}
	flattenedOptions        = []aggregate.Kind{aggregate.First, aggregate.Last, aggregate.Count}
)

// options copies a rule set so callers cannot mutate the shared slices.
func options(kinds []aggregate.Kind) []aggregate.Kind {
	if len(kinds) == 0 {
		return nil
	}
	return append([]aggregate.Kind(nil), kinds...)
}
