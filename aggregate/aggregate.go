// Package aggregate reduces resolved field values for display.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/jedipunkz/fieldlens/accessor"
	"github.com/jedipunkz/fieldlens/value"
)

// Kind is an aggregation over a list of values.
type Kind string

const (
	Count Kind = "count"
	First Kind = "first"
	Last  Kind = "last"
	Avg   Kind = "avg"
	Max   Kind = "max"
	Min   Kind = "min"
)

// Kinds lists every aggregation in canonical order.
var Kinds = []Kind{Count, First, Last, Avg, Max, Min}

func (k Kind) String() string {
	return string(k)
}

// Numeric reports whether k needs numeric input.
func (k Kind) Numeric() bool {
	return k == Avg || k == Max || k == Min
}

// ParseKind accepts any case and the long forms "average", "maximum" and "minimum".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "count":
		return Count, nil
	case "first":
		return First, nil
	case "last":
		return Last, nil
	case "avg", "average", "mean":
		return Avg, nil
	case "max", "maximum":
		return Max, nil
	case "min", "minimum":
		return Min, nil
	}
	return "", errors.Errorf("unknown aggregation %q", s)
}

// NotAvailable is the display text for anything that cannot be computed.
const NotAvailable = "N/A"

// Result is an aggregate value and its display text. Value is nil when nothing
// could be computed.
type Result struct {
	Value   *value.Value `json:"value"`
	Display string       `json:"display"`
}

// Values turns a resolved value into the list an aggregation runs over: array
// items, nothing for null, or the single value itself.
func Values(v *value.Value) []*value.Value {
	switch v.Kind() {
	case value.Array:
		return v.Items()
	case value.Null:
		return nil
	}
	return []*value.Value{v}
}

// AggregatePath resolves path on doc and aggregates whatever it finds.
func AggregatePath(doc *value.Value, path string, kind Kind) Result {
	return Aggregate(Values(accessor.Resolve(doc, path)), kind)
}

// Aggregate never fails: uncomputable cases come back as a nil value and "N/A".
func Aggregate(values []*value.Value, kind Kind) Result {
	switch kind {
	case Count:
		return Result{
			Value:   value.NewNumber(float64(len(values))),
			Display: fmt.Sprintf("%d items", len(values)),
		}
	case First:
		if len(values) == 0 {
			return Result{Display: "First: " + NotAvailable}
		}
		v := values[0]
		return Result{Value: v, Display: "First: " + FormatScalar(v)}
	case Last:
		if len(values) == 0 {
			return Result{Display: "Last: " + NotAvailable}
		}
		v := values[len(values)-1]
		return Result{Value: v, Display: "Last: " + FormatScalar(v)}
	case Avg, Max, Min:
		return numeric(values, kind)
	}
	return Result{Display: NotAvailable}
}

func numeric(values []*value.Value, kind Kind) Result {
	nums := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		if d, ok := toDecimal(v); ok {
			nums = append(nums, d)
		}
	}
	if len(nums) == 0 {
		return Result{Display: NotAvailable}
	}

	switch kind {
	case Avg:
		avg := decimal.Sum(nums[0], nums[1:]...).Div(decimal.NewFromInt(int64(len(nums))))
		return Result{
			Value:   value.NewNumber(avg.InexactFloat64()),
			Display: "Avg: " + avg.StringFixed(2),
		}
	case Max:
		m := decimal.Max(nums[0], nums[1:]...)
		return Result{Value: value.NewNumber(m.InexactFloat64()), Display: "Max: " + m.String()}
	default:
		m := decimal.Min(nums[0], nums[1:]...)
		return Result{Value: value.NewNumber(m.InexactFloat64()), Display: "Min: " + m.String()}
	}
}

// toDecimal coerces numbers and numeric strings. Everything else is skipped.
func toDecimal(v *value.Value) (decimal.Decimal, bool) {
	switch v.Kind() {
	case value.Number:
		if d, err := decimal.NewFromString(v.NumberLiteral()); err == nil {
			return d, true
		}
		return decimal.NewFromFloat(v.Float()), true
	case value.String:
		s := strings.TrimSpace(v.Str())
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// FormatScalar renders any value as short display text.
func FormatScalar(v *value.Value) string {
	switch v.Kind() {
	case value.Null:
		return NotAvailable
	case value.Array:
		if v.Len() == 0 {
			return "Empty array"
		}
		return fmt.Sprintf("Array (%d items)", v.Len())
	case value.Object:
		if v.Len() == 0 {
			return "Empty object"
		}
		return "Object"
	case value.Number:
		return value.FormatNumber(v.Float())
	}
	return v.String()
}
