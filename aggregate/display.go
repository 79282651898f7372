package aggregate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jedipunkz/fieldlens/value"
)

// HintKind is a rendering hint for a raw value.
type HintKind string

const (
	HintEmpty      HintKind = "empty"
	HintPercentage HintKind = "percentage"
	HintCurrency   HintKind = "currency"
	HintNumber     HintKind = "number"
	HintDate       HintKind = "date"
	HintLink       HintKind = "link"
	HintBoolean    HintKind = "boolean"
	HintText       HintKind = "text"
	HintArray      HintKind = "array"
	HintObject     HintKind = "object"
)

// DisplayHint is a best-effort guess at how a value wants to be shown. Callers
// should treat it as advice; the rules are heuristics, not a contract.
type DisplayHint struct {
	Kind      HintKind `json:"kind"`
	Formatted string   `json:"formatted"`
	Icon      string   `json:"icon,omitempty"`
}

var (
	linkPattern = regexp.MustCompile(`^https?://`)

	printer = message.NewPrinter(language.English)
)

// ClassifyDisplay picks a rendering for v: fractions in (0,1] as percentages,
// other positive fractional numbers as USD, dates reformatted, http(s) strings as
// links, booleans as True/False.
func ClassifyDisplay(v *value.Value) DisplayHint {
	switch v.Kind() {
	case value.Null:
		return DisplayHint{Kind: HintEmpty, Formatted: NotAvailable}
	case value.Bool:
		if v.Bool() {
			return DisplayHint{Kind: HintBoolean, Formatted: "True", Icon: "✓"}
		}
		return DisplayHint{Kind: HintBoolean, Formatted: "False", Icon: "✗"}
	case value.Number:
		return classifyNumber(v.Float())
	case value.String:
		return classifyString(v.Str())
	case value.Array:
		return DisplayHint{Kind: HintArray, Formatted: FormatScalar(v)}
	}
	return DisplayHint{Kind: HintObject, Formatted: FormatScalar(v)}
}

func classifyNumber(n float64) DisplayHint {
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0):
		return DisplayHint{Kind: HintEmpty, Formatted: NotAvailable}
	case n > 0 && n <= 1:
		return DisplayHint{Kind: HintPercentage, Formatted: printer.Sprintf("%.2f%%", n*100)}
	case n > 0 && n != math.Trunc(n):
		return DisplayHint{Kind: HintCurrency, Formatted: printer.Sprintf("$%.2f", n)}
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return DisplayHint{Kind: HintNumber, Formatted: printer.Sprintf("%d", int64(n))}
	}
	return DisplayHint{Kind: HintNumber, Formatted: printer.Sprintf("%.2f", n)}
}

func classifyString(s string) DisplayHint {
	trimmed := strings.TrimSpace(s)
	if linkPattern.MatchString(trimmed) {
		return DisplayHint{Kind: HintLink, Formatted: trimmed, Icon: "↗"}
	}
	if t, ok := ParseDate(trimmed); ok {
		return DisplayHint{Kind: HintDate, Formatted: t.Format("Jan 2, 2006")}
	}
	return DisplayHint{Kind: HintText, Formatted: s}
}

// ParseDate parses s in any format dateparse recognizes. Numeric strings are
// not dates even though they would parse as timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
