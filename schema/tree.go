package schema

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/value"
)

// Node is one field in the drill-down tree. IsExpanded belongs to the caller;
// BuildTree returns a fresh tree every time.
type Node struct {
	Key                string           `json:"key"`
	Path               string           `json:"path"`
	DisplayLabel       string           `json:"displayLabel"`
	Kind               Kind             `json:"type"`
	ValueType          ValueType        `json:"dataType"`
	Depth              int              `json:"depth"`
	SampleValue        *value.Value     `json:"sampleValue,omitempty"`
	ArrayLength        *int             `json:"arrayLength,omitempty"`
	AggregationOptions []aggregate.Kind `json:"aggregationOptions"`
	IsFinancialData    bool             `json:"isFinancialData"`
	Children           []*Node          `json:"children,omitempty"`
	IsExpanded         bool             `json:"isExpanded"`
}

// Walk calls fn for n and its descendants, parents first, until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindNode searches a forest for path.
func FindNode(nodes []*Node, path string) (*Node, bool) {
	var found *Node
	for _, n := range nodes {
		n.Walk(func(x *Node) bool {
			if x.Path == path {
				found = x
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

type treeOptions struct {
	maxDepth          int
	includeArrayItems bool
	autoExpandArrays  bool
	showSampleValues  bool
	groupByDataType   bool
}

// TreeOption adjusts BuildTree.
type TreeOption func(*treeOptions)

// WithMaxDepth limits the tree; top-level nodes have depth 0. Default 4.
// Negative values are ignored.
func WithMaxDepth(depth int) TreeOption {
	return func(o *treeOptions) {
		if depth >= 0 {
			o.maxDepth = depth
		}
	}
}

// WithArrayItems controls whether arrays of objects get their item members as
// children. Default true.
func WithArrayItems(include bool) TreeOption {
	return func(o *treeOptions) { o.includeArrayItems = include }
}

// WithAutoExpandArrays marks array nodes with children as expanded. Default false.
func WithAutoExpandArrays(expand bool) TreeOption {
	return func(o *treeOptions) { o.autoExpandArrays = expand }
}

// WithSampleValues controls whether nodes carry sample values. Default true.
func WithSampleValues(show bool) TreeOption {
	return func(o *treeOptions) { o.showSampleValues = show }
}

// WithGroupByDataType orders siblings by structural kind, then data type.
// Default false, which keeps document order.
func WithGroupByDataType(group bool) TreeOption {
	return func(o *treeOptions) { o.groupByDataType = group }
}

func defaultTreeOptions() treeOptions {
	return treeOptions{
		maxDepth:          DefaultTreeDepth,
		includeArrayItems: true,
		showSampleValues:  true,
	}
}

// BuildTree builds the field tree of doc with the default rules.
func BuildTree(doc *value.Value, opts ...TreeOption) []*Node {
	return defaultAnalyzer.BuildTree(doc, opts...)
}

// BuildTree returns the top-level fields of doc as a tree. It shares its
// traversal with Analyze, so both views classify every field the same way.
func (a *Analyzer) BuildTree(doc *value.Value, opts ...TreeOption) []*Node {
	o := defaultTreeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Shapes count the root as depth 0, tree nodes start at the root's children.
	root := newWalker(a, o.maxDepth+1).walk(doc, "", "", "", 0)
	if root == nil {
		return nil
	}
	if root.kind == ArrayOfObjects && !o.includeArrayItems {
		return nil
	}
	return o.nodes(root.children)
}

func (o treeOptions) nodes(shapes []*shape) []*Node {
	if len(shapes) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, o.node(s))
	}
	if o.groupByDataType {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Kind != out[j].Kind {
				return out[i].Kind < out[j].Kind
			}
			return out[i].ValueType < out[j].ValueType
		})
	}
	return out
}

func (o treeOptions) node(s *shape) *Node {
	n := &Node{
		Key:                s.key,
		Path:               s.path,
		DisplayLabel:       DisplayLabel(s.key),
		Kind:               s.kind,
		ValueType:          s.valueType,
		Depth:              s.depth - 1,
		AggregationOptions: options(s.options),
		IsFinancialData:    s.financial,
	}
	if o.showSampleValues {
		n.SampleValue = s.sample
	}
	if s.kind.IsArray() {
		length := s.arrayLen
		n.ArrayLength = &length
	}

	switch s.kind {
	case Object:
		n.Children = o.nodes(s.children)
	case ArrayOfObjects:
		if o.includeArrayItems {
			n.Children = o.nodes(s.children)
		}
	}

	if o.autoExpandArrays && s.kind.IsArray() && len(n.Children) > 0 {
		n.IsExpanded = true
	}
	return n
}

// DisplayLabel turns a JSON key into words: "closePrice" and "close_price" both
// become "Close Price".
func DisplayLabel(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		case unicode.IsDigit(r) && i > 0 && unicode.IsLetter(runes[i-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()

	if len(words) == 0 {
		return key
	}
	// Casers keep state, so each call gets its own.
	title := cases.Title(language.English)
	for i, w := range words {
		if isAcronym(w) {
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
