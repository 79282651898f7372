package schema

import (
	"github.com/jedipunkz/fieldlens/value"
)

// Analyze describes every field of doc down to maxDepth using the default rules.
// A maxDepth of zero or less means DefaultMaxDepth, so Analyze(doc, 0) descends
// three levels.
func Analyze(doc *value.Value, maxDepth int) []*Descriptor {
	if maxDepth <= 0 || maxDepth == defaultAnalyzer.maxDepth {
		return defaultAnalyzer.Analyze(doc)
	}
	opts := DefaultOptions()
	opts.MaxDepth = maxDepth
	return New(opts).Analyze(doc)
}

// Analyze returns one descriptor per reachable field in pre-order. The root is
// never described. Each array of objects is followed by one flattened alias per
// member of its first item ("results.close" next to "results"), so callers can
// select either the array or a projected member.
func (a *Analyzer) Analyze(doc *value.Value) []*Descriptor {
	root := newWalker(a, a.maxDepth).walk(doc, "", "", "", 0)
	if root == nil {
		return nil
	}

	var out []*Descriptor
	switch root.kind {
	case Object:
		for _, c := range root.children {
			out = a.emit(out, c)
		}
	case ArrayOfObjects:
		out = append(out, a.aliases(root)...)
	}
	return out
}

func (a *Analyzer) emit(out []*Descriptor, s *shape) []*Descriptor {
	out = append(out, s.descriptor())
	switch s.kind {
	case Object:
		for _, c := range s.children {
			out = a.emit(out, c)
		}
	case ArrayOfObjects:
		out = append(out, a.aliases(s)...)
	}
	return out
}

func (s *shape) descriptor() *Descriptor {
	d := &Descriptor{
		Path:               s.path,
		Kind:               s.kind,
		ValueType:          s.valueType,
		SampleValue:        s.sample,
		Depth:              s.depth,
		ParentPath:         s.parentPath,
		IsFinancialData:    s.financial,
		AggregationOptions: options(s.options),
	}

	if s.kind.IsArray() {
		n := s.arrayLen
		d.ArrayLength = &n
	}

	if s.kind == ArrayOfObjects {
		d.ArrayItemSchema = make(map[string]*Descriptor, len(s.children))
		addItemFields(d.ArrayItemSchema, "", s.children)
	}

	return d
}

// addItemFields keys item members by their path inside the item. Members of
// nested objects are added as "quote.price"; nested arrays of objects keep their
// own ArrayItemSchema.
func addItemFields(fields map[string]*Descriptor, prefix string, members []*shape) {
	for _, c := range members {
		key := c.key
		if prefix != "" {
			key = prefix + "." + c.key
		}
		fields[key] = c.descriptor()
		if c.kind == Object {
			addItemFields(fields, key, c.children)
		}
	}
}

// aliases flattens the item members of an array of objects to "path.key".
// Members are taken from the first item only.
func (a *Analyzer) aliases(s *shape) []*Descriptor {
	out := make([]*Descriptor, 0, len(s.children))
	for _, c := range s.children {
		path := joinPath(s.path, ".", c.key)
		n := s.arrayLen

		d := &Descriptor{
			Path:            path,
			Kind:            Simple,
			ValueType:       a.ValueType(c.sample),
			SampleValue:     c.sample,
			Depth:           s.depth + 1,
			ParentPath:      s.path,
			ArrayLength:     &n,
			IsFinancialData: a.IsFinancial(path),
		}
		if c.sample.Kind() == value.Array {
			d.Kind = Array
		}
		if d.ValueType == NumberType {
			d.AggregationOptions = options(flattenedNumericOptions)
		} else {
			d.AggregationOptions = options(flattenedOptions)
		}

		out = append(out, d)
	}
	return out
}
