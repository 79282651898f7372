// Package widget evaluates field selections against a payload. A selection is
// the plain data a dashboard stores for one displayed field: a path, an
// optional aggregation and a label.
package widget

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jedipunkz/fieldlens/accessor"
	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/internal/logging"
	"github.com/jedipunkz/fieldlens/schema"
	"github.com/jedipunkz/fieldlens/value"
)

// Selection is one configured field.
type Selection struct {
	Path        string         `json:"path" yaml:"path"`
	DisplayName string         `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Aggregation aggregate.Kind `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
}

// Label is DisplayName, or a label derived from the last path key.
func (s Selection) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	segs := accessor.Split(s.Path)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] != accessor.ArrayMarker && segs[i] != accessor.Star {
			return schema.DisplayLabel(segs[i])
		}
	}
	return s.Path
}

// ParseSelection parses "path[:aggregation[:display name]]".
func ParseSelection(s string) (Selection, error) {
	parts := strings.SplitN(s, ":", 3)
	sel := Selection{Path: strings.TrimSpace(parts[0])}
	if sel.Path == "" {
		return Selection{}, errors.Errorf("selection %q has no path", s)
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		kind, err := aggregate.ParseKind(parts[1])
		if err != nil {
			return Selection{}, errors.Wrapf(err, "selection %q", s)
		}
		sel.Aggregation = kind
	}
	if len(parts) > 2 {
		sel.DisplayName = strings.TrimSpace(parts[2])
	}
	return sel, nil
}

type selectionFile struct {
	Fields []Selection `yaml:"fields"`
}

// LoadSelections reads selections from YAML or JSON. The document is either a
// list of selections or an object with a "fields" list.
func LoadSelections(r io.Reader) ([]Selection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading selections")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("selection file is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "parsing selections")
	}

	var sels []Selection
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	switch doc.Kind {
	case yaml.SequenceNode:
		err = doc.Decode(&sels)
	case yaml.MappingNode:
		var f selectionFile
		err = doc.Decode(&f)
		sels = f.Fields
	default:
		return nil, errors.New("selections must be a list or an object with a fields list")
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding selections")
	}

	for i := range sels {
		if sels[i].Path == "" {
			return nil, errors.Errorf("selection %d has no path", i)
		}
		if sels[i].Aggregation == "" {
			continue
		}
		kind, err := aggregate.ParseKind(string(sels[i].Aggregation))
		if err != nil {
			return nil, errors.Wrapf(err, "selection %s", sels[i].Path)
		}
		sels[i].Aggregation = kind
	}
	return sels, nil
}

// Suggest picks default selections from an analysis: top-level scalar fields
// as-is and flattened numeric array fields averaged. limit <= 0 means no limit.
func Suggest(descs []*schema.Descriptor, limit int) []Selection {
	var out []Selection
	for _, d := range descs {
		if limit > 0 && len(out) >= limit {
			break
		}
		if d.Kind != schema.Simple || d.SampleValue.IsNull() {
			continue
		}
		switch {
		case d.ArrayLength != nil:
			// flattened alias of an array-of-objects field
			if d.ValueType != schema.NumberType {
				continue
			}
			kind := aggregate.Avg
			if !d.Supports(kind) {
				continue
			}
			out = append(out, Selection{Path: d.Path, Aggregation: kind})
		case d.Depth == 1:
			out = append(out, Selection{Path: d.Path})
		}
	}
	return out
}

// Field is an evaluated selection.
type Field struct {
	Selection
	Label  string                `json:"label"`
	Raw    *value.Value          `json:"raw"`
	Result *aggregate.Result     `json:"result,omitempty"`
	Hint   aggregate.DisplayHint `json:"hint"`
}

// Display is the text shown for the field.
func (f Field) Display() string {
	if f.Result != nil {
		return f.Result.Display
	}
	return f.Hint.Formatted
}

// Evaluate resolves every selection against doc. A selection that does not
// resolve yields an "N/A" field rather than an error.
func Evaluate(doc *value.Value, sels []Selection) []Field {
	log := logging.L().With("selections", len(sels))
	out := make([]Field, 0, len(sels))
	for _, s := range sels {
		f := Field{Selection: s, Label: s.Label()}
		f.Raw = accessor.Resolve(doc, s.Path)
		if f.Raw == nil {
			log.Debugw("selection did not resolve", "path", s.Path)
		}

		if s.Aggregation != "" {
			res := aggregate.Aggregate(aggregate.Values(f.Raw), s.Aggregation)
			f.Result = &res
			f.Hint = aggregate.ClassifyDisplay(res.Value)
		} else {
			f.Hint = aggregate.ClassifyDisplay(f.Raw)
		}
		out = append(out, f)
	}
	log.Debug("evaluated selections")
	return out
}
