package schema

import (
	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/value"
)

// shape is the single traversal result both Analyze and BuildTree project from.
// Object shapes hold their members as children; ArrayOfObjects shapes hold the
// members of their first item, at "path[].key".
//
// Arrays are assumed homogeneous: only the first item is inspected, so a later
// item with different members or types is not reflected in the shape.
type shape struct {
	key        string
	path       string
	parentPath string
	depth      int
	kind       Kind
	valueType  ValueType
	sample     *value.Value
	arrayLen   int
	financial  bool
	options    []aggregate.Kind
	children   []*shape
}

// walker descends at most limit levels and refuses to re-enter a container that
// is already on the current path.
type walker struct {
	a      *Analyzer
	limit  int
	active map[*value.Value]struct{}
}

func newWalker(a *Analyzer, limit int) *walker {
	return &walker{
		a:      a,
		limit:  limit,
		active: make(map[*value.Value]struct{}),
	}
}

func joinPath(parent, sep, key string) string {
	if parent == "" && sep == "." {
		return key
	}
	return parent + sep + key
}

func (w *walker) walk(v *value.Value, key, path, parentPath string, depth int) *shape {
	if depth > w.limit {
		return nil
	}

	s := &shape{
		key:        key,
		path:       path,
		parentPath: parentPath,
		depth:      depth,
		sample:     v,
		financial:  w.a.IsFinancial(path),
	}

	switch v.Kind() {
	case value.Null:
		s.kind = Simple
		s.valueType = ObjectType

	case value.Array:
		w.walkArray(s, v)

	case value.Object:
		s.kind = Object
		s.valueType = ObjectType
		if !w.enter(v) {
			break
		}
		for _, m := range v.Members() {
			if c := w.walk(m.Value, m.Key, joinPath(path, ".", m.Key), path, depth+1); c != nil {
				s.children = append(s.children, c)
			}
		}
		w.leave(v)

	default:
		s.kind = Simple
		s.valueType = w.a.ValueType(v)
		if s.valueType == NumberType {
			s.options = options(scalarNumericOptions)
		}
	}

	return s
}

func (w *walker) walkArray(s *shape, v *value.Value) {
	items := v.Items()
	s.arrayLen = len(items)

	if len(items) == 0 {
		s.kind = Array
		s.valueType = ObjectType
		s.options = options(emptyArrayOptions)
		return
	}

	first := items[0]
	if first.Kind() != value.Object {
		s.kind = Array
		s.valueType = w.a.ValueType(first)
		if s.valueType == NumberType {
			s.options = options(arrayNumericOptions)
		} else {
			s.options = options(arrayOptions)
		}
		return
	}

	if !w.enter(v) {
		// A cyclic branch is reported as an empty object.
		s.kind = Object
		s.valueType = ObjectType
		s.arrayLen = 0
		return
	}
	defer w.leave(v)

	s.kind = ArrayOfObjects
	s.valueType = ObjectType
	s.options = options(arrayOptions)
	for _, m := range first.Members() {
		if c := w.walk(m.Value, m.Key, joinPath(s.path, "[].", m.Key), s.path, s.depth+1); c != nil {
			s.children = append(s.children, c)
		}
	}
}

func (w *walker) enter(v *value.Value) bool {
	if _, ok := w.active[v]; ok {
		return false
	}
	w.active[v] = struct{}{}
	return true
}

func (w *walker) leave(v *value.Value) {
	delete(w.active, v)
}

// visit calls fn for s and every shape below it, parents first.
func (s *shape) visit(fn func(*shape)) {
	fn(s)
	for _, c := range s.children {
		c.visit(fn)
	}
}
