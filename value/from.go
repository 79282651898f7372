package value

import (
	"encoding/json"
	"reflect"
	"sort"
)

// FromAny converts decoded Go data (the output of encoding/json, YAML decoders, or
// hand-built maps) into a Value. Map keys are sorted so the result is deterministic.
// A map or slice that contains itself becomes an empty object at the point of recursion.
func FromAny(x any) *Value {
	c := converter{seen: make(map[uintptr]struct{})}
	return c.convert(x)
}

type converter struct {
	seen map[uintptr]struct{}
}

func (c *converter) convert(x any) *Value {
	switch v := x.(type) {
	case nil:
		return NewNull()
	case *Value:
		if v == nil {
			return NewNull()
		}
		return v
	case bool:
		return NewBool(v)
	case string:
		return NewString(v)
	case float64:
		return NewNumber(v)
	case float32:
		return NewNumber(float64(v))
	case int:
		return NewNumber(float64(v))
	case int8:
		return NewNumber(float64(v))
	case int16:
		return NewNumber(float64(v))
	case int32:
		return NewNumber(float64(v))
	case int64:
		return NewNumber(float64(v))
	case uint:
		return NewNumber(float64(v))
	case uint8:
		return NewNumber(float64(v))
	case uint16:
		return NewNumber(float64(v))
	case uint32:
		return NewNumber(float64(v))
	case uint64:
		return NewNumber(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return NewString(v.String())
		}
		return newNumberLiteral(f, v.String())
	case []any:
		if !c.enter(reflect.ValueOf(v)) {
			return NewObject()
		}
		defer c.leave(reflect.ValueOf(v))

		items := make([]*Value, 0, len(v))
		for _, item := range v {
			items = append(items, c.convert(item))
		}
		return NewArray(items...)
	case map[string]any:
		if !c.enter(reflect.ValueOf(v)) {
			return NewObject()
		}
		defer c.leave(reflect.ValueOf(v))

		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			members = append(members, Member{Key: k, Value: c.convert(v[k])})
		}
		return NewObject(members...)
	}

	// Structs and other typed data go through their JSON form.
	b, err := json.Marshal(x)
	if err != nil {
		return NewNull()
	}
	parsed, err := Parse(b)
	if err != nil {
		return NewNull()
	}
	return parsed
}

func (c *converter) enter(rv reflect.Value) bool {
	p := rv.Pointer()
	if p == 0 {
		return true
	}
	if _, ok := c.seen[p]; ok {
		return false
	}
	c.seen[p] = struct{}{}
	return true
}

func (c *converter) leave(rv reflect.Value) {
	delete(c.seen, rv.Pointer())
}
