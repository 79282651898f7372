// Package value holds a closed representation of JSON documents.
//
// A nil *Value stands for "undefined": every accessor treats it like JSON null.
package value

import (
	"math"
	"strconv"
)

// Kind is the JSON type of a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}

	return ""
}

// Member is one key of an object. Members keep document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is an immutable JSON value.
type Value struct {
	kind Kind
	b    bool
	n    float64
	raw  string // original number literal, if any
	s    string
	arr  []*Value
	obj  []Member
}

func NewNull() *Value {
	return &Value{kind: Null}
}

func NewBool(b bool) *Value {
	return &Value{kind: Bool, b: b}
}

func NewNumber(n float64) *Value {
	return &Value{kind: Number, n: n}
}

// newNumberLiteral keeps the literal so encoding round-trips exactly.
func newNumberLiteral(n float64, raw string) *Value {
	return &Value{kind: Number, n: n, raw: raw}
}

func NewString(s string) *Value {
	return &Value{kind: String, s: s}
}

func NewArray(items ...*Value) *Value {
	return &Value{kind: Array, arr: items}
}

// NewObject builds an object. Later members win over earlier ones with the same key.
func NewObject(members ...Member) *Value {
	v := &Value{kind: Object}
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			v.obj[i].Value = m.Value
			continue
		}
		index[m.Key] = len(v.obj)
		v.obj = append(v.obj, m)
	}
	return v
}

func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

func (v *Value) IsNull() bool {
	return v.Kind() == Null
}

// IsContainer reports whether v is an array or an object.
func (v *Value) IsContainer() bool {
	k := v.Kind()
	return k == Array || k == Object
}

func (v *Value) Bool() bool {
	if v == nil {
		return false
	}
	return v.b
}

func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	return v.n
}

func (v *Value) Str() string {
	if v == nil {
		return ""
	}
	return v.s
}

func (v *Value) Items() []*Value {
	if v == nil {
		return nil
	}
	return v.arr
}

func (v *Value) Members() []Member {
	if v == nil {
		return nil
	}
	return v.obj
}

// Len returns the number of items or members, 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Get returns the member value for key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != Object {
		return nil, false
	}
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Index returns the i-th array item.
func (v *Value) Index(i int) (*Value, bool) {
	if v.Kind() != Array || i < 0 || i >= len(v.arr) {
		return nil, false
	}
	return v.arr[i], true
}

// NumberLiteral renders a number the way a JSON encoder would.
func (v *Value) NumberLiteral() string {
	if v == nil {
		return "0"
	}
	if v.raw != "" {
		return v.raw
	}
	return FormatNumber(v.n)
}

// FormatNumber renders n without exponent for ordinary magnitudes.
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "null"
	}
	if a := math.Abs(n); a != 0 && (a >= 1e21 || a < 1e-6) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// String returns the plain text form: strings unquoted, containers as JSON.
func (v *Value) String() string {
	switch v.Kind() {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.b)
	case Number:
		return v.NumberLiteral()
	case String:
		return v.s
	}
	b, _ := v.MarshalJSON()
	return string(b)
}

// Equal reports structural equality. nil and JSON null are equal.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number:
		return a.n == b.n
	case String:
		return a.s == b.s
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for _, m := range a.obj {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal lets go-cmp and friends compare values structurally.
func (v *Value) Equal(other *Value) bool {
	return Equal(v, other)
}
