package value

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned for input gjson cannot validate.
var ErrInvalidJSON = errors.New("invalid JSON")

// Parse decodes a JSON document keeping object member order.
func Parse(data []byte) (*Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString is Parse for strings.
func ParseString(s string) (*Value, error) {
	if !gjson.Valid(s) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.Parse(s)), nil
}

// MustParse panics on invalid input. Meant for tests and literals.
func MustParse(s string) *Value {
	v, err := ParseString(s)
	if err != nil {
		panic(errors.Wrapf(err, "parse %q", s))
	}
	return v
}

func fromResult(r gjson.Result) *Value {
	switch r.Type {
	case gjson.Null:
		return NewNull()
	case gjson.False:
		return NewBool(false)
	case gjson.True:
		return NewBool(true)
	case gjson.Number:
		return newNumberLiteral(r.Num, r.Raw)
	case gjson.String:
		return NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var items []*Value
			r.ForEach(func(_, val gjson.Result) bool {
				items = append(items, fromResult(val))
				return true
			})
			if items == nil {
				items = []*Value{}
			}
			return NewArray(items...)
		}
		var members []Member
		r.ForEach(func(key, val gjson.Result) bool {
			members = append(members, Member{Key: key.String(), Value: fromResult(val)})
			return true
		})
		return NewObject(members...)
	}
	return NewNull()
}
