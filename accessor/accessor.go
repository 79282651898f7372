// Package accessor resolves dot/bracket paths against JSON values.
//
// Paths are split on ".". A segment may carry bracket suffixes: "items[]" and
// "items[*]" project over the array, "items[2]" indexes it. Against an object a
// segment is first tried as a literal key, brackets included, so keys such as
// "x[1]" or "" resolve. Literal keys that contain dots are found by joining
// consecutive segments back together.
package accessor

import (
	"strconv"
	"strings"

	"github.com/jedipunkz/fieldlens/value"
)

const (
	// Wildcard segments leave the array in place so the rest of the path is
	// projected over every item.
	ArrayMarker = "[]"
	Star        = "*"
)

// Resolve returns the value at path, or nil when the path cannot be followed.
// It never panics.
func Resolve(doc *value.Value, path string) *value.Value {
	if path == "" {
		return doc
	}
	return resolve(doc, strings.Split(path, "."))
}

// Split breaks a path into segments, expanding bracket suffixes into their own
// segments. Empty segments are dropped.
func Split(path string) []string {
	var segs []string
	for _, part := range strings.Split(path, ".") {
		segs = appendSegment(segs, part)
	}
	return segs
}

func appendSegment(segs []string, part string) []string {
	if part == "" {
		return segs
	}

	open := strings.IndexByte(part, '[')
	if open < 0 || !strings.HasSuffix(part, "]") {
		return append(segs, part)
	}

	// A key like "a[b" followed by junk is kept as a literal key.
	brackets := part[open:]
	var inner []string
	for len(brackets) > 0 {
		if brackets[0] != '[' {
			return append(segs, part)
		}
		end := strings.IndexByte(brackets, ']')
		if end < 0 {
			return append(segs, part)
		}
		inner = append(inner, brackets[1:end])
		brackets = brackets[end+1:]
	}

	if key := part[:open]; key != "" {
		segs = append(segs, key)
	}
	for _, in := range inner {
		switch in {
		case "", Star:
			segs = append(segs, ArrayMarker)
		default:
			segs = append(segs, in)
		}
	}
	return segs
}

// resolve follows raw dot-separated parts. A part that names no key is expanded
// into its bracket segments and the remainder is resolved again.
func resolve(cur *value.Value, parts []string) *value.Value {
	for i := 0; i < len(parts); i++ {
		if cur.IsNull() {
			return nil
		}

		part := parts[i]
		switch cur.Kind() {
		case value.Object:
			if next, used := lookup(cur, parts[i:]); used > 0 {
				cur = next
				i += used - 1
				continue
			}
			if part == "" {
				continue
			}
			segs, ok := expand(part)
			if !ok {
				return nil
			}
			return resolve(cur, append(segs, parts[i+1:]...))

		case value.Array:
			if part == "" {
				continue
			}
			if idx, ok := index(part); ok {
				item, ok := cur.Index(idx)
				if !ok {
					return nil
				}
				cur = item
				continue
			}
			if part == ArrayMarker || part == Star {
				continue
			}
			if strings.HasPrefix(part, "[") {
				if segs, ok := expand(part); ok {
					return resolve(cur, append(segs, parts[i+1:]...))
				}
			}
			// Items that are objects try the part as a literal key first.
			return project(cur, parts[i:])

		default:
			return nil
		}
	}
	return cur
}

// expand splits a bracketed part. It reports false when part has nothing to
// expand.
func expand(part string) ([]string, bool) {
	segs := appendSegment(nil, part)
	if len(segs) == 1 && segs[0] == part {
		return nil, false
	}
	return segs, true
}

// lookup finds the member named by parts[0], falling back to progressively longer
// dotted keys. It returns how many parts were consumed, 0 when nothing matched.
func lookup(obj *value.Value, parts []string) (*value.Value, int) {
	if v, ok := obj.Get(parts[0]); ok {
		return v, 1
	}
	key := parts[0]
	for n := 1; n < len(parts); n++ {
		key += "." + parts[n]
		if v, ok := obj.Get(key); ok {
			return v, n + 1
		}
	}
	return nil, 0
}

// project applies the remaining path to every item. Identical scalar results
// collapse into one value.
func project(arr *value.Value, segs []string) *value.Value {
	var results []*value.Value
	for _, item := range arr.Items() {
		r := resolve(item, segs)
		if r.IsNull() {
			continue
		}
		results = append(results, r)
	}

	switch len(results) {
	case 0:
		return nil
	case 1:
		if !results[0].IsContainer() {
			return results[0]
		}
	default:
		if sameScalar(results) {
			return results[0]
		}
	}
	return value.NewArray(results...)
}

func sameScalar(results []*value.Value) bool {
	for _, r := range results {
		if r.IsContainer() || !value.Equal(r, results[0]) {
			return false
		}
	}
	return true
}

func index(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(seg)
	if err != nil {
		// Too large to address anything.
		return -1, true
	}
	return i, true
}
