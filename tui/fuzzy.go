package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jedipunkz/fieldlens/schema"
)

// fuzzyFind reports whether every rune of query appears in key in order.
// Matching ignores case.
func fuzzyFind(key, query string) bool {
	rest := key
	for _, q := range query {
		q = unicode.ToLower(q)
		found := false
		for len(rest) > 0 {
			r, size := utf8.DecodeRuneInString(rest)
			rest = rest[size:]
			if unicode.ToLower(r) == q {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// filterDescriptors keeps the descriptors whose path matches query.
func filterDescriptors(descs []*schema.Descriptor, query string) []*schema.Descriptor {
	query = strings.TrimSpace(query)
	if query == "" {
		return descs
	}
	var out []*schema.Descriptor
	for _, d := range descs {
		if fuzzyFind(d.Path, query) {
			out = append(out, d)
		}
	}
	return out
}
