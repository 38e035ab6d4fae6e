// Package headers handles flat `Name: value` header blocks
package headers

import (
	"iter"
	"regexp"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Headers is an ordered header map keyed by lower-cased name
type Headers struct {
	fields *orderedmap.OrderedMap[string, string]
}

// New creates an empty header map
func New() *Headers {
	return &Headers{fields: orderedmap.NewOrderedMap[string, string]()}
}

// FromPairs builds headers from pairs given as name, value, name, value...
// A trailing name without a value is ignored.
func FromPairs(pairs ...string) *Headers {
	h := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

// Parse reads a CRLF or LF delimited header block.
//
// Each line is split on its first colon. Lines without a colon are dropped
// and later duplicates overwrite earlier values.
func Parse(text string) *Headers {
	h := New()

	for _, line := range lineBreak.Split(text, -1) {
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		h.Set(name, value)
	}

	return h
}

// Format renders the block as `name: value` lines joined by CRLF
func (h *Headers) Format() string {
	if h.Len() == 0 {
		return ""
	}

	lines := make([]string, 0, h.Len())
	for name, value := range h.All() {
		lines = append(lines, name+": "+value)
	}
	return strings.Join(lines, "\r\n")
}

// String returns the formatted block
func (h *Headers) String() string {
	return h.Format()
}

// Set stores value under the normalized name. Both sides are trimmed.
func (h *Headers) Set(name, value string) {
	if h.fields == nil {
		h.fields = orderedmap.NewOrderedMap[string, string]()
	}
	h.fields.Set(normalize(name), strings.TrimSpace(value))
}

// Get returns the value for name or "" when absent
func (h *Headers) Get(name string) string {
	value, _ := h.Lookup(name)
	return value
}

// Lookup returns the value for name and whether it is present
func (h *Headers) Lookup(name string) (string, bool) {
	if h == nil || h.fields == nil {
		return "", false
	}
	return h.fields.Get(normalize(name))
}

// Del removes name
func (h *Headers) Del(name string) {
	if h == nil || h.fields == nil {
		return
	}
	h.fields.Delete(normalize(name))
}

// Len returns the number of distinct header names
func (h *Headers) Len() int {
	if h == nil || h.fields == nil {
		return 0
	}
	return h.fields.Len()
}

// Keys returns the header names in order
func (h *Headers) Keys() []string {
	keys := make([]string, 0, h.Len())
	for name := range h.All() {
		keys = append(keys, name)
	}
	return keys
}

// All iterates over the headers in order
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h == nil || h.fields == nil {
			return
		}
		for name, value := range h.fields.AllFromFront() {
			if !yield(name, value) {
				return
			}
		}
	}
}

// Map copies the headers into a plain map
func (h *Headers) Map() map[string]string {
	m := make(map[string]string, h.Len())
	for name, value := range h.All() {
		m[name] = value
	}
	return m
}

// Clone returns an independent copy
func (h *Headers) Clone() *Headers {
	c := New()
	for name, value := range h.All() {
		c.fields.Set(name, value)
	}
	return c
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
