// Package urlencoded converts application/x-www-form-urlencoded bodies
package urlencoded

import (
	"net/url"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// ContentType is the media type of form-encoded bodies
const ContentType = "application/x-www-form-urlencoded"

// Form holds fields in the order they were first seen
type Form = orderedmap.OrderedMap[string, string]

// NewForm creates an empty form
func NewForm() *Form {
	return orderedmap.NewOrderedMap[string, string]()
}

// Parse decodes `key=value&key=value`.
//
// Empty segments are skipped, a segment without '=' yields an empty value
// and a repeated key overwrites the earlier value. A side whose percent
// escapes are malformed is kept verbatim.
func Parse(s string) *Form {
	form := NewForm()

	for _, segment := range strings.Split(s, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		form.Set(decode(key), decode(value))
	}

	return form
}

// Format encodes the form as `key=value` pairs joined by '&'
func Format(form *Form) string {
	if form == nil {
		return ""
	}

	pairs := make([]string, 0, form.Len())
	for key, value := range form.AllFromFront() {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return strings.Join(pairs, "&")
}

// FromPairs builds a form from key, value, key, value...
func FromPairs(pairs ...string) *Form {
	form := NewForm()
	for i := 0; i+1 < len(pairs); i += 2 {
		form.Set(pairs[i], pairs[i+1])
	}
	return form
}

func decode(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
