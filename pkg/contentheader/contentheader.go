// Package contentheader parses and formats structured header values such as
// Content-Type and Content-Disposition
package contentheader

import (
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Mode selects the grammar the primary value is validated against
type Mode int

const (
	// MediaType expects a type/subtype pair (Content-Type)
	MediaType Mode = iota
	// Disposition expects a bare token (Content-Disposition)
	Disposition
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case MediaType:
		return "type"
	case Disposition:
		return "disposition"
	default:
		return "unknown"
	}
}

// Value is a parsed structured header value.
//
// An empty Type means the primary value did not match the grammar of the
// requested Mode. Params hold unescaped logical values in the order they
// were seen or set.
type Value struct {
	Type   string
	Params *orderedmap.OrderedMap[string, string]
}

// New creates a value with the given primary type and no parameters
func New(typ string) *Value {
	return &Value{
		Type:   typ,
		Params: orderedmap.NewOrderedMap[string, string](),
	}
}

// Param returns the named parameter or "" when absent
func (v *Value) Param(name string) string {
	value, _ := v.Lookup(name)
	return value
}

// Lookup returns the named parameter and whether it was present
func (v *Value) Lookup(name string) (string, bool) {
	if v == nil || v.Params == nil {
		return "", false
	}
	return v.Params.Get(name)
}

// SetParam sets a parameter, keeping the position of an existing one
func (v *Value) SetParam(name, value string) *Value {
	if v.Params == nil {
		v.Params = orderedmap.NewOrderedMap[string, string]()
	}
	v.Params.Set(name, value)
	return v
}

// Is reports whether the primary type equals typ, ignoring case
func (v *Value) Is(typ string) bool {
	return v != nil && strings.EqualFold(v.Type, typ)
}

// Equal reports whether both values carry the same type and the same
// parameters in the same order
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Type != o.Type || v.paramLen() != o.paramLen() {
		return false
	}
	if v.paramLen() == 0 {
		return true
	}

	a, b := v.Params.Front(), o.Params.Front()
	for a != nil && b != nil {
		if a.Key != b.Key || a.Value != b.Value {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return true
}

func (v *Value) paramLen() int {
	if v.Params == nil {
		return 0
	}
	return v.Params.Len()
}

// String formats the value, see Format
func (v *Value) String() string {
	return Format(v)
}

// Parse parses header as `type (";" parameter)*`.
//
// A primary value that does not match the grammar of mode leaves Type empty
// and parsing continues. Parameters that do not match
// `token "=" (token | quoted-string)` are dropped.
func Parse(header string, mode Mode) *Value {
	result := New("")
	segments := splitSegments(header)

	typ := strings.TrimSpace(segments[0])
	if mode.match(typ) {
		result.Type = typ
	}

	for _, segment := range segments[1:] {
		name, value, ok := parseParameter(strings.TrimSpace(segment))
		if ok {
			result.Params.Set(name, value)
		}
	}

	return result
}

// ParseMediaType parses a Content-Type style value
func ParseMediaType(header string) *Value {
	return Parse(header, MediaType)
}

// ParseDisposition parses a Content-Disposition style value
func ParseDisposition(header string) *Value {
	return Parse(header, Disposition)
}

// Format renders v as `type; name=value; ...`.
//
// The type is omitted when empty. Values that are not bare tokens are
// quoted with embedded quotes and backslashes escaped.
func Format(v *Value) string {
	if v == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.Type)

	if v.Params != nil {
		for name, value := range v.Params.AllFromFront() {
			b.WriteString("; ")
			b.WriteString(name)
			b.WriteByte('=')
			writeValue(&b, value)
		}
	}

	return b.String()
}

func (m Mode) match(s string) bool {
	if m == Disposition {
		return isTypeToken(s)
	}

	typ, subtype, found := strings.Cut(s, "/")
	return found && isTypeToken(typ) && isTypeToken(subtype)
}

// splitSegments splits on ';' outside of quoted strings. A quote that is
// never closed does not protect the rest of the header: from that quote on,
// every ';' splits again.
func splitSegments(header string) []string {
	var segments []string
	start := 0
	quoted := false
	openedAt := 0

	for i := 0; i < len(header); i++ {
		switch c := header[i]; {
		case quoted && c == '\\':
			i++
		case c == '"':
			quoted = !quoted
			if quoted {
				openedAt = i
			}
		case !quoted && c == ';':
			segments = append(segments, header[start:i])
			start = i + 1
		}
	}

	if !quoted {
		return append(segments, header[start:])
	}

	rest := strings.Split(header[openedAt:], ";")
	segments = append(segments, header[start:openedAt]+rest[0])
	return append(segments, rest[1:]...)
}

func parseParameter(segment string) (name, value string, ok bool) {
	n := scanToken(segment)
	if n == 0 || n == len(segment) || segment[n] != '=' {
		return "", "", false
	}

	name = segment[:n]
	raw := segment[n+1:]

	if strings.HasPrefix(raw, `"`) {
		value, ok = unquote(raw)
		return name, value, ok
	}

	if !isToken(raw) {
		return "", "", false
	}
	return name, raw, true
}

// unquote decodes a quoted-string that must span all of s
func unquote(s string) (string, bool) {
	var b strings.Builder

	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			return b.String(), i == len(s)-1
		case c == '\\':
			if i+1 >= len(s) || !octetTypes[s[i+1]].isEscapable() {
				return "", false
			}
			i++
			b.WriteByte(s[i])
		case octetTypes[c].isQDText():
			b.WriteByte(c)
		default:
			return "", false
		}
	}

	return "", false
}

func writeValue(b *strings.Builder, value string) {
	if isToken(value) {
		b.WriteString(value)
		return
	}

	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}
