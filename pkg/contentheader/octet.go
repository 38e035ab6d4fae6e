package contentheader

// octetType describes the character classes used by the header grammar.
//
// token         = 1*<! # $ % & ' * + . ^ _ ` | ~ - DIGIT ALPHA>
// type-token    = token without "`"
// qdtext        = VT | SP | "!" | %x23-5B | %x5D-7E | %x80-FF
// quoted-pair   = "\" ( VT | %x20-FF )
type octetType byte

const (
	octetToken octetType = 1 << iota
	octetTypeToken
	octetQDText
	octetEscapable
)

func (t octetType) isToken() bool     { return t&octetToken != 0 }
func (t octetType) isTypeToken() bool { return t&octetTypeToken != 0 }
func (t octetType) isQDText() bool    { return t&octetQDText != 0 }
func (t octetType) isEscapable() bool { return t&octetEscapable != 0 }

var octetTypes [256]octetType

func init() {
	for c := 0; c < 256; c++ {
		var t octetType

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			t |= octetToken
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '.', '^', '_', '`', '|', '~', '-':
			t |= octetToken
		}
		if t.isToken() && c != '`' {
			t |= octetTypeToken
		}

		if c == 0x0b || c == 0x20 || c == 0x21 || (c >= 0x23 && c <= 0x5b) || (c >= 0x5d && c <= 0x7e) || c >= 0x80 {
			t |= octetQDText
		}
		if c == 0x0b || c >= 0x20 {
			t |= octetEscapable
		}

		octetTypes[c] = t
	}
}

// isToken reports whether s is a non-empty run of token characters
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !octetTypes[s[i]].isToken() {
			return false
		}
	}
	return true
}

// isTypeToken reports whether s is a non-empty run of characters allowed in
// a media type, subtype or disposition type
func isTypeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !octetTypes[s[i]].isTypeToken() {
			return false
		}
	}
	return true
}

// scanToken returns the length of the token prefix of s
func scanToken(s string) int {
	i := 0
	for i < len(s) && octetTypes[s[i]].isToken() {
		i++
	}
	return i
}
