package urlencoded

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(form *Form) map[string]string {
	m := map[string]string{}
	for k, v := range form.AllFromFront() {
		m[k] = v
	}
	return m
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{"simple", "a=1&b=2", map[string]string{"a": "1", "b": "2"}},
		{"plus is space", "q=hello+world", map[string]string{"q": "hello world"}},
		{"percent escapes", "name=J%C3%BCrgen&x%26y=1%3D2", map[string]string{"name": "Jürgen", "x&y": "1=2"}},
		{"first equals splits", "token=abc==", map[string]string{"token": "abc=="}},
		{"missing equals", "flag", map[string]string{"flag": ""}},
		{"empty segments", "&&a=1&&", map[string]string{"a": "1"}},
		{"duplicate last wins", "a=1&a=2", map[string]string{"a": "2"}},
		{"malformed escape kept", "a=%zz", map[string]string{"a": "%zz"}},
		{"empty input", "", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collect(Parse(tt.input)))
		})
	}
}

func TestParse_Order(t *testing.T) {
	form := Parse("z=1&a=2&m=3&a=4")
	assert.Equal(t, []string{"z", "a", "m"}, slices.Collect(form.Keys()))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		form     *Form
		expected string
	}{
		{"simple", FromPairs("a", "1", "b", "2"), "a=1&b=2"},
		{"space", FromPairs("q", "hello world"), "q=hello+world"},
		{"reserved", FromPairs("x&y", "1=2/3?"), "x%26y=1%3D2%2F3%3F"},
		{"unicode", FromPairs("name", "Jürgen"), "name=J%C3%BCrgen"},
		{"empty", NewForm(), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.form))
		})
	}
}

func TestFormatParse_RoundTrip(t *testing.T) {
	form := FromPairs("grant_type", "client_credentials", "scope", "read write", "redirect", "https://example.com/cb?x=1&y=2")

	parsed := Parse(Format(form))
	assert.Equal(t, collect(form), collect(parsed))
	assert.Equal(t, slices.Collect(form.Keys()), slices.Collect(parsed.Keys()))
}
