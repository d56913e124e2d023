package markup

import (
	"bytes"
	"strings"
)

// escapeTable maps a byte to its entity, or "" when the byte is written as-is.
type escapeTable [256]string

var (
	// textEscapes covers text content: < > &
	textEscapes = newEscapeTable('<', '>', '&')
	// attributeEscapes covers quoted attribute values: < > & ' "
	attributeEscapes = newEscapeTable('<', '>', '&', '\'', '"')
)

func newEscapeTable(chars ...byte) *escapeTable {
	var t escapeTable
	for _, c := range chars {
		switch c {
		case '<':
			t[c] = "&lt;"
		case '>':
			t[c] = "&gt;"
		case '&':
			t[c] = "&amp;"
		case '\'':
			t[c] = "&apos;"
		case '"':
			t[c] = "&quot;"
		}
	}
	return &t
}

// EscapeText escapes s for use as HTML text content.
func EscapeText(s string) string {
	return escapeString(s, textEscapes)
}

// EscapeAttribute escapes s for use inside a double-quoted attribute value.
func EscapeAttribute(s string) string {
	return escapeString(s, attributeEscapes)
}

func escapeString(s string, table *escapeTable) string {
	first := indexEscape(s, table)
	if first < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 16)
	sb.WriteString(s[:first])
	last := first
	for i := first; i < len(s); i++ {
		if rep := table[s[i]]; rep != "" {
			sb.WriteString(s[last:i])
			sb.WriteString(rep)
			last = i + 1
		}
	}
	sb.WriteString(s[last:])
	return sb.String()
}

func indexEscape(s string, table *escapeTable) int {
	for i := 0; i < len(s); i++ {
		if table[s[i]] != "" {
			return i
		}
	}
	return -1
}

// appendEscapedString writes s into buf, replacing every byte the table covers.
// Runs without special bytes are copied in one call.
func appendEscapedString(buf *bytes.Buffer, s string, table *escapeTable) {
	last := 0
	for i := 0; i < len(s); i++ {
		rep := table[s[i]]
		if rep == "" {
			continue
		}
		buf.WriteString(s[last:i])
		buf.WriteString(rep)
		last = i + 1
	}
	buf.WriteString(s[last:])
}

// appendEscapedBytes is appendEscapedString for byte slices.
func appendEscapedBytes(buf *bytes.Buffer, b []byte, table *escapeTable) {
	last := 0
	for i := 0; i < len(b); i++ {
		rep := table[b[i]]
		if rep == "" {
			continue
		}
		buf.Write(b[last:i])
		buf.WriteString(rep)
		last = i + 1
	}
	buf.Write(b[last:])
}
