// Package pythonstring renders Go strings as Python string and bytes
// literals. The zero-configuration entry point is Format, which matches the
// quote selection and escaping rules of the Python repl and upgrades
// multi-line statement-level strings to triple-quoted blocks.
package pythonstring

import (
	"fmt"
	"strings"
)

// quoteFor picks the quote character the Python repl would use: single
// quotes unless the value contains a single quote and no double quote.
func quoteFor(hasSingle, hasDouble bool) byte {
	if hasSingle && !hasDouble {
		return '"'
	}
	return '\''
}

// Repr returns value as a Python string literal, escaped the way the
// Python repl prints it.
func Repr(value string) string {
	quote := quoteFor(strings.ContainsRune(value, '\''), strings.ContainsRune(value, '"'))

	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte(quote)
	for _, r := range value {
		switch {
		case r == '\\' || r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// BytesRepr returns data as a Python bytes literal.
func BytesRepr(data []byte) string {
	quote := quoteFor(strings.IndexByte(string(data), '\'') >= 0,
		strings.IndexByte(string(data), '"') >= 0)

	var b strings.Builder
	b.Grow(len(data) + 3)
	b.WriteByte('b')
	b.WriteByte(quote)
	for _, c := range data {
		switch {
		case c == '\\' || c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
