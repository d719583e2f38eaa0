package pythonstring

import "strings"

// Formatter renders one string literal. value is the decoded text of the
// literal, embedded its embedding level (zero when the literal stands alone
// as a statement, higher when it is part of a larger expression or the right
// hand side of an assignment), linePrefix the text already emitted on the
// current output line, and unicodeLiterals whether the module imported
// unicode_literals from __future__.
type Formatter func(value string, embedded int, linePrefix string, unicodeLiterals bool) string

// minTripleQuote is the shortest escaped literal worth upgrading to a
// triple-quoted block when other text shares its line.
const minTripleQuote = 20

// Format is the default Formatter. Multi-line values become triple-quoted
// blocks when they stand at statement level and contain nothing that would
// need escaping inside the block; everything else gets the repl's
// single-line repr.
func Format(value string, embedded int, linePrefix string, unicodeLiterals bool) string {
	out := Repr(value)
	if unicodeLiterals {
		out = "u" + out
	}

	if embedded > 0 || !strings.ContainsRune(value, '\n') {
		return out
	}
	if strings.TrimSpace(linePrefix) != "" && len(out) < minTripleQuote {
		return out
	}
	if !tripleQuotable(value) {
		return out
	}
	return `"""` + value + `"""`
}

// tripleQuotable reports whether value can appear verbatim between a pair
// of triple double-quotes.
func tripleQuotable(value string) bool {
	if strings.Contains(value, `"""`) || strings.Contains(value, `\`) {
		return false
	}
	if strings.HasSuffix(value, `"`) {
		return false
	}
	for _, r := range value {
		if (r < 0x20 && r != '\n') || r == 0x7f {
			return false
		}
	}
	return true
}
