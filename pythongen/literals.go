package pythongen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
)

func (g *Generator) visitNumber(n *pythonast.NumberExpr) {
	s := g.delimit(n, pythonop.BadOp)
	out := numberRepr(n.Value)
	// a minus sign merged into the literal must not capture a following
	// power: (-2) ** 2 is the square of -2, -2 ** 2 is not
	if s.discard && strings.HasPrefix(out, "-") && s.pp == pythonop.Pow.Precedence()+1 {
		s.discard = false
	}
	g.Write(out)
	s.close()
}

func numberRepr(num pythonast.Number) string {
	switch num := num.(type) {
	case pythonast.Int:
		return strconv.FormatInt(num.Value, 10)
	case pythonast.Float:
		return floatPart(num.Value, false, true)
	case pythonast.Complex:
		// the j suffix already keeps the literal complex, so components
		// drop the trailing .0 a lone float literal would need
		real := floatPart(num.Real, false, false)
		imag := floatPart(num.Imag, true, false)
		switch {
		case num.Real == 0:
			return imag
		case num.Imag == 0:
			// an explicit zero imaginary part keeps the value complex
			return "(" + real + "+0j)"
		case strings.HasPrefix(imag, "-"):
			return "(" + real + imag + ")"
		default:
			return "(" + real + "+" + imag + ")"
		}
	default:
		faultf("unknown numeric value %T", num)
		return ""
	}
}

// floatPart renders one real or imaginary component. Python source has no
// infinity or NaN literal, so infinite magnitude becomes an overflowing
// exponent token and NaN a difference of two of them.
func floatPart(v float64, imaginary, keepFloat bool) string {
	suffix := ""
	if imaginary {
		suffix = "j"
	}
	switch {
	case math.IsInf(v, 1):
		return "1e1000" + suffix
	case math.IsInf(v, -1):
		return "-1e1000" + suffix
	case math.IsNaN(v):
		return fmt.Sprintf("(1e1000%s - 1e1000%s)", suffix, suffix)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if keepFloat && !strings.ContainsAny(s, ".eE") {
		// keep a float a float
		s += ".0"
	}
	return s + suffix
}

func (g *Generator) visitString(n *pythonast.StringExpr) {
	out := g.formatStringConstant(n, n.Value, false)
	if n.Prefix != "" {
		out = n.Prefix + out
	}
	g.writeFormatted(out)
}

func (g *Generator) visitJoinedString(n *pythonast.JoinedStringExpr) {
	out := g.formatStringConstant(n, "", true)
	g.writeFormatted("f" + out)
}

// formatStringConstant runs the string formatter over a literal's text. For
// a joined literal the text is first assembled by rendering the segments
// into a scratch region of the output, which is then spliced back out.
func (g *Generator) formatStringConstant(n pythonast.Node, value string, joined bool) string {
	// The embedding level tells the formatter whether a multi-line
	// rendering is permissible: 0 at statement level, 2 on the right of
	// an assignment.
	pp := g.precOf(n)
	embedded := 0
	if pp > pythonop.Expr {
		embedded++
	}
	if pp >= pythonop.Assign {
		embedded++
	}

	// flush pending line breaks before reading the output buffer back
	g.Write("")
	resIndex, strIndex := g.colinfoRes, g.colinfoStr
	line := g.currentLine()

	uniLit := false
	if joined {
		index := len(g.result)
		g.joinedParts(n.(*pythonast.JoinedStringExpr))
		g.Write("")
		var b strings.Builder
		for _, frag := range g.result[index:] {
			b.WriteString(frag)
		}
		value = b.String()
		g.result = g.result[:index]
		g.colinfoRes, g.colinfoStr = resIndex, strIndex
	} else {
		uniLit = g.unicodeLiterals
	}

	return g.opts.StringFormatter(value, embedded, line, uniLit)
}

// writeFormatted emits a formatted literal and records the position of its
// last line break so later literals on the same line see the right prefix.
func (g *Generator) writeFormatted(out string) {
	g.Write(out)
	if lf := strings.LastIndexByte(out, '\n') + 1; lf > 0 {
		g.colinfoRes = len(g.result) - 1
		g.colinfoStr = lf
	}
}

var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// joinedParts renders the segments of a joined string into the output.
// Literal text has its braces doubled so it cannot be misread as an
// interpolation; each formatted value gets a brace-delimited scope with an
// optional conversion suffix and format specification.
func (g *Generator) joinedParts(n *pythonast.JoinedStringExpr) {
	for _, value := range n.Values {
		switch value := value.(type) {
		case *pythonast.StringExpr:
			g.Write(braceEscaper.Replace(value.Value))
		case *pythonast.FormattedValue:
			s := g.openScope("{", "}")
			if value.SourceText != "" {
				// f-string debugging form: the expression text is
				// written verbatim
				g.Write(value.SourceText)
			} else {
				g.setPrec(pythonop.FormattedValue, value.Value)
				g.visit(value.Value)
			}
			if value.Conversion != 0 {
				g.Write("!" + string(value.Conversion))
			}
			if value.FormatSpec != nil {
				g.Write(":")
				g.joinedParts(value.FormatSpec)
			}
			s.close()
		default:
			faultf("invalid node %s inside a joined string", pythonast.String(value))
		}
	}
}
