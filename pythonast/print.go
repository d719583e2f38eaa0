package pythonast

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/pysrcgen/pysrcgen/pythonop"
)

func derefType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		return derefType(t.Elem())
	default:
		return t
	}
}

func typename(obj interface{}) string {
	return derefType(reflect.TypeOf(obj)).Name()
}

func numberStr(num Number) string {
	switch num := num.(type) {
	case Int:
		return fmt.Sprintf("%d", num.Value)
	case Float:
		return fmt.Sprintf("%v", num.Value)
	case Complex:
		return fmt.Sprintf("%v+%vj", num.Real, num.Imag)
	default:
		return "<nil>"
	}
}

func opStr(op pythonop.Op) string {
	if op == pythonop.BadOp {
		return "BadOp"
	}
	return op.Symbol()
}

// String returns a short textual representation of a node
func String(n Node) string {
	if IsNil(n) {
		return "Nil"
	}
	out := typename(n)
	switch n := n.(type) {
	case *AttributeExpr:
		out += "[" + n.Attribute + "]"
	case *NameExpr:
		out += "[" + n.Name + "]"
	case *NumberExpr:
		out += "[" + numberStr(n.Value) + "]"
	case *StringExpr:
		out += "[" + strings.Replace(n.Value, "\n", "\\n", -1) + "]"
	case *BinaryExpr:
		out += "[" + opStr(n.Op) + "]"
	case *UnaryExpr:
		out += "[" + opStr(n.Op) + "]"
	case *BoolOpExpr:
		out += "[" + opStr(n.Op) + "]"
	case *AugAssignStmt:
		out += "[" + opStr(n.Op) + "]"
	case *FunctionDefStmt:
		out += "[" + n.Name + "]"
	case *ClassDefStmt:
		out += "[" + n.Name + "]"
	case *Parameter:
		out += "[" + n.Name + "]"
	case *Alias:
		out += "[" + n.Name + "]"
	}
	return out
}

type prettyPrinter struct {
	depth  int
	indent string
	lines  bool
	w      io.Writer
}

func (p *prettyPrinter) Visit(n Node) Visitor {
	if n == nil {
		p.depth--
	} else {
		prefix := strings.Repeat(p.indent, p.depth)
		if p.lines {
			var line int
			if src, ok := n.(interface{ Lineno() int }); ok {
				line = src.Lineno()
			}
			prefix = fmt.Sprintf("[%4d]", line) + prefix
		}
		fmt.Fprintln(p.w, prefix+String(n))
		p.depth++
	}
	return p
}

// Print writes a textual representation of syntax tree to the given writer
func Print(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:      w,
		indent: indent,
	}
	Walk(&printer, root)
}

// PrintLines writes a textual representation of syntax tree to the given writer,
// including the recorded source line for each node.
func PrintLines(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:      w,
		indent: indent,
		lines:  true,
	}
	Walk(&printer, root)
}
