package pythongen

import (
	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
)

// nodeRank returns the intrinsic precedence of a node for delimiter and
// propagation decisions.
func nodeRank(n pythonast.Node) pythonop.Rank {
	switch n := n.(type) {
	case *pythonast.GeneratorExpr:
		return pythonop.GeneratorExp
	case *pythonast.TupleExpr:
		return pythonop.Tuple
	case *pythonast.NamedExpr:
		return pythonop.NamedExpr
	case *pythonast.YieldExpr:
		return pythonop.Yield
	case *pythonast.YieldFromExpr:
		return pythonop.YieldFrom
	case *pythonast.AwaitExpr:
		return pythonop.Await
	case *pythonast.LambdaExpr:
		return pythonop.Lambda
	case *pythonast.IfExpr:
		return pythonop.IfExp
	case *pythonast.NumberExpr:
		return pythonop.Num
	case *pythonast.StringExpr, *pythonast.JoinedStringExpr:
		return pythonop.Str
	case *pythonast.IndexSubscript:
		return pythonop.Index
	case *pythonast.SliceSubscript:
		return pythonop.Slice
	case *pythonast.BinaryExpr:
		return n.Op.Precedence()
	case *pythonast.UnaryExpr:
		return n.Op.Precedence()
	case *pythonast.BoolOpExpr:
		return n.Op.Precedence()
	case *pythonast.CompareExpr:
		if len(n.Ops) == 0 {
			faultf("comparison with no operators")
		}
		return n.Ops[0].Precedence()
	default:
		return pythonop.Highest
	}
}

// scope is one delimiter scope. Opening it reserves an empty slot in the
// output for the opening delimiter; closing it either fills the slot and
// appends the closing delimiter, or leaves both out when the contents
// decided the delimiters are unnecessary.
type scope struct {
	g       *Generator
	index   int
	opening string
	closing string

	// p is the precedence of the delimited construct, pp the precedence
	// its context requires; discard starts as p >= pp and may be
	// overridden while the contents are emitted.
	p       pythonop.Rank
	pp      pythonop.Rank
	discard bool
}

func (g *Generator) openScope(opening, closing string) *scope {
	g.Write("") // flush pending line breaks so the slot lands inside the line
	s := &scope{g: g, index: len(g.result), opening: opening, closing: closing}
	g.result = append(g.result, "")
	return s
}

// delimit opens a parenthesis scope for n. The construct's precedence is
// taken from op, or from n itself when op is BadOp.
func (g *Generator) delimit(n pythonast.Node, op pythonop.Op) *scope {
	s := g.openScope("(", ")")
	if op != pythonop.BadOp {
		s.p = op.Precedence()
	} else {
		s.p = nodeRank(n)
	}
	s.pp = g.precOf(n)
	s.discard = s.p >= s.pp
	return s
}

func (s *scope) close() {
	if s.discard {
		return
	}
	s.g.result[s.index] = s.opening
	s.g.result = append(s.g.result, s.closing)
}

func (g *Generator) visitCall(n *pythonast.CallExpr) {
	wantComma := false
	writeComma := func() {
		if wantComma {
			g.Write(", ")
		} else {
			wantComma = true
		}
	}

	p := pythonop.CallOneArg
	if len(n.Args)+len(n.Keywords) > 1 {
		p = pythonop.Comma
	}
	for _, arg := range n.Args {
		g.setPrec(p, arg)
	}
	g.visit(n.Func)
	g.Write("(")
	for _, arg := range n.Args {
		writeComma()
		g.visit(arg)
	}
	for _, keyword := range n.Keywords {
		g.setPrec(pythonop.Comma, keyword.Value)
	}
	for _, keyword := range n.Keywords {
		writeComma()
		g.visitKeyword(keyword)
	}
	g.Write(")")
}

func (g *Generator) visitKeyword(n *pythonast.Argument) {
	if n.Name != "" {
		g.write(n.Name, "=", n.Value)
	} else {
		g.write("**", n.Value)
	}
}

func (g *Generator) visitTuple(n *pythonast.TupleExpr) {
	s := g.delimit(n, pythonop.BadOp)
	// empty tuples always keep their parentheses, and a single element
	// needs its trailing comma
	if len(n.Elts) == 0 {
		s.discard = false
	}
	g.commaList(n.Elts, len(n.Elts) == 1)
	s.close()
}

func (g *Generator) visitSet(n *pythonast.SetExpr) {
	if len(n.Elts) == 0 {
		// "{}" would be an empty dict, and the name "set" might be
		// rebound
		g.Write("{1}.__class__()")
		return
	}
	g.write("{", func() { g.commaList(n.Elts, false) }, "}")
}

func (g *Generator) visitDict(n *pythonast.DictExpr) {
	for _, item := range n.Items {
		g.setPrec(pythonop.Comma, item.Value)
	}
	g.Write("{")
	for i, item := range n.Items {
		if i > 0 {
			g.Write(", ")
		}
		if pythonast.IsNil(item.Key) {
			g.write("**", item.Value)
		} else {
			g.write(item.Key, ": ", item.Value)
		}
	}
	g.Write("}")
}

func (g *Generator) visitBinary(n *pythonast.BinaryExpr) {
	s := g.delimit(n, n.Op)
	if n.Op == pythonop.Pow {
		// ** binds tighter than unary on the right and associates right
		g.setPrec(pythonop.Pow.Precedence()+1, n.Left)
		g.setPrec(pythonop.PowRHS, n.Right)
	} else {
		g.setPrec(s.p, n.Left)
		g.setPrec(s.p+1, n.Right)
	}
	g.write(n.Left, " "+n.Op.Symbol()+" ", n.Right)
	s.close()
}

func (g *Generator) visitBoolOp(n *pythonast.BoolOpExpr) {
	s := g.delimit(n, n.Op)
	for _, value := range n.Values {
		g.setPrec(s.p+1, value)
	}
	for i, value := range n.Values {
		if i > 0 {
			g.Write(" " + n.Op.Symbol() + " ")
		}
		g.visit(value)
	}
	s.close()
}

func (g *Generator) visitCompare(n *pythonast.CompareExpr) {
	if len(n.Ops) == 0 || len(n.Ops) != len(n.Comparators) {
		faultf("comparison with %d operators and %d comparators",
			len(n.Ops), len(n.Comparators))
	}
	s := g.delimit(n, n.Ops[0])
	g.setPrec(s.p+1, n.Left)
	for _, comparator := range n.Comparators {
		g.setPrec(s.p+1, comparator)
	}
	g.visit(n.Left)
	for i, op := range n.Ops {
		g.write(" "+op.Symbol()+" ", n.Comparators[i])
	}
	s.close()
}

func (g *Generator) visitNamed(n *pythonast.NamedExpr) {
	s := g.delimit(n, pythonop.BadOp)
	g.setPrec(s.p, n.Target)
	g.setPrec(s.p+1, n.Value)
	// the parser requires at least one pair of parentheses around any
	// assignment expression, even where precedence alone would not
	s.discard = false
	g.write(n.Target, " := ", n.Value)
	s.close()
}

func (g *Generator) visitUnary(n *pythonast.UnaryExpr) {
	s := g.delimit(n, n.Op)
	g.setPrec(s.p, n.Operand)
	sym := n.Op.Symbol()
	if n.Op.IsKeyword() {
		sym += " "
	}
	g.write(sym, n.Operand)
	s.close()
}

func (g *Generator) visitIfExpr(n *pythonast.IfExpr) {
	s := g.delimit(n, pythonop.BadOp)
	g.setPrec(s.p+1, n.Body, n.Test)
	g.setPrec(s.p, n.Orelse)
	g.write(n.Body, " if ", n.Test, " else ", n.Orelse)
	s.close()
}

func (g *Generator) visitLambda(n *pythonast.LambdaExpr) {
	s := g.delimit(n, pythonop.BadOp)
	g.setPrec(s.p, n.Body)
	g.Write("lambda ")
	if n.Args != nil {
		g.visitArguments(n.Args)
	}
	g.write(": ", n.Body)
	s.close()
}

func (g *Generator) visitYield(n *pythonast.YieldExpr) {
	s := g.delimit(n, pythonop.BadOp)
	g.setPrec(s.p+1, n.Value)
	g.Write("yield")
	g.conditionalWrite(" ", n.Value)
	s.close()
}

func (g *Generator) visitYieldFrom(n *pythonast.YieldFromExpr) {
	s := g.delimit(n, pythonop.BadOp)
	g.write("yield from ", n.Value)
	s.close()
}

func (g *Generator) visitAwait(n *pythonast.AwaitExpr) {
	s := g.delimit(n, pythonop.BadOp)
	g.write("await ", n.Value)
	s.close()
}

func (g *Generator) visitGeneratorExpr(n *pythonast.GeneratorExpr) {
	s := g.delimit(n, pythonop.BadOp)
	// as the sole argument of a call the generator reuses the call's own
	// parentheses
	if s.pp == pythonop.CallOneArg {
		s.discard = true
	}
	g.setPrec(pythonop.Comma, n.Value)
	g.comprehension(n.Value, n.Generators)
	s.close()
}

func (g *Generator) comprehension(value pythonast.Expr, generators []*pythonast.Generator) {
	g.visit(value)
	for _, gen := range generators {
		g.visitComprehensionClause(gen)
	}
}

func (g *Generator) visitDictComprehension(n *pythonast.DictComprehensionExpr) {
	g.write("{", n.Key, ": ", n.Value)
	for _, gen := range n.Generators {
		g.visitComprehensionClause(gen)
	}
	g.Write("}")
}

func (g *Generator) visitComprehensionClause(n *pythonast.Generator) {
	g.setPrec(pythonop.Comprehension, n.Iterable)
	for _, filter := range n.Filters {
		g.setPrec(pythonop.Comprehension, filter)
	}
	g.setPrec(pythonop.ComprehensionTarget, n.Target)
	stmt := " for "
	if n.Async {
		stmt = " async for "
	}
	g.write(stmt, n.Target, " in ", n.Iterable)
	for _, filter := range n.Filters {
		g.write(" if ", filter)
	}
}

func (g *Generator) visitIndexExpr(n *pythonast.IndexExpr) {
	if len(n.Subscripts) == 0 {
		faultf("subscript of %s with no dimensions", pythonast.String(n.Value))
	}
	g.visit(n.Value)
	g.Write("[")
	if len(n.Subscripts) == 1 {
		g.setPrec(pythonop.Subscript, n.Subscripts[0])
		g.visit(n.Subscripts[0])
	} else {
		for _, sub := range n.Subscripts {
			g.setPrec(pythonop.Comma, sub)
		}
		for i, sub := range n.Subscripts {
			if i > 0 {
				g.Write(", ")
			}
			g.visit(sub)
		}
	}
	g.Write("]")
}

func (g *Generator) visitIndexSubscript(n *pythonast.IndexSubscript) {
	s := g.delimit(n, pythonop.BadOp)
	g.setPrec(s.p, n.Value)
	g.visit(n.Value)
	s.close()
}

func (g *Generator) visitSliceSubscript(n *pythonast.SliceSubscript) {
	g.setPrec(pythonop.Slice, n.Lower, n.Upper, n.Step)
	g.conditionalWrite(n.Lower)
	g.Write(":")
	g.conditionalWrite(n.Upper)
	if !pythonast.IsNil(n.Step) {
		g.Write(":")
		if name, ok := n.Step.(*pythonast.NameExpr); !ok || name.Name != "None" {
			g.visit(n.Step)
		}
	}
}

func (g *Generator) visitArguments(n *pythonast.Arguments) {
	wantComma := false
	writeComma := func() {
		if wantComma {
			g.Write(", ")
		} else {
			wantComma = true
		}
	}

	for _, param := range n.PosOnly {
		writeComma()
		g.visitParameter(param, true)
	}
	if len(n.PosOnly) > 0 {
		writeComma()
		g.Write("/")
	}
	for _, param := range n.Args {
		writeComma()
		g.visitParameter(param, true)
	}
	if n.Vararg != nil {
		writeComma()
		g.Write("*")
		g.visitParameter(n.Vararg, false)
	}
	if len(n.KwOnly) > 0 {
		if n.Vararg == nil {
			writeComma()
			g.Write("*")
		}
		for _, param := range n.KwOnly {
			writeComma()
			g.visitParameter(param, true)
		}
	}
	if n.Kwarg != nil {
		writeComma()
		g.Write("**")
		g.visitParameter(n.Kwarg, false)
	}
}

func (g *Generator) visitParameter(n *pythonast.Parameter, withDefault bool) {
	g.Write(n.Name)
	g.conditionalWrite(": ", n.Annotation)
	if withDefault && !pythonast.IsNil(n.Default) {
		g.setPrec(pythonop.Comma, n.Default)
		g.write("=", n.Default)
	}
}
