// Package pythongen renders pythonast trees back into Python source code.
// The entry point is Generate; a Generator walks the tree emitting source
// fragments, propagating the precedence each parent requires of its children
// and opening delimiter scopes that decide after the fact whether their
// parentheses are needed.
package pythongen

import (
	"fmt"
	"strings"

	"github.com/pysrcgen/pysrcgen/internal/errors"
	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
	"github.com/pysrcgen/pysrcgen/pythonstring"
)

// DefaultMaxDepth bounds tree depth during generation when Options.MaxDepth
// is left zero.
const DefaultMaxDepth = 10000

// Options configures source generation. The zero value is ready to use.
type Options struct {
	// Indent is the text emitted per indentation level, four spaces when
	// empty. It must contain only whitespace.
	Indent string

	// AddLineInfo emits a "# line: N" comment before each statement that
	// records a source line.
	AddLineInfo bool

	// StringFormatter renders string literals; pythonstring.Format when nil.
	StringFormatter pythonstring.Formatter

	// SourceFormatter assembles the final source from the emitted
	// fragments; plain concatenation when nil.
	SourceFormatter func(fragments []string) string

	// Visit, when set, is consulted before every node. Returning true
	// means the callback emitted the node itself and the built-in rule is
	// skipped.
	Visit func(g *Generator, n pythonast.Node) bool

	// MaxDepth bounds the tree depth; DefaultMaxDepth when zero.
	MaxDepth int
}

func (o Options) withDefaults() (Options, error) {
	if o.Indent == "" {
		o.Indent = "    "
	}
	if strings.TrimSpace(o.Indent) != "" {
		return o, errors.Errorf("indent must be whitespace, got %q", o.Indent)
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDepth < 0 {
		return o, errors.Errorf("max depth must be positive, got %d", o.MaxDepth)
	}
	if o.StringFormatter == nil {
		o.StringFormatter = pythonstring.Format
	}
	if o.SourceFormatter == nil {
		o.SourceFormatter = func(fragments []string) string {
			return strings.Join(fragments, "")
		}
	}
	return o, nil
}

// fault is a structural error found mid-traversal. It aborts generation via
// panic and is recovered in Generate; anything else that panics during a
// traversal propagates.
type fault struct {
	err error
}

func faultf(format string, args ...interface{}) {
	panic(fault{err: errors.Errorf(format, args...)})
}

// Generator holds the output state of one generation run. Custom Visit
// callbacks receive it so that they can emit fragments themselves.
type Generator struct {
	opts Options

	result      []string
	indentation int

	// newlines is the number of pending line breaks to flush before the
	// next fragment.
	newlines int

	// colinfoRes and colinfoStr locate the last emitted line break:
	// the index in result just past the fragment holding it, and the
	// offset just past it within that fragment.
	colinfoRes int
	colinfoStr int

	// prec holds the precedence each parent requires of a child; nodes
	// are never mutated.
	prec map[pythonast.Node]pythonop.Rank

	unicodeLiterals bool
	depth           int
}

// Generate renders the tree rooted at root as Python source. The output
// always ends with a newline. On error the output is empty and must not be
// used.
func Generate(root pythonast.Node, opts Options) (src string, err error) {
	if pythonast.IsNil(root) {
		return "", errors.New("cannot generate source for a nil node")
	}
	opts, err = opts.withDefaults()
	if err != nil {
		return "", err
	}

	g := &Generator{
		opts: opts,
		prec: make(map[pythonast.Node]pythonop.Rank),
	}

	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fault)
			if !ok {
				panic(r)
			}
			src = ""
			err = f.err
		}
	}()

	g.visit(root)
	g.result = append(g.result, "\n")
	if strings.Trim(g.result[0], "\n") == "" {
		g.result[0] = ""
	}
	return opts.SourceFormatter(g.result), nil
}

// Write emits one source fragment, first flushing any pending line breaks
// and the current indentation.
func (g *Generator) Write(s string) {
	if g.newlines > 0 {
		g.result = append(g.result, strings.Repeat("\n", g.newlines))
		g.colinfoRes = len(g.result)
		g.colinfoStr = 0
		if g.indentation > 0 {
			g.result = append(g.result, strings.Repeat(g.opts.Indent, g.indentation))
		}
		g.newlines = 0
	}
	if s != "" {
		g.result = append(g.result, s)
	}
}

// WriteNode emits a node through its generation rule.
func (g *Generator) WriteNode(n pythonast.Node) {
	g.visit(n)
}

// Newline schedules at least 1+extra line breaks before the next fragment.
// Pending breaks coalesce: scheduling never shrinks what is already owed.
func (g *Generator) Newline(extra int) {
	g.newline(nil, extra)
}

// SetPrecedence records the precedence required of n when it is emitted.
func (g *Generator) SetPrecedence(r pythonop.Rank, n pythonast.Node) {
	g.setPrec(r, n)
}

// Precedence returns the precedence required of n, Highest if none was set.
func (g *Generator) Precedence(n pythonast.Node) pythonop.Rank {
	return g.precOf(n)
}

// Indented runs body one indentation level deeper.
func (g *Generator) Indented(body func()) {
	g.indentation++
	body()
	g.indentation--
}

func (g *Generator) setPrec(r pythonop.Rank, nodes ...pythonast.Node) {
	for _, n := range nodes {
		if !pythonast.IsNil(n) {
			g.prec[n] = r
		}
	}
}

func (g *Generator) precOf(n pythonast.Node) pythonop.Rank {
	if r, ok := g.prec[n]; ok {
		return r
	}
	return pythonop.Highest
}

// write emits a mixed sequence of fragments: strings are written verbatim,
// nodes are visited, funcs are invoked.
func (g *Generator) write(items ...interface{}) {
	for _, item := range items {
		switch item := item.(type) {
		case string:
			g.Write(item)
		case pythonast.Node:
			g.visit(item)
		case func():
			item()
		default:
			faultf("cannot write %T", item)
		}
	}
}

// conditionalWrite writes all items if the last one is a non-nil node, and
// reports whether it wrote.
func (g *Generator) conditionalWrite(items ...interface{}) bool {
	last, ok := items[len(items)-1].(pythonast.Node)
	if !ok || pythonast.IsNil(last) {
		return false
	}
	g.write(items...)
	return true
}

func (g *Generator) newline(n pythonast.Node, extra int) {
	if g.newlines < 1+extra {
		g.newlines = 1 + extra
	}
	if !pythonast.IsNil(n) && g.opts.AddLineInfo {
		if src, ok := n.(interface{ Lineno() int }); ok && src.Lineno() > 0 {
			g.Write(fmt.Sprintf("# line: %d", src.Lineno()))
			g.newlines = 1
		}
	}
}

// statement schedules a line break for n, then writes params.
func (g *Generator) statement(n pythonast.Node, params ...interface{}) {
	g.newline(n, 0)
	g.write(params...)
}

func (g *Generator) body(statements []pythonast.Stmt) {
	g.indentation++
	for _, stmt := range statements {
		g.visit(stmt)
	}
	g.indentation--
}

func (g *Generator) elseBody(elsewhat []pythonast.Stmt) {
	if len(elsewhat) > 0 {
		g.newline(nil, 0)
		g.Write("else:")
		g.body(elsewhat)
	}
}

func (g *Generator) bodyOrElse(body, orelse []pythonast.Stmt) {
	g.body(body)
	g.elseBody(orelse)
}

// commaList emits exprs separated by ", " at Comma precedence, with an
// optional trailing comma.
func (g *Generator) commaList(items []pythonast.Expr, trailing bool) {
	for _, item := range items {
		g.setPrec(pythonop.Comma, item)
	}
	for i, item := range items {
		if i > 0 {
			g.Write(", ")
		}
		g.visit(item)
	}
	if trailing {
		g.Write(",")
	}
}

// currentLine reconstructs the text emitted since the last line break.
func (g *Generator) currentLine() string {
	var b strings.Builder
	for i, frag := range g.result[g.colinfoRes:] {
		if i == 0 && g.colinfoStr > 0 {
			frag = frag[g.colinfoStr:]
		}
		b.WriteString(frag)
	}
	return b.String()
}

// visit dispatches n to its generation rule.
func (g *Generator) visit(n pythonast.Node) {
	if pythonast.IsNil(n) {
		faultf("cannot generate source for a nil node")
	}
	if g.opts.Visit != nil && g.opts.Visit(g, n) {
		return
	}

	g.depth++
	if g.depth > g.opts.MaxDepth {
		faultf("tree depth exceeds %d at %s", g.opts.MaxDepth, pythonast.String(n))
	}
	defer func() { g.depth-- }()

	switch n := n.(type) {
	case *pythonast.Module:
		for _, stmt := range n.Body {
			g.visit(stmt)
		}

	// statements
	case *pythonast.ExprStmt:
		g.visitExprStmt(n)
	case *pythonast.AssignStmt:
		g.visitAssign(n)
	case *pythonast.AugAssignStmt:
		g.visitAugAssign(n)
	case *pythonast.AnnAssignStmt:
		g.visitAnnAssign(n)
	case *pythonast.ImportStmt:
		g.visitImport(n)
	case *pythonast.ImportFromStmt:
		g.visitImportFrom(n)
	case *pythonast.FunctionDefStmt:
		g.visitFunctionDef(n)
	case *pythonast.ClassDefStmt:
		g.visitClassDef(n)
	case *pythonast.IfStmt:
		g.visitIf(n)
	case *pythonast.ForStmt:
		g.visitFor(n)
	case *pythonast.WhileStmt:
		g.visitWhile(n)
	case *pythonast.WithStmt:
		g.visitWith(n)
	case *pythonast.TryStmt:
		g.visitTry(n)
	case *pythonast.ExceptClause:
		g.visitExceptClause(n)
	case *pythonast.RaiseStmt:
		g.visitRaise(n)
	case *pythonast.DeleteStmt:
		g.visitDelete(n)
	case *pythonast.AssertStmt:
		g.visitAssert(n)
	case *pythonast.GlobalStmt:
		g.statement(n, "global ", strings.Join(n.Names, ", "))
	case *pythonast.NonLocalStmt:
		g.statement(n, "nonlocal ", strings.Join(n.Names, ", "))
	case *pythonast.ReturnStmt:
		g.visitReturn(n)
	case *pythonast.PassStmt:
		g.statement(n, "pass")
	case *pythonast.BreakStmt:
		g.statement(n, "break")
	case *pythonast.ContinueStmt:
		g.statement(n, "continue")
	case *pythonast.PrintStmt:
		g.visitPrint(n)

	// expressions
	case *pythonast.NameExpr:
		g.Write(n.Name)
	case *pythonast.AttributeExpr:
		g.write(n.Value, ".", n.Attribute)
	case *pythonast.CallExpr:
		g.visitCall(n)
	case *pythonast.NumberExpr:
		g.visitNumber(n)
	case *pythonast.StringExpr:
		g.visitString(n)
	case *pythonast.BytesExpr:
		g.Write(pythonstring.BytesRepr(n.Value))
	case *pythonast.JoinedStringExpr:
		g.visitJoinedString(n)
	case *pythonast.TupleExpr:
		g.visitTuple(n)
	case *pythonast.ListExpr:
		g.write("[", func() { g.commaList(n.Elts, false) }, "]")
	case *pythonast.SetExpr:
		g.visitSet(n)
	case *pythonast.DictExpr:
		g.visitDict(n)
	case *pythonast.BinaryExpr:
		g.visitBinary(n)
	case *pythonast.BoolOpExpr:
		g.visitBoolOp(n)
	case *pythonast.CompareExpr:
		g.visitCompare(n)
	case *pythonast.NamedExpr:
		g.visitNamed(n)
	case *pythonast.UnaryExpr:
		g.visitUnary(n)
	case *pythonast.IfExpr:
		g.visitIfExpr(n)
	case *pythonast.LambdaExpr:
		g.visitLambda(n)
	case *pythonast.YieldExpr:
		g.visitYield(n)
	case *pythonast.YieldFromExpr:
		g.visitYieldFrom(n)
	case *pythonast.AwaitExpr:
		g.visitAwait(n)
	case *pythonast.StarredExpr:
		g.write("*", n.Value)
	case *pythonast.EllipsisExpr:
		g.Write("...")
	case *pythonast.ReprExpr:
		g.write("`", n.Value, "`")
	case *pythonast.ListComprehensionExpr:
		g.write("[", func() { g.comprehension(n.Value, n.Generators) }, "]")
	case *pythonast.SetComprehensionExpr:
		g.write("{", func() { g.comprehension(n.Value, n.Generators) }, "}")
	case *pythonast.GeneratorExpr:
		g.visitGeneratorExpr(n)
	case *pythonast.DictComprehensionExpr:
		g.visitDictComprehension(n)
	case *pythonast.Generator:
		g.visitComprehensionClause(n)
	case *pythonast.IndexExpr:
		g.visitIndexExpr(n)
	case *pythonast.IndexSubscript:
		g.visitIndexSubscript(n)
	case *pythonast.SliceSubscript:
		g.visitSliceSubscript(n)

	// helper nodes
	case *pythonast.Alias:
		g.visitAlias(n)
	case *pythonast.WithItem:
		g.visitWithItem(n)
	case *pythonast.Parameter:
		g.visitParameter(n, true)
	case *pythonast.Arguments:
		g.visitArguments(n)
	case *pythonast.Argument:
		g.visitKeyword(n)

	default:
		faultf("no generation rule for %s", pythonast.String(n))
	}
}
