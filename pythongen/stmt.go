package pythongen

import (
	"strings"

	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
)

func (g *Generator) visitExprStmt(n *pythonast.ExprStmt) {
	g.setPrec(pythonop.Expr, n.Value)
	g.statement(n)
	g.visit(n.Value)
}

func (g *Generator) visitAssign(n *pythonast.AssignStmt) {
	g.setPrec(pythonop.Assign, n.Value)
	for _, target := range n.Targets {
		g.setPrec(pythonop.Assign, target)
	}
	g.newline(n, 0)
	for _, target := range n.Targets {
		g.write(target, " = ")
	}
	g.visit(n.Value)
}

func (g *Generator) visitAugAssign(n *pythonast.AugAssignStmt) {
	g.setPrec(pythonop.AugAssign, n.Value, n.Target)
	g.statement(n, n.Target, " "+n.Op.Symbol()+"= ", n.Value)
}

func (g *Generator) visitAnnAssign(n *pythonast.AnnAssignStmt) {
	g.setPrec(pythonop.AnnAssign, n.Target, n.Annotation)
	g.setPrec(pythonop.Comma, n.Value)
	_, isName := n.Target.(*pythonast.NameExpr)
	needParens := isName && !n.Simple
	begin, end := "", ""
	if needParens {
		begin, end = "(", ")"
	}
	g.statement(n, begin, n.Target, end, ": ", n.Annotation)
	g.conditionalWrite(" = ", n.Value)
}

func (g *Generator) visitImport(n *pythonast.ImportStmt) {
	g.statement(n, "import ")
	g.aliasList(n.Names)
}

func (g *Generator) visitImportFrom(n *pythonast.ImportFromStmt) {
	g.statement(n, "from ", strings.Repeat(".", n.Level), n.Module, " import ")
	g.aliasList(n.Names)
	if n.Module == "__future__" {
		for _, alias := range n.Names {
			if alias.Name == "unicode_literals" {
				g.unicodeLiterals = true
			}
		}
	}
}

func (g *Generator) aliasList(names []*pythonast.Alias) {
	for i, alias := range names {
		if i > 0 {
			g.Write(", ")
		}
		g.visitAlias(alias)
	}
}

func (g *Generator) visitAlias(n *pythonast.Alias) {
	g.Write(n.Name)
	if n.AsName != "" {
		g.Write(" as " + n.AsName)
	}
}

func (g *Generator) decorators(decorators []pythonast.Expr, extra int) {
	g.newline(nil, extra)
	for _, decorator := range decorators {
		g.statement(nil, "@", decorator)
	}
}

func (g *Generator) visitFunctionDef(n *pythonast.FunctionDefStmt) {
	prefix := ""
	if n.Async {
		prefix = "async "
	}
	extra := 2
	if g.indentation > 0 {
		extra = 1
	}
	g.decorators(n.Decorators, extra)
	g.statement(n, prefix+"def "+n.Name, "(")
	if n.Args != nil {
		g.visitArguments(n.Args)
	}
	g.Write(")")
	g.conditionalWrite(" ->", n.Returns)
	g.Write(":")
	g.body(n.Body)
	if g.indentation == 0 {
		g.newline(nil, 2)
	}
}

func (g *Generator) visitClassDef(n *pythonast.ClassDefStmt) {
	haveArgs := false
	parenOrComma := func() {
		if haveArgs {
			g.Write(", ")
		} else {
			haveArgs = true
			g.Write("(")
		}
	}

	g.decorators(n.Decorators, 2)
	g.statement(n, "class "+n.Name)
	for _, base := range n.Bases {
		g.write(parenOrComma, base)
	}
	for _, keyword := range n.Keywords {
		if keyword.Name != "" {
			g.write(parenOrComma, keyword.Name, "=", keyword.Value)
		} else {
			g.write(parenOrComma, "**", keyword.Value)
		}
	}
	if haveArgs {
		g.Write("):")
	} else {
		g.Write(":")
	}
	g.body(n.Body)
	if g.indentation == 0 {
		g.newline(nil, 2)
	}
}

func (g *Generator) visitIf(n *pythonast.IfStmt) {
	g.setPrec(pythonop.If, n.Test)
	g.statement(n, "if ", n.Test, ":")
	g.body(n.Body)
	for {
		orelse := n.Orelse
		if len(orelse) == 1 {
			if elif, ok := orelse[0].(*pythonast.IfStmt); ok {
				n = elif
				g.setPrec(pythonop.If, n.Test)
				g.newline(n, 0)
				g.write("elif ", n.Test, ":")
				g.body(n.Body)
				continue
			}
		}
		g.elseBody(orelse)
		return
	}
}

func (g *Generator) visitFor(n *pythonast.ForStmt) {
	g.setPrec(pythonop.For, n.Target)
	prefix := ""
	if n.Async {
		prefix = "async "
	}
	g.statement(n, prefix+"for ", n.Target, " in ", n.Iterable, ":")
	g.bodyOrElse(n.Body, n.Orelse)
}

func (g *Generator) visitWhile(n *pythonast.WhileStmt) {
	g.setPrec(pythonop.While, n.Test)
	g.statement(n, "while ", n.Test, ":")
	g.bodyOrElse(n.Body, n.Orelse)
}

func (g *Generator) visitWith(n *pythonast.WithStmt) {
	prefix := ""
	if n.Async {
		prefix = "async "
	}
	g.statement(n, prefix+"with ")
	for i, item := range n.Items {
		if i > 0 {
			g.Write(", ")
		}
		g.visitWithItem(item)
	}
	g.Write(":")
	g.body(n.Body)
}

func (g *Generator) visitWithItem(n *pythonast.WithItem) {
	g.visit(n.Context)
	g.conditionalWrite(" as ", n.Target)
}

func (g *Generator) visitTry(n *pythonast.TryStmt) {
	g.statement(n, "try:")
	g.body(n.Body)
	for _, handler := range n.Handlers {
		g.visitExceptClause(handler)
	}
	g.elseBody(n.Orelse)
	if len(n.Finally) > 0 {
		g.statement(n, "finally:")
		g.body(n.Finally)
	}
}

func (g *Generator) visitExceptClause(n *pythonast.ExceptClause) {
	g.statement(n, "except")
	if g.conditionalWrite(" ", n.Type) && n.As != "" {
		g.Write(" as " + n.As)
	}
	g.Write(":")
	g.body(n.Body)
}

func (g *Generator) visitRaise(n *pythonast.RaiseStmt) {
	g.statement(n, "raise")
	if g.conditionalWrite(" ", n.Exc) {
		g.conditionalWrite(" from ", n.Cause)
	}
}

func (g *Generator) visitDelete(n *pythonast.DeleteStmt) {
	g.statement(n, "del ")
	g.commaList(n.Targets, false)
}

func (g *Generator) visitAssert(n *pythonast.AssertStmt) {
	g.setPrec(pythonop.Assert, n.Test, n.Message)
	g.statement(n, "assert ", n.Test)
	g.conditionalWrite(", ", n.Message)
}

func (g *Generator) visitReturn(n *pythonast.ReturnStmt) {
	g.setPrec(pythonop.Return, n.Value)
	g.statement(n, "return")
	g.conditionalWrite(" ", n.Value)
}

func (g *Generator) visitPrint(n *pythonast.PrintStmt) {
	g.statement(n, "print ")
	values := n.Values
	if !pythonast.IsNil(n.Dest) {
		g.Write(" >> ")
		values = append([]pythonast.Expr{n.Dest}, n.Values...)
	}
	g.commaList(values, !n.NewLine)
}
