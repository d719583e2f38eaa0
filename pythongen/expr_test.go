package pythongen

import (
	"testing"

	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
	"github.com/stretchr/testify/assert"
)

func TestBinary_Precedence(t *testing.T) {
	// 1 + 2 * 3
	flat := binop(num(1), pythonop.Add, binop(num(2), pythonop.Mult, num(3)))
	assert.Equal(t, "1 + 2 * 3", genExpr(t, flat))

	// (1 + 2) * 3
	grouped := binop(binop(num(1), pythonop.Add, num(2)), pythonop.Mult, num(3))
	assert.Equal(t, "(1 + 2) * 3", genExpr(t, grouped))

	// left associativity: 1 - 2 - 3 vs 1 - (2 - 3)
	left := binop(binop(num(1), pythonop.Sub, num(2)), pythonop.Sub, num(3))
	assert.Equal(t, "1 - 2 - 3", genExpr(t, left))
	right := binop(num(1), pythonop.Sub, binop(num(2), pythonop.Sub, num(3)))
	assert.Equal(t, "1 - (2 - 3)", genExpr(t, right))
}

func TestBinary_Power(t *testing.T) {
	// ** associates right: 2 ** 3 ** 4 is 2 ** (3 ** 4)
	rightAssoc := binop(num(2), pythonop.Pow, binop(num(3), pythonop.Pow, num(4)))
	assert.Equal(t, "2 ** 3 ** 4", genExpr(t, rightAssoc))

	leftAssoc := binop(binop(num(2), pythonop.Pow, num(3)), pythonop.Pow, num(4))
	assert.Equal(t, "(2 ** 3) ** 4", genExpr(t, leftAssoc))

	// unary on the right of ** needs no parentheses
	negExp := binop(num(2), pythonop.Pow, &pythonast.UnaryExpr{Op: pythonop.USub, Operand: num(3)})
	assert.Equal(t, "2 ** -3", genExpr(t, negExp))

	// but a negated base does
	negBase := binop(&pythonast.UnaryExpr{Op: pythonop.USub, Operand: num(2)}, pythonop.Pow, num(3))
	assert.Equal(t, "(-2) ** 3", genExpr(t, negBase))
}

func TestUnary(t *testing.T) {
	assert.Equal(t, "-x", genExpr(t, &pythonast.UnaryExpr{Op: pythonop.USub, Operand: name("x")}))
	assert.Equal(t, "~x", genExpr(t, &pythonast.UnaryExpr{Op: pythonop.Invert, Operand: name("x")}))
	assert.Equal(t, "not x", genExpr(t, &pythonast.UnaryExpr{Op: pythonop.Not, Operand: name("x")}))

	// unary binds tighter than +
	sum := binop(&pythonast.UnaryExpr{Op: pythonop.USub, Operand: name("x")}, pythonop.Add, name("y"))
	assert.Equal(t, "-x + y", genExpr(t, sum))

	neg := &pythonast.UnaryExpr{Op: pythonop.USub, Operand: binop(name("x"), pythonop.Add, name("y"))}
	assert.Equal(t, "-(x + y)", genExpr(t, neg))
}

func TestBoolOp(t *testing.T) {
	or := &pythonast.BoolOpExpr{Op: pythonop.Or, Values: []pythonast.Expr{name("a"), name("b"), name("c")}}
	assert.Equal(t, "a or b or c", genExpr(t, or))

	// nested and inside or keeps its shape without parentheses
	and := &pythonast.BoolOpExpr{Op: pythonop.And, Values: []pythonast.Expr{name("b"), name("c")}}
	mixed := &pythonast.BoolOpExpr{Op: pythonop.Or, Values: []pythonast.Expr{name("a"), and}}
	assert.Equal(t, "a or b and c", genExpr(t, mixed))

	// or inside and needs parentheses
	inner := &pythonast.BoolOpExpr{Op: pythonop.Or, Values: []pythonast.Expr{name("a"), name("b")}}
	outer := &pythonast.BoolOpExpr{Op: pythonop.And, Values: []pythonast.Expr{inner, name("c")}}
	assert.Equal(t, "(a or b) and c", genExpr(t, outer))
}

func TestCompare(t *testing.T) {
	chain := &pythonast.CompareExpr{
		Left:        num(1),
		Ops:         []pythonop.Op{pythonop.Lt, pythonop.LtE},
		Comparators: []pythonast.Expr{name("x"), num(10)},
	}
	assert.Equal(t, "1 < x <= 10", genExpr(t, chain))

	isNot := &pythonast.CompareExpr{
		Left:        name("x"),
		Ops:         []pythonop.Op{pythonop.IsNot},
		Comparators: []pythonast.Expr{name("None")},
	}
	assert.Equal(t, "x is not None", genExpr(t, isNot))
}

func TestCompare_Malformed(t *testing.T) {
	_, err := Generate(module(exprStmt(&pythonast.CompareExpr{Left: name("x")})), Options{})
	assert.Error(t, err)
}

func TestNamedExpr_AlwaysParenthesized(t *testing.T) {
	walrus := &pythonast.NamedExpr{Target: name("x"), Value: num(1)}
	assert.Equal(t, "(x := 1)", genExpr(t, walrus))

	cond := &pythonast.IfStmt{
		Test: &pythonast.NamedExpr{Target: name("n"), Value: &pythonast.CallExpr{Func: name("len")}},
		Body: []pythonast.Stmt{&pythonast.PassStmt{}},
	}
	assert.Equal(t, "if (n := len()):\n    pass\n", gen(t, module(cond)))
}

func TestTuple(t *testing.T) {
	assert.Equal(t, "()", genExpr(t, &pythonast.TupleExpr{}))

	single := &pythonast.TupleExpr{Elts: []pythonast.Expr{num(1)}}
	assert.Equal(t, "1,", genExpr(t, single))

	pair := &pythonast.TupleExpr{Elts: []pythonast.Expr{num(1), num(2)}}
	assert.Equal(t, "1, 2", genExpr(t, pair))

	// assignment keeps the bare form
	assert.Equal(t, "x = 1, 2\n", gen(t, module(assign(name("x"), pair))))

	// a tuple inside a tuple keeps its parentheses
	nested := &pythonast.TupleExpr{Elts: []pythonast.Expr{num(1), pair}}
	assert.Equal(t, "1, (1, 2)", genExpr(t, nested))

	// a single-element tuple as a call argument keeps parens and comma
	call := &pythonast.CallExpr{Func: name("f"), Args: []pythonast.Expr{single}}
	assert.Equal(t, "f((1,))", genExpr(t, call))
}

func TestContainers(t *testing.T) {
	list := &pythonast.ListExpr{Elts: []pythonast.Expr{num(1), num(2)}}
	assert.Equal(t, "[1, 2]", genExpr(t, list))

	set := &pythonast.SetExpr{Elts: []pythonast.Expr{num(1)}}
	assert.Equal(t, "{1}", genExpr(t, set))

	// there is no empty set display
	assert.Equal(t, "{1}.__class__()", genExpr(t, &pythonast.SetExpr{}))

	dict := &pythonast.DictExpr{Items: []*pythonast.KeyValuePair{
		{Key: str("a"), Value: num(1)},
		{Value: name("rest")},
	}}
	assert.Equal(t, "{'a': 1, **rest}", genExpr(t, dict))

	assert.Equal(t, "{}", genExpr(t, &pythonast.DictExpr{}))
}

func TestCall(t *testing.T) {
	call := &pythonast.CallExpr{
		Func: name("f"),
		Args: []pythonast.Expr{num(1), &pythonast.StarredExpr{Value: name("rest")}},
		Keywords: []*pythonast.Argument{
			{Name: "k", Value: num(2)},
			{Value: name("kw")},
		},
	}
	assert.Equal(t, "f(1, *rest, k=2, **kw)", genExpr(t, call))

	method := &pythonast.CallExpr{
		Func: &pythonast.AttributeExpr{Value: name("obj"), Attribute: "go"},
	}
	assert.Equal(t, "obj.go()", genExpr(t, method))
}

func TestCall_NumericFunc(t *testing.T) {
	// a numeral used as a callee keeps its parentheses
	call := &pythonast.CallExpr{
		Func: &pythonast.AttributeExpr{Value: num(1), Attribute: "bit_length"},
	}
	assert.Equal(t, "(1).bit_length()", genExpr(t, call))
}

func TestCall_LambdaFunc(t *testing.T) {
	call := &pythonast.CallExpr{
		Func: &pythonast.LambdaExpr{Body: name("x")},
	}
	assert.Equal(t, "(lambda : x)()", genExpr(t, call))
}

func TestLambda(t *testing.T) {
	fn := &pythonast.LambdaExpr{
		Args: &pythonast.Arguments{Args: []*pythonast.Parameter{{Name: "a"}, {Name: "b", Default: num(1)}}},
		Body: binop(name("a"), pythonop.Add, name("b")),
	}
	assert.Equal(t, "lambda a, b=1: a + b", genExpr(t, fn))
}

func TestIfExpr(t *testing.T) {
	cond := &pythonast.IfExpr{Body: name("a"), Test: name("ok"), Orelse: name("b")}
	assert.Equal(t, "a if ok else b", genExpr(t, cond))

	// chained conditionals nest on the else side without parentheses
	chained := &pythonast.IfExpr{Body: name("a"), Test: name("p"), Orelse: cond}
	assert.Equal(t, "a if p else a if ok else b", genExpr(t, chained))
}

func TestAttribute_And_Subscript(t *testing.T) {
	attr := &pythonast.AttributeExpr{Value: name("a"), Attribute: "b"}
	assert.Equal(t, "a.b", genExpr(t, attr))

	sub := &pythonast.IndexExpr{
		Value:      name("a"),
		Subscripts: []pythonast.Subscript{&pythonast.IndexSubscript{Value: num(0)}},
	}
	assert.Equal(t, "a[0]", genExpr(t, sub))

	tupleIndex := &pythonast.IndexExpr{
		Value: name("a"),
		Subscripts: []pythonast.Subscript{&pythonast.IndexSubscript{
			Value: &pythonast.TupleExpr{Elts: []pythonast.Expr{num(1), num(2)}},
		}},
	}
	assert.Equal(t, "a[1, 2]", genExpr(t, tupleIndex))
}

func TestSlices(t *testing.T) {
	slice := &pythonast.IndexExpr{
		Value:      name("a"),
		Subscripts: []pythonast.Subscript{&pythonast.SliceSubscript{Lower: num(1), Upper: num(2)}},
	}
	assert.Equal(t, "a[1:2]", genExpr(t, slice))

	step := &pythonast.IndexExpr{
		Value:      name("a"),
		Subscripts: []pythonast.Subscript{&pythonast.SliceSubscript{Step: num(2)}},
	}
	assert.Equal(t, "a[::2]", genExpr(t, step))

	// a None step is suppressed after the second colon
	noneStep := &pythonast.IndexExpr{
		Value:      name("a"),
		Subscripts: []pythonast.Subscript{&pythonast.SliceSubscript{Lower: name("b"), Step: name("None")}},
	}
	assert.Equal(t, "a[b::]", genExpr(t, noneStep))

	ellipsis := &pythonast.IndexExpr{
		Value:      name("a"),
		Subscripts: []pythonast.Subscript{&pythonast.EllipsisExpr{}},
	}
	assert.Equal(t, "a[...]", genExpr(t, ellipsis))
}

func TestYieldAwait(t *testing.T) {
	assert.Equal(t, "yield", genExpr(t, &pythonast.YieldExpr{}))
	assert.Equal(t, "yield x", genExpr(t, &pythonast.YieldExpr{Value: name("x")}))
	assert.Equal(t, "yield from xs", genExpr(t, &pythonast.YieldFromExpr{Value: name("xs")}))

	// as an argument the yield keeps its parentheses
	call := &pythonast.CallExpr{Func: name("f"), Args: []pythonast.Expr{&pythonast.YieldExpr{Value: name("x")}}}
	assert.Equal(t, "f((yield x))", genExpr(t, call))

	stmt := assign(name("v"), &pythonast.YieldExpr{Value: name("x")})
	assert.Equal(t, "v = yield x\n", gen(t, module(stmt)))
}

func TestComprehensions(t *testing.T) {
	base := &pythonast.BaseComprehension{
		Value: name("x"),
		Generators: []*pythonast.Generator{{
			Target:   name("x"),
			Iterable: name("xs"),
			Filters:  []pythonast.Expr{binop(name("x"), pythonop.Mod, num(2))},
		}},
	}

	assert.Equal(t, "[x for x in xs if x % 2]",
		genExpr(t, &pythonast.ListComprehensionExpr{BaseComprehension: base}))
	assert.Equal(t, "{x for x in xs if x % 2}",
		genExpr(t, &pythonast.SetComprehensionExpr{BaseComprehension: base}))

	dict := &pythonast.DictComprehensionExpr{
		Key:   name("k"),
		Value: name("v"),
		Generators: []*pythonast.Generator{{
			Target:   &pythonast.TupleExpr{Elts: []pythonast.Expr{name("k"), name("v")}},
			Iterable: name("items"),
		}},
	}
	assert.Equal(t, "{k: v for k, v in items}", genExpr(t, dict))

	async := &pythonast.GeneratorExpr{BaseComprehension: &pythonast.BaseComprehension{
		Value: name("x"),
		Generators: []*pythonast.Generator{{
			Target:   name("x"),
			Iterable: name("xs"),
			Async:    true,
		}},
	}}
	assert.Equal(t, "(x async for x in xs)", genExpr(t, async))
}

func TestGeneratorExpr_CallArgument(t *testing.T) {
	genexp := &pythonast.GeneratorExpr{BaseComprehension: &pythonast.BaseComprehension{
		Value:      name("x"),
		Generators: []*pythonast.Generator{{Target: name("x"), Iterable: name("xs")}},
	}}

	// the sole argument reuses the call's parentheses
	sole := &pythonast.CallExpr{Func: name("sum"), Args: []pythonast.Expr{genexp}}
	assert.Equal(t, "sum(x for x in xs)", genExpr(t, sole))

	// with a second argument the generator needs its own pair
	two := &pythonast.CallExpr{Func: name("sum"), Args: []pythonast.Expr{genexp, num(0)}}
	assert.Equal(t, "sum((x for x in xs), 0)", genExpr(t, two))

	// and at statement level as well
	assert.Equal(t, "(x for x in xs)", genExpr(t, genexp))
}

func TestRepr(t *testing.T) {
	assert.Equal(t, "`x`", genExpr(t, &pythonast.ReprExpr{Value: name("x")}))
}

func TestStarredAssignment(t *testing.T) {
	targets := &pythonast.TupleExpr{Elts: []pythonast.Expr{
		name("a"),
		&pythonast.StarredExpr{Value: name("rest")},
	}}
	assert.Equal(t, "a, *rest = xs\n", gen(t, module(assign(targets, name("xs")))))
}
