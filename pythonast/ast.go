// Package pythonast defines the Python syntax tree consumed by the source
// generator. Nodes form a closed union: every variant lives in this package
// and implements the Node interface. Trees are built programmatically (or
// decoded from a serialized form) rather than parsed, so nodes carry plain
// values instead of source tokens; statements optionally record the line
// they originated from via the embedded LineInfo.
package pythonast

import "github.com/pysrcgen/pysrcgen/pythonop"

// edgeFunc receives one child edge of a node: the field name the child is
// stored under, and the child itself (never nil).
type edgeFunc func(field string, child Node)

// Node is one element of the syntax tree.
type Node interface {
	// iterate calls f for each non-nil child edge in field declaration order.
	iterate(f edgeFunc)
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Subscript is one dimension of a subscript expression: a plain index, a
// slice, or an ellipsis.
type Subscript interface {
	Node
	subscriptNode()
}

// LineInfo records the (optional, 1-based) source line of a statement.
// A zero Line means unknown.
type LineInfo struct {
	Line int
}

// Lineno returns the recorded line, or zero if unknown.
func (l LineInfo) Lineno() int { return l.Line }

// edge invokes f for a child unless the child is nil.
func edge(f edgeFunc, field string, n Node) {
	if !IsNil(n) {
		f(field, n)
	}
}

func exprEdges(f edgeFunc, field string, ns []Expr) {
	for _, n := range ns {
		edge(f, field, n)
	}
}

func stmtEdges(f edgeFunc, field string, ns []Stmt) {
	for _, n := range ns {
		edge(f, field, n)
	}
}

// - numbers

// Number is the value carried by a NumberExpr.
type Number interface {
	numberValue()
}

// Int is an integer literal value.
type Int struct {
	Value int64
}

// Float is a floating point literal value.
type Float struct {
	Value float64
}

// Complex is a complex literal value.
type Complex struct {
	Real float64
	Imag float64
}

func (Int) numberValue()     {}
func (Float) numberValue()   {}
func (Complex) numberValue() {}

// - module

// Module is the root of a tree representing one source file.
type Module struct {
	Body []Stmt
}

func (n *Module) iterate(f edgeFunc) { stmtEdges(f, "Body", n.Body) }

// - statements

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	LineInfo
	Value Expr
}

// AssignStmt is "a = b = value".
type AssignStmt struct {
	LineInfo
	Targets []Expr
	Value   Expr
}

// AugAssignStmt is "target op= value".
type AugAssignStmt struct {
	LineInfo
	Target Expr
	Op     pythonop.Op
	Value  Expr
}

// AnnAssignStmt is "target: annotation = value"; Value may be nil.
// Simple distinguishes "x: int" from "(x): int".
type AnnAssignStmt struct {
	LineInfo
	Target     Expr
	Annotation Expr
	Value      Expr
	Simple     bool
}

// Alias is one "name as asname" clause of an import; AsName may be empty.
type Alias struct {
	Name   string
	AsName string
}

// ImportStmt is "import a, b as c".
type ImportStmt struct {
	LineInfo
	Names []*Alias
}

// ImportFromStmt is "from .module import a, b as c"; Level counts the
// leading relative-import dots and Module may be empty for "from . import x".
type ImportFromStmt struct {
	LineInfo
	Module string
	Level  int
	Names  []*Alias
}

// Parameter is one formal parameter; Annotation and Default may be nil.
type Parameter struct {
	Name       string
	Annotation Expr
	Default    Expr
}

// Arguments is the full parameter list of a function or lambda.
type Arguments struct {
	PosOnly []*Parameter // parameters before a "/" marker
	Args    []*Parameter
	Vararg  *Parameter // "*args"; nil with non-empty KwOnly emits a bare "*"
	KwOnly  []*Parameter
	Kwarg   *Parameter // "**kwargs"
}

// FunctionDefStmt is a (possibly async) function definition.
type FunctionDefStmt struct {
	LineInfo
	Name       string
	Args       *Arguments
	Body       []Stmt
	Decorators []Expr
	Returns    Expr
	Async      bool
}

// ClassDefStmt is a class definition; Keywords holds keyword bases such as
// "metaclass=Meta" and "**kw".
type ClassDefStmt struct {
	LineInfo
	Name       string
	Bases      []Expr
	Keywords   []*Argument
	Body       []Stmt
	Decorators []Expr
}

// IfStmt is "if test: body" with an optional else; an Orelse holding a
// single IfStmt renders as an elif chain.
type IfStmt struct {
	LineInfo
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// ForStmt is a (possibly async) for loop with an optional else clause.
type ForStmt struct {
	LineInfo
	Target   Expr
	Iterable Expr
	Body     []Stmt
	Orelse   []Stmt
	Async    bool
}

// WhileStmt is a while loop with an optional else clause.
type WhileStmt struct {
	LineInfo
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// WithItem is one "context as target" clause; Target may be nil.
type WithItem struct {
	Context Expr
	Target  Expr
}

// WithStmt is a (possibly async) with statement.
type WithStmt struct {
	LineInfo
	Items []*WithItem
	Body  []Stmt
	Async bool
}

// ExceptClause is one "except type as name" handler.
type ExceptClause struct {
	LineInfo
	Type Expr   // nil for a bare except
	As   string // empty when nothing is bound
	Body []Stmt
}

// TryStmt is try/except/else/finally.
type TryStmt struct {
	LineInfo
	Body     []Stmt
	Handlers []*ExceptClause
	Orelse   []Stmt
	Finally  []Stmt
}

// RaiseStmt is "raise exc from cause"; both fields may be nil.
type RaiseStmt struct {
	LineInfo
	Exc   Expr
	Cause Expr
}

// DeleteStmt is "del a, b".
type DeleteStmt struct {
	LineInfo
	Targets []Expr
}

// AssertStmt is "assert test, message"; Message may be nil.
type AssertStmt struct {
	LineInfo
	Test    Expr
	Message Expr
}

// GlobalStmt is "global a, b".
type GlobalStmt struct {
	LineInfo
	Names []string
}

// NonLocalStmt is "nonlocal a, b".
type NonLocalStmt struct {
	LineInfo
	Names []string
}

// ReturnStmt is "return value"; Value may be nil.
type ReturnStmt struct {
	LineInfo
	Value Expr
}

// PassStmt is "pass".
type PassStmt struct {
	LineInfo
}

// BreakStmt is "break".
type BreakStmt struct {
	LineInfo
}

// ContinueStmt is "continue".
type ContinueStmt struct {
	LineInfo
}

// PrintStmt is the Python 2 print statement, kept for legacy trees.
// Dest is the ">> stream" destination and NewLine is false when the
// statement ends with a trailing comma.
type PrintStmt struct {
	LineInfo
	Dest    Expr
	Values  []Expr
	NewLine bool
}

func (n *ExprStmt) iterate(f edgeFunc) { edge(f, "Value", n.Value) }

func (n *AssignStmt) iterate(f edgeFunc) {
	exprEdges(f, "Targets", n.Targets)
	edge(f, "Value", n.Value)
}

func (n *AugAssignStmt) iterate(f edgeFunc) {
	edge(f, "Target", n.Target)
	edge(f, "Value", n.Value)
}

func (n *AnnAssignStmt) iterate(f edgeFunc) {
	edge(f, "Target", n.Target)
	edge(f, "Annotation", n.Annotation)
	edge(f, "Value", n.Value)
}

func (n *Alias) iterate(f edgeFunc) {}

func (n *ImportStmt) iterate(f edgeFunc) {
	for _, a := range n.Names {
		edge(f, "Names", a)
	}
}

func (n *ImportFromStmt) iterate(f edgeFunc) {
	for _, a := range n.Names {
		edge(f, "Names", a)
	}
}

func (n *Parameter) iterate(f edgeFunc) {
	edge(f, "Annotation", n.Annotation)
	edge(f, "Default", n.Default)
}

func (n *Arguments) iterate(f edgeFunc) {
	for _, p := range n.PosOnly {
		edge(f, "PosOnly", p)
	}
	for _, p := range n.Args {
		edge(f, "Args", p)
	}
	edge(f, "Vararg", n.Vararg)
	for _, p := range n.KwOnly {
		edge(f, "KwOnly", p)
	}
	edge(f, "Kwarg", n.Kwarg)
}

func (n *FunctionDefStmt) iterate(f edgeFunc) {
	exprEdges(f, "Decorators", n.Decorators)
	edge(f, "Args", n.Args)
	edge(f, "Returns", n.Returns)
	stmtEdges(f, "Body", n.Body)
}

func (n *ClassDefStmt) iterate(f edgeFunc) {
	exprEdges(f, "Decorators", n.Decorators)
	exprEdges(f, "Bases", n.Bases)
	for _, kw := range n.Keywords {
		edge(f, "Keywords", kw)
	}
	stmtEdges(f, "Body", n.Body)
}

func (n *IfStmt) iterate(f edgeFunc) {
	edge(f, "Test", n.Test)
	stmtEdges(f, "Body", n.Body)
	stmtEdges(f, "Orelse", n.Orelse)
}

func (n *ForStmt) iterate(f edgeFunc) {
	edge(f, "Target", n.Target)
	edge(f, "Iterable", n.Iterable)
	stmtEdges(f, "Body", n.Body)
	stmtEdges(f, "Orelse", n.Orelse)
}

func (n *WhileStmt) iterate(f edgeFunc) {
	edge(f, "Test", n.Test)
	stmtEdges(f, "Body", n.Body)
	stmtEdges(f, "Orelse", n.Orelse)
}

func (n *WithItem) iterate(f edgeFunc) {
	edge(f, "Context", n.Context)
	edge(f, "Target", n.Target)
}

func (n *WithStmt) iterate(f edgeFunc) {
	for _, item := range n.Items {
		edge(f, "Items", item)
	}
	stmtEdges(f, "Body", n.Body)
}

func (n *ExceptClause) iterate(f edgeFunc) {
	edge(f, "Type", n.Type)
	stmtEdges(f, "Body", n.Body)
}

func (n *TryStmt) iterate(f edgeFunc) {
	stmtEdges(f, "Body", n.Body)
	for _, h := range n.Handlers {
		edge(f, "Handlers", h)
	}
	stmtEdges(f, "Orelse", n.Orelse)
	stmtEdges(f, "Finally", n.Finally)
}

func (n *RaiseStmt) iterate(f edgeFunc) {
	edge(f, "Exc", n.Exc)
	edge(f, "Cause", n.Cause)
}

func (n *DeleteStmt) iterate(f edgeFunc) { exprEdges(f, "Targets", n.Targets) }

func (n *AssertStmt) iterate(f edgeFunc) {
	edge(f, "Test", n.Test)
	edge(f, "Message", n.Message)
}

func (n *GlobalStmt) iterate(f edgeFunc)   {}
func (n *NonLocalStmt) iterate(f edgeFunc) {}

func (n *ReturnStmt) iterate(f edgeFunc) { edge(f, "Value", n.Value) }

func (n *PassStmt) iterate(f edgeFunc)     {}
func (n *BreakStmt) iterate(f edgeFunc)    {}
func (n *ContinueStmt) iterate(f edgeFunc) {}

func (n *PrintStmt) iterate(f edgeFunc) {
	edge(f, "Dest", n.Dest)
	exprEdges(f, "Values", n.Values)
}

// - expressions

// NameExpr is an identifier, including the constants True, False and None.
type NameExpr struct {
	Name string
}

// AttributeExpr is "value.attribute".
type AttributeExpr struct {
	Value     Expr
	Attribute string
}

// Argument is one keyword argument of a call or class definition; an empty
// Name means "**value" dictionary unpacking.
type Argument struct {
	Name  string
	Value Expr
}

// CallExpr is "func(args, keywords)"; *args appears as a StarredExpr inside
// Args, ** unpacking as an Argument with an empty Name inside Keywords.
type CallExpr struct {
	Func     Expr
	Args     []Expr
	Keywords []*Argument
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value Number
}

// StringExpr is a plain string literal; Prefix optionally carries an
// explicit literal kind such as "u".
type StringExpr struct {
	Value  string
	Prefix string
}

// BytesExpr is a bytes literal.
type BytesExpr struct {
	Value []byte
}

// FormattedValue is one "{expr!conv:spec}" segment of a joined string.
// SourceText, when non-empty, is written verbatim instead of rendering
// Value (the f-string debugging form). Conversion is 's', 'r' or 'a', or
// zero for none.
type FormattedValue struct {
	Value      Expr
	SourceText string
	Conversion rune
	FormatSpec *JoinedStringExpr
}

// JoinedStringExpr is an f-string: alternating StringExpr and
// FormattedValue segments.
type JoinedStringExpr struct {
	Values []Expr
}

// TupleExpr is "a, b" with or without parentheses.
type TupleExpr struct {
	Elts []Expr
}

// ListExpr is "[a, b]".
type ListExpr struct {
	Elts []Expr
}

// SetExpr is "{a, b}".
type SetExpr struct {
	Elts []Expr
}

// KeyValuePair is one "key: value" entry of a dict; a nil Key means
// "**value" unpacking.
type KeyValuePair struct {
	Key   Expr
	Value Expr
}

// DictExpr is "{k: v, **rest}".
type DictExpr struct {
	Items []*KeyValuePair
}

// BinaryExpr is "left op right".
type BinaryExpr struct {
	Left  Expr
	Op    pythonop.Op
	Right Expr
}

// UnaryExpr is "op operand".
type UnaryExpr struct {
	Op      pythonop.Op
	Operand Expr
}

// BoolOpExpr is an "and"/"or" chain over two or more values.
type BoolOpExpr struct {
	Op     pythonop.Op
	Values []Expr
}

// CompareExpr is a comparison chain: "left op0 c0 op1 c1 ...".
type CompareExpr struct {
	Left        Expr
	Ops         []pythonop.Op
	Comparators []Expr
}

// IfExpr is "body if test else orelse".
type IfExpr struct {
	Body   Expr
	Test   Expr
	Orelse Expr
}

// LambdaExpr is "lambda args: body".
type LambdaExpr struct {
	Args *Arguments
	Body Expr
}

// NamedExpr is the assignment expression "target := value"; it is always
// rendered with parentheses.
type NamedExpr struct {
	Target Expr
	Value  Expr
}

// YieldExpr is "yield value"; Value may be nil.
type YieldExpr struct {
	Value Expr
}

// YieldFromExpr is "yield from value".
type YieldFromExpr struct {
	Value Expr
}

// AwaitExpr is "await value".
type AwaitExpr struct {
	Value Expr
}

// StarredExpr is "*value" in call or assignment position.
type StarredExpr struct {
	Value Expr
}

// EllipsisExpr is "...". It may appear both as an expression and as a
// subscript dimension.
type EllipsisExpr struct{}

// ReprExpr is the Python 2 backtick repr `value`, kept for legacy trees.
type ReprExpr struct {
	Value Expr
}

// Generator is one "for target in iterable if filters" clause of a
// comprehension.
type Generator struct {
	Target   Expr
	Iterable Expr
	Filters  []Expr
	Async    bool
}

// BaseComprehension is the value/clauses core shared by list, set and
// generator comprehensions.
type BaseComprehension struct {
	Value      Expr
	Generators []*Generator
}

// ListComprehensionExpr is "[value for ...]".
type ListComprehensionExpr struct {
	*BaseComprehension
}

// SetComprehensionExpr is "{value for ...}".
type SetComprehensionExpr struct {
	*BaseComprehension
}

// GeneratorExpr is "(value for ...)".
type GeneratorExpr struct {
	*BaseComprehension
}

// DictComprehensionExpr is "{key: value for ...}".
type DictComprehensionExpr struct {
	Key        Expr
	Value      Expr
	Generators []*Generator
}

// IndexSubscript is a plain expression used as one subscript dimension.
type IndexSubscript struct {
	Value Expr
}

// SliceSubscript is "lower:upper:step"; any field may be nil.
type SliceSubscript struct {
	Lower Expr
	Upper Expr
	Step  Expr
}

// IndexExpr is "value[subscripts]".
type IndexExpr struct {
	Value      Expr
	Subscripts []Subscript
}

func (n *NameExpr) iterate(f edgeFunc) {}

func (n *AttributeExpr) iterate(f edgeFunc) { edge(f, "Value", n.Value) }

func (n *Argument) iterate(f edgeFunc) { edge(f, "Value", n.Value) }

func (n *CallExpr) iterate(f edgeFunc) {
	edge(f, "Func", n.Func)
	exprEdges(f, "Args", n.Args)
	for _, kw := range n.Keywords {
		edge(f, "Keywords", kw)
	}
}

func (n *NumberExpr) iterate(f edgeFunc) {}
func (n *StringExpr) iterate(f edgeFunc) {}
func (n *BytesExpr) iterate(f edgeFunc)  {}

func (n *FormattedValue) iterate(f edgeFunc) {
	edge(f, "Value", n.Value)
	edge(f, "FormatSpec", n.FormatSpec)
}

func (n *JoinedStringExpr) iterate(f edgeFunc) { exprEdges(f, "Values", n.Values) }

func (n *TupleExpr) iterate(f edgeFunc) { exprEdges(f, "Elts", n.Elts) }
func (n *ListExpr) iterate(f edgeFunc)  { exprEdges(f, "Elts", n.Elts) }
func (n *SetExpr) iterate(f edgeFunc)   { exprEdges(f, "Elts", n.Elts) }

func (n *KeyValuePair) iterate(f edgeFunc) {
	edge(f, "Key", n.Key)
	edge(f, "Value", n.Value)
}

func (n *DictExpr) iterate(f edgeFunc) {
	for _, item := range n.Items {
		edge(f, "Items", item)
	}
}

func (n *BinaryExpr) iterate(f edgeFunc) {
	edge(f, "Left", n.Left)
	edge(f, "Right", n.Right)
}

func (n *UnaryExpr) iterate(f edgeFunc) { edge(f, "Operand", n.Operand) }

func (n *BoolOpExpr) iterate(f edgeFunc) { exprEdges(f, "Values", n.Values) }

func (n *CompareExpr) iterate(f edgeFunc) {
	edge(f, "Left", n.Left)
	exprEdges(f, "Comparators", n.Comparators)
}

func (n *IfExpr) iterate(f edgeFunc) {
	edge(f, "Body", n.Body)
	edge(f, "Test", n.Test)
	edge(f, "Orelse", n.Orelse)
}

func (n *LambdaExpr) iterate(f edgeFunc) {
	edge(f, "Args", n.Args)
	edge(f, "Body", n.Body)
}

func (n *NamedExpr) iterate(f edgeFunc) {
	edge(f, "Target", n.Target)
	edge(f, "Value", n.Value)
}

func (n *YieldExpr) iterate(f edgeFunc)     { edge(f, "Value", n.Value) }
func (n *YieldFromExpr) iterate(f edgeFunc) { edge(f, "Value", n.Value) }
func (n *AwaitExpr) iterate(f edgeFunc)     { edge(f, "Value", n.Value) }
func (n *StarredExpr) iterate(f edgeFunc)   { edge(f, "Value", n.Value) }

func (n *EllipsisExpr) iterate(f edgeFunc) {}

func (n *ReprExpr) iterate(f edgeFunc) { edge(f, "Value", n.Value) }

func (n *Generator) iterate(f edgeFunc) {
	edge(f, "Target", n.Target)
	edge(f, "Iterable", n.Iterable)
	exprEdges(f, "Filters", n.Filters)
}

func (b *BaseComprehension) iterateBase(f edgeFunc) {
	edge(f, "Value", b.Value)
	for _, gen := range b.Generators {
		edge(f, "Generators", gen)
	}
}

func (n *ListComprehensionExpr) iterate(f edgeFunc) { n.iterateBase(f) }
func (n *SetComprehensionExpr) iterate(f edgeFunc)  { n.iterateBase(f) }
func (n *GeneratorExpr) iterate(f edgeFunc)         { n.iterateBase(f) }

func (n *DictComprehensionExpr) iterate(f edgeFunc) {
	edge(f, "Key", n.Key)
	edge(f, "Value", n.Value)
	for _, gen := range n.Generators {
		edge(f, "Generators", gen)
	}
}

func (n *IndexSubscript) iterate(f edgeFunc) { edge(f, "Value", n.Value) }

func (n *SliceSubscript) iterate(f edgeFunc) {
	edge(f, "Lower", n.Lower)
	edge(f, "Upper", n.Upper)
	edge(f, "Step", n.Step)
}

func (n *IndexExpr) iterate(f edgeFunc) {
	edge(f, "Value", n.Value)
	for _, sub := range n.Subscripts {
		edge(f, "Subscripts", sub)
	}
}

// - union markers

func (n *ExprStmt) stmtNode()        {}
func (n *AssignStmt) stmtNode()      {}
func (n *AugAssignStmt) stmtNode()   {}
func (n *AnnAssignStmt) stmtNode()   {}
func (n *ImportStmt) stmtNode()      {}
func (n *ImportFromStmt) stmtNode()  {}
func (n *FunctionDefStmt) stmtNode() {}
func (n *ClassDefStmt) stmtNode()    {}
func (n *IfStmt) stmtNode()          {}
func (n *ForStmt) stmtNode()         {}
func (n *WhileStmt) stmtNode()       {}
func (n *WithStmt) stmtNode()        {}
func (n *TryStmt) stmtNode()         {}
func (n *RaiseStmt) stmtNode()       {}
func (n *DeleteStmt) stmtNode()      {}
func (n *AssertStmt) stmtNode()      {}
func (n *GlobalStmt) stmtNode()      {}
func (n *NonLocalStmt) stmtNode()    {}
func (n *ReturnStmt) stmtNode()      {}
func (n *PassStmt) stmtNode()        {}
func (n *BreakStmt) stmtNode()       {}
func (n *ContinueStmt) stmtNode()    {}
func (n *PrintStmt) stmtNode()       {}

func (n *NameExpr) exprNode()              {}
func (n *AttributeExpr) exprNode()         {}
func (n *CallExpr) exprNode()              {}
func (n *NumberExpr) exprNode()            {}
func (n *StringExpr) exprNode()            {}
func (n *BytesExpr) exprNode()             {}
func (n *FormattedValue) exprNode()        {}
func (n *JoinedStringExpr) exprNode()      {}
func (n *TupleExpr) exprNode()             {}
func (n *ListExpr) exprNode()              {}
func (n *SetExpr) exprNode()               {}
func (n *DictExpr) exprNode()              {}
func (n *BinaryExpr) exprNode()            {}
func (n *UnaryExpr) exprNode()             {}
func (n *BoolOpExpr) exprNode()            {}
func (n *CompareExpr) exprNode()           {}
func (n *IfExpr) exprNode()                {}
func (n *LambdaExpr) exprNode()            {}
func (n *NamedExpr) exprNode()             {}
func (n *YieldExpr) exprNode()             {}
func (n *YieldFromExpr) exprNode()         {}
func (n *AwaitExpr) exprNode()             {}
func (n *StarredExpr) exprNode()           {}
func (n *EllipsisExpr) exprNode()          {}
func (n *ReprExpr) exprNode()              {}
func (n *ListComprehensionExpr) exprNode() {}
func (n *SetComprehensionExpr) exprNode()  {}
func (n *GeneratorExpr) exprNode()         {}
func (n *DictComprehensionExpr) exprNode() {}
func (n *IndexExpr) exprNode()             {}

func (n *IndexSubscript) subscriptNode() {}
func (n *SliceSubscript) subscriptNode() {}
func (n *EllipsisExpr) subscriptNode()   {}
