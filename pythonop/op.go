// Package pythonop defines the Python operator kinds used by the AST,
// together with their display symbols and precedence ranks.
package pythonop

// Op identifies a Python operator. The zero value is invalid.
type Op int

// Operator kinds. Binary, unary, boolean and comparison operators share
// a single enum because precedence forms one total order across all of them.
const (
	BadOp Op = iota

	// boolean operators
	Or
	And
	Not

	// comparison operators
	Eq
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn

	// binary operators
	BitOr
	BitXor
	BitAnd
	LShift
	RShift
	Add
	Sub
	Mult
	Div
	Mod
	FloorDiv
	MatMult
	Pow

	// unary operators
	Invert
	UAdd
	USub
)

var names = map[Op]string{
	Or:       "Or",
	And:      "And",
	Not:      "Not",
	Eq:       "Eq",
	NotEq:    "NotEq",
	Lt:       "Lt",
	LtE:      "LtE",
	Gt:       "Gt",
	GtE:      "GtE",
	Is:       "Is",
	IsNot:    "IsNot",
	In:       "In",
	NotIn:    "NotIn",
	BitOr:    "BitOr",
	BitXor:   "BitXor",
	BitAnd:   "BitAnd",
	LShift:   "LShift",
	RShift:   "RShift",
	Add:      "Add",
	Sub:      "Sub",
	Mult:     "Mult",
	Div:      "Div",
	Mod:      "Mod",
	FloorDiv: "FloorDiv",
	MatMult:  "MatMult",
	Pow:      "Pow",
	Invert:   "Invert",
	UAdd:     "UAdd",
	USub:     "USub",
}

var symbols = map[Op]string{
	Or:       "or",
	And:      "and",
	Not:      "not",
	Eq:       "==",
	NotEq:    "!=",
	Lt:       "<",
	LtE:      "<=",
	Gt:       ">",
	GtE:      ">=",
	Is:       "is",
	IsNot:    "is not",
	In:       "in",
	NotIn:    "not in",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	LShift:   "<<",
	RShift:   ">>",
	Add:      "+",
	Sub:      "-",
	Mult:     "*",
	Div:      "/",
	Mod:      "%",
	FloorDiv: "//",
	MatMult:  "@",
	Pow:      "**",
	Invert:   "~",
	UAdd:     "+",
	USub:     "-",
}

// String returns the canonical name of the operator, e.g. "Add".
func (op Op) String() string {
	if s, ok := names[op]; ok {
		return s
	}
	return "BadOp"
}

// Symbol returns the source text of the operator, e.g. "+" for Add.
func (op Op) Symbol() string {
	return symbols[op]
}

// IsKeyword reports whether the operator's symbol is spelled with letters
// rather than punctuation, which requires surrounding whitespace.
func (op Op) IsKeyword() bool {
	switch op {
	case Or, And, Not, Is, IsNot, In, NotIn:
		return true
	}
	return false
}

// Lookup maps an operator name back to its Op; the second result is false
// if the name is unknown.
func Lookup(name string) (Op, bool) {
	for op, n := range names {
		if n == name {
			return op, true
		}
	}
	return BadOp, false
}
