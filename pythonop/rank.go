package pythonop

// Rank is a total-order precedence strength. Higher ranks bind more tightly
// and need fewer parentheses. Values advance in steps of two so that callers
// can express "strictly tighter than X" as X+1 without colliding with the
// rank of another construct; constructs that never need to be distinguished
// share a value.
type Rank int

// Ranks for the constructs that participate in parenthesization decisions.
// Operator ranks live in the opPrecedence table below; the named constants
// here cover statement and grouping contexts.
const (
	// GeneratorExp is the rank of a bare generator expression, the loosest
	// binding construct of all.
	GeneratorExp Rank = 1

	// Expr sits below Assign so that the string formatter can tell a
	// literal standing alone as a statement from one on the right-hand
	// side of an assignment.
	Expr Rank = 3

	Assign    Rank = 5
	AnnAssign Rank = 5
	AugAssign Rank = 5

	Yield     Rank = 7
	YieldFrom Rank = 7

	If    Rank = 9
	For   Rank = 9
	While Rank = 9

	Return Rank = 11

	Slice     Rank = 13
	Subscript Rank = 13

	Index    Rank = 15
	ExtSlice Rank = 15

	ComprehensionTarget Rank = 17
	Tuple               Rank = 17
	FormattedValue      Rank = 17

	// Comma is the rank required of elements in comma-separated positions:
	// low enough that only assignment expressions and bare generator
	// expressions keep their parentheses there.
	Comma Rank = 19

	NamedExpr Rank = 21
	Assert    Rank = 21
	Raise     Rank = 21

	// CallOneArg is the rank required of the sole argument of a call. It
	// sits just above Comma so that a lone generator expression can detect
	// the situation and reuse the call's own parentheses.
	CallOneArg Rank = 23

	Lambda Rank = 25
	IfExp  Rank = 25

	Comprehension Rank = 27

	// PowRHS is the rank required of the right-hand side of **. It sits
	// below the unary operators so that 2 ** -3 needs no parentheses,
	// while ** itself associates to the right.
	PowRHS Rank = 49

	Await Rank = 55

	Num Rank = 57

	Str Rank = 59

	// Highest is the default requirement for a node whose parent propagated
	// nothing: any delimiter-opening node in such a position keeps its
	// delimiters.
	Highest Rank = 61
)

var opPrecedence = map[Op]Rank{
	Or:  29,
	And: 31,
	Not: 33,

	Eq:    35,
	Gt:    35,
	GtE:   35,
	In:    35,
	Is:    35,
	NotEq: 35,
	Lt:    35,
	LtE:   35,
	NotIn: 35,
	IsNot: 35,

	BitOr:  37,
	BitXor: 39,
	BitAnd: 41,

	LShift: 43,
	RShift: 43,

	Add: 45,
	Sub: 45,

	Mult:     47,
	Div:      47,
	Mod:      47,
	FloorDiv: 47,
	MatMult:  47,

	Invert: 51,
	UAdd:   51,
	USub:   51,

	Pow: 53,
}

// Precedence returns the rank of the operator.
func (op Op) Precedence() Rank {
	return opPrecedence[op]
}
