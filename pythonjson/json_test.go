package pythonjson

import (
	"math"
	"testing"

	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(s string) *pythonast.NameExpr {
	return &pythonast.NameExpr{Name: s}
}

func roundTrip(t *testing.T, n pythonast.Node) pythonast.Node {
	data, err := Encode(n)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	return decoded
}

func TestRoundTrip_Expression(t *testing.T) {
	tree := &pythonast.BinaryExpr{
		Left: &pythonast.NumberExpr{Value: pythonast.Int{Value: 2}},
		Op:   pythonop.Pow,
		Right: &pythonast.UnaryExpr{
			Op:      pythonop.USub,
			Operand: &pythonast.NumberExpr{Value: pythonast.Float{Value: 3.5}},
		},
	}
	assert.Equal(t, tree, roundTrip(t, tree))
}

func TestRoundTrip_Module(t *testing.T) {
	tree := &pythonast.Module{Body: []pythonast.Stmt{
		&pythonast.ImportFromStmt{
			Module: "os.path",
			Names:  []*pythonast.Alias{{Name: "join", AsName: "pjoin"}},
		},
		&pythonast.FunctionDefStmt{
			LineInfo: pythonast.LineInfo{Line: 3},
			Name:     "f",
			Args: &pythonast.Arguments{
				Args: []*pythonast.Parameter{
					{Name: "a"},
					{Name: "b", Default: &pythonast.NumberExpr{Value: pythonast.Int{Value: 1}}},
				},
			},
			Body: []pythonast.Stmt{
				&pythonast.ReturnStmt{Value: &pythonast.CompareExpr{
					Left:        name("a"),
					Ops:         []pythonop.Op{pythonop.Lt, pythonop.LtE},
					Comparators: []pythonast.Expr{name("b"), name("c")},
				}},
			},
		},
		&pythonast.ExprStmt{Value: &pythonast.DictExpr{Items: []*pythonast.KeyValuePair{
			{Key: &pythonast.StringExpr{Value: "k"}, Value: name("v")},
			{Value: name("rest")},
		}}},
	}}
	assert.Equal(t, tree, roundTrip(t, tree))
}

func TestRoundTrip_Comprehension(t *testing.T) {
	tree := &pythonast.GeneratorExpr{
		BaseComprehension: &pythonast.BaseComprehension{
			Value: name("x"),
			Generators: []*pythonast.Generator{{
				Target:   name("x"),
				Iterable: name("xs"),
				Filters:  []pythonast.Expr{name("p")},
				Async:    true,
			}},
		},
	}
	assert.Equal(t, tree, roundTrip(t, tree))
}

func TestRoundTrip_Subscript(t *testing.T) {
	tree := &pythonast.IndexExpr{
		Value: name("a"),
		Subscripts: []pythonast.Subscript{
			&pythonast.SliceSubscript{Lower: name("i"), Step: name("k")},
			&pythonast.IndexSubscript{Value: name("j")},
			&pythonast.EllipsisExpr{},
		},
	}
	assert.Equal(t, tree, roundTrip(t, tree))
}

func TestRoundTrip_NonFiniteFloats(t *testing.T) {
	inf := &pythonast.NumberExpr{Value: pythonast.Float{Value: math.Inf(1)}}
	assert.Equal(t, inf, roundTrip(t, inf))

	ninf := &pythonast.NumberExpr{Value: pythonast.Float{Value: math.Inf(-1)}}
	assert.Equal(t, ninf, roundTrip(t, ninf))

	nan := &pythonast.NumberExpr{Value: pythonast.Float{Value: math.NaN()}}
	decoded := roundTrip(t, nan).(*pythonast.NumberExpr)
	assert.True(t, math.IsNaN(decoded.Value.(pythonast.Float).Value))

	cplx := &pythonast.NumberExpr{Value: pythonast.Complex{Real: math.Inf(1), Imag: math.Inf(-1)}}
	assert.Equal(t, cplx, roundTrip(t, cplx))
}

func TestDecode_BadFloatTag(t *testing.T) {
	data := []byte(`{"kind": "NumberExpr", "Value": {"kind": "Float", "Value": "huge"}}`)
	_, err := Decode(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huge")
}

func TestRoundTrip_Bytes(t *testing.T) {
	tree := &pythonast.BytesExpr{Value: []byte{0x00, 0x61, 0xff}}
	assert.Equal(t, tree, roundTrip(t, tree))
}

func TestRoundTrip_JoinedString(t *testing.T) {
	tree := &pythonast.JoinedStringExpr{Values: []pythonast.Expr{
		&pythonast.StringExpr{Value: "a"},
		&pythonast.FormattedValue{
			Value:      name("x"),
			Conversion: 'r',
			FormatSpec: &pythonast.JoinedStringExpr{Values: []pythonast.Expr{
				&pythonast.StringExpr{Value: ">4"},
			}},
		},
	}}
	assert.Equal(t, tree, roundTrip(t, tree))
}

func TestEncode_Deterministic(t *testing.T) {
	tree := &pythonast.AssignStmt{Targets: []pythonast.Expr{name("x")}, Value: name("y")}
	a, err := Encode(tree)
	require.NoError(t, err)
	b, err := Encode(tree)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncode_OperatorNames(t *testing.T) {
	data, err := Encode(&pythonast.BinaryExpr{Left: name("a"), Op: pythonop.FloorDiv, Right: name("b")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Op":"FloorDiv"`)
}

func TestEncode_NilNode(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)

	var typed *pythonast.Module
	_, err = Encode(typed)
	assert.Error(t, err)
}

func TestEncode_BadOp(t *testing.T) {
	_, err := Encode(&pythonast.BinaryExpr{Left: name("a"), Right: name("b")})
	assert.Error(t, err)
}

func TestDecode_UnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind": "Mystery"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mystery")
}

func TestDecode_KindMismatch(t *testing.T) {
	// an Alias is a node but not an expression
	data := []byte(`{"kind": "ReturnStmt", "Value": {"kind": "Alias", "Name": "x"}}`)
	_, err := Decode(data)
	assert.Error(t, err)
}

func TestDecode_Null(t *testing.T) {
	_, err := Decode([]byte(`null`))
	assert.Error(t, err)
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	data := []byte(`{"kind": "NameExpr", "Name": "x", "Color": "purple"}`)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, name("x"), decoded)
}

func TestDecode_OptionalFieldsStayNil(t *testing.T) {
	data := []byte(`{"kind": "ReturnStmt", "Value": null}`)
	decoded, err := Decode(data)
	require.NoError(t, err)
	ret := decoded.(*pythonast.ReturnStmt)
	assert.True(t, pythonast.IsNil(ret.Value))
	assert.Nil(t, ret.Value)
}
