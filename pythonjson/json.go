// Package pythonjson serializes pythonast trees as JSON. Every node is an
// object carrying a "kind" discriminator naming its variant; operators are
// encoded by name and numeric values as tagged unions, so the encoding is
// stable across versions and languages.
package pythonjson

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"reflect"

	"github.com/pysrcgen/pysrcgen/internal/errors"
	"github.com/pysrcgen/pysrcgen/pythonast"
	"github.com/pysrcgen/pysrcgen/pythonop"
)

var (
	nodeType      = reflect.TypeOf((*pythonast.Node)(nil)).Elem()
	opType        = reflect.TypeOf(pythonop.BadOp)
	numberType    = reflect.TypeOf((*pythonast.Number)(nil)).Elem()
	byteSliceType = reflect.TypeOf([]byte(nil))
)

// nodeTypes maps kind discriminators to their struct types. Node kinds are
// pointer structs; number kinds are value structs.
var nodeTypes = map[string]reflect.Type{}

func register(values ...interface{}) {
	for _, value := range values {
		t := reflect.TypeOf(value)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		nodeTypes[t.Name()] = t
	}
}

func init() {
	register(
		&pythonast.Module{},

		&pythonast.ExprStmt{}, &pythonast.AssignStmt{}, &pythonast.AugAssignStmt{},
		&pythonast.AnnAssignStmt{}, &pythonast.ImportStmt{}, &pythonast.ImportFromStmt{},
		&pythonast.FunctionDefStmt{}, &pythonast.ClassDefStmt{}, &pythonast.IfStmt{},
		&pythonast.ForStmt{}, &pythonast.WhileStmt{}, &pythonast.WithStmt{},
		&pythonast.TryStmt{}, &pythonast.RaiseStmt{}, &pythonast.DeleteStmt{},
		&pythonast.AssertStmt{}, &pythonast.GlobalStmt{}, &pythonast.NonLocalStmt{},
		&pythonast.ReturnStmt{}, &pythonast.PassStmt{}, &pythonast.BreakStmt{},
		&pythonast.ContinueStmt{}, &pythonast.PrintStmt{},

		&pythonast.NameExpr{}, &pythonast.AttributeExpr{}, &pythonast.CallExpr{},
		&pythonast.NumberExpr{}, &pythonast.StringExpr{}, &pythonast.BytesExpr{},
		&pythonast.JoinedStringExpr{}, &pythonast.FormattedValue{}, &pythonast.TupleExpr{},
		&pythonast.ListExpr{}, &pythonast.SetExpr{}, &pythonast.DictExpr{},
		&pythonast.BinaryExpr{}, &pythonast.UnaryExpr{}, &pythonast.BoolOpExpr{},
		&pythonast.CompareExpr{}, &pythonast.IfExpr{}, &pythonast.LambdaExpr{},
		&pythonast.NamedExpr{}, &pythonast.YieldExpr{}, &pythonast.YieldFromExpr{},
		&pythonast.AwaitExpr{}, &pythonast.StarredExpr{}, &pythonast.EllipsisExpr{},
		&pythonast.ReprExpr{}, &pythonast.ListComprehensionExpr{},
		&pythonast.SetComprehensionExpr{}, &pythonast.GeneratorExpr{},
		&pythonast.DictComprehensionExpr{}, &pythonast.IndexExpr{},
		&pythonast.IndexSubscript{}, &pythonast.SliceSubscript{},

		&pythonast.Alias{}, &pythonast.Parameter{}, &pythonast.Arguments{},
		&pythonast.Argument{}, &pythonast.KeyValuePair{}, &pythonast.WithItem{},
		&pythonast.ExceptClause{}, &pythonast.Generator{},

		pythonast.Int{}, pythonast.Float{}, pythonast.Complex{},
	)
}

// Encode serializes the tree rooted at n. Map keys are emitted in sorted
// order, so equal trees encode to equal bytes.
func Encode(n pythonast.Node) ([]byte, error) {
	if pythonast.IsNil(n) {
		return nil, errors.New("cannot encode a nil node")
	}
	value, err := encodeValue(reflect.ValueOf(n))
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func encodeValue(v reflect.Value) (interface{}, error) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return encodeValue(v.Elem())

	case reflect.Ptr:
		if v.IsNil() {
			return nil, nil
		}
		return encodeStruct(v.Elem())

	case reflect.Struct:
		return encodeStruct(v)

	case reflect.Slice:
		if v.Type() == byteSliceType {
			return base64.StdEncoding.EncodeToString(v.Bytes()), nil
		}
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			enc, err := encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil

	case reflect.String:
		return v.String(), nil

	case reflect.Bool:
		return v.Bool(), nil

	case reflect.Float64:
		// JSON has no Inf/NaN tokens; tag them as strings
		f := v.Float()
		switch {
		case math.IsInf(f, 1):
			return "inf", nil
		case math.IsInf(f, -1):
			return "-inf", nil
		case math.IsNaN(f):
			return "nan", nil
		}
		return f, nil

	case reflect.Int, reflect.Int32, reflect.Int64:
		if v.Type() == opType {
			op := v.Interface().(pythonop.Op)
			if op == pythonop.BadOp {
				return nil, errors.New("cannot encode BadOp")
			}
			return op.String(), nil
		}
		return v.Int(), nil

	default:
		return nil, errors.Errorf("cannot encode %s", v.Type())
	}
}

func encodeStruct(v reflect.Value) (interface{}, error) {
	out := map[string]interface{}{"kind": v.Type().Name()}
	if err := encodeFields(v, out); err != nil {
		return nil, err
	}
	return out, nil
}

// encodeFields flattens embedded structs into the enclosing object, so a
// statement's line number appears as a plain "Line" key.
func encodeFields(v reflect.Value, out map[string]interface{}) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		if field.Anonymous {
			if value.Kind() == reflect.Ptr {
				if value.IsNil() {
					continue
				}
				value = value.Elem()
			}
			if err := encodeFields(value, out); err != nil {
				return err
			}
			continue
		}
		enc, err := encodeValue(value)
		if err != nil {
			return err
		}
		out[field.Name] = enc
	}
	return nil
}

// Decode deserializes a tree encoded by Encode.
func Decode(data []byte) (pythonast.Node, error) {
	v, err := decodeValue(data, nodeType)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() || v.IsNil() {
		return nil, errors.New("cannot decode a null node")
	}
	return v.Interface().(pythonast.Node), nil
}

func decodeValue(data []byte, t reflect.Type) (reflect.Value, error) {
	var none reflect.Value

	switch {
	case t.Kind() == reflect.Interface && t != numberType:
		if isNull(data) {
			return reflect.Zero(t), nil
		}
		kind, fields, err := taggedObject(data)
		if err != nil {
			return none, err
		}
		st, ok := nodeTypes[kind]
		if !ok {
			return none, errors.Errorf("unknown node kind %q", kind)
		}
		ptr := reflect.New(st)
		if err := decodeFields(fields, ptr.Elem()); err != nil {
			return none, err
		}
		if !ptr.Type().Implements(t) {
			return none, errors.Errorf("node kind %q cannot appear here", kind)
		}
		return ptr, nil

	case t == numberType:
		kind, fields, err := taggedObject(data)
		if err != nil {
			return none, err
		}
		st, ok := nodeTypes[kind]
		if !ok || !st.Implements(numberType) {
			return none, errors.Errorf("unknown numeric kind %q", kind)
		}
		ptr := reflect.New(st)
		if err := decodeFields(fields, ptr.Elem()); err != nil {
			return none, err
		}
		return ptr.Elem(), nil

	case t.Kind() == reflect.Ptr:
		if isNull(data) {
			return reflect.Zero(t), nil
		}
		_, fields, err := taggedObject(data)
		if err != nil {
			return none, err
		}
		ptr := reflect.New(t.Elem())
		if err := decodeFields(fields, ptr.Elem()); err != nil {
			return none, err
		}
		return ptr, nil

	case t == opType:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return none, errors.Wrapf(err, "decoding operator")
		}
		op, ok := pythonop.Lookup(name)
		if !ok {
			return none, errors.Errorf("unknown operator %q", name)
		}
		return reflect.ValueOf(op), nil

	case t == byteSliceType:
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return none, errors.Wrapf(err, "decoding bytes")
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return none, errors.Wrapf(err, "decoding bytes")
		}
		return reflect.ValueOf(raw), nil

	case t.Kind() == reflect.Float64:
		var f float64
		if err := json.Unmarshal(data, &f); err == nil {
			return reflect.ValueOf(f), nil
		}
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return none, errors.Wrapf(err, "decoding float")
		}
		switch tag {
		case "inf":
			return reflect.ValueOf(math.Inf(1)), nil
		case "-inf":
			return reflect.ValueOf(math.Inf(-1)), nil
		case "nan":
			return reflect.ValueOf(math.NaN()), nil
		default:
			return none, errors.Errorf("invalid float %q", tag)
		}

	case t.Kind() == reflect.Slice:
		if isNull(data) {
			return reflect.Zero(t), nil
		}
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return none, errors.Wrapf(err, "decoding list")
		}
		out := reflect.MakeSlice(t, len(raw), len(raw))
		for i, elem := range raw {
			v, err := decodeValue(elem, t.Elem())
			if err != nil {
				return none, err
			}
			if v.IsValid() {
				out.Index(i).Set(v)
			}
		}
		return out, nil

	default:
		out := reflect.New(t)
		if err := json.Unmarshal(data, out.Interface()); err != nil {
			return none, errors.Wrapf(err, "decoding %s", t)
		}
		return out.Elem(), nil
	}
}

func decodeFields(fields map[string]json.RawMessage, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		target := v.Field(i)
		if field.Anonymous {
			if target.Kind() == reflect.Ptr {
				target.Set(reflect.New(field.Type.Elem()))
				target = target.Elem()
			}
			if err := decodeFields(fields, target); err != nil {
				return err
			}
			continue
		}
		raw, ok := fields[field.Name]
		if !ok {
			continue
		}
		decoded, err := decodeValue(raw, field.Type)
		if err != nil {
			return errors.Wrapf(err, "field %s", field.Name)
		}
		if decoded.IsValid() {
			target.Set(decoded)
		}
		delete(fields, field.Name)
	}
	return nil
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}

func taggedObject(data []byte) (string, map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", nil, errors.Wrapf(err, "decoding node")
	}
	var kind string
	if raw, ok := fields["kind"]; ok {
		if err := json.Unmarshal(raw, &kind); err != nil {
			return "", nil, errors.Wrapf(err, "decoding node kind")
		}
		delete(fields, "kind")
	}
	return kind, fields, nil
}
