package reload

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// divFunc replaces the '/' operator in compiled expressions.
const divFunc = "__div"

// exprOptions configure every expression compiled by the interpreter.
//
//nolint:gochecknoglobals
var exprOptions = []expr.Option{
	expr.Function(divFunc, divide),
	expr.Patch(divPatcher{}),
}

// divPatcher rewrites a / b into a call of [divide], since expr-lang always
// divides in floating point and Go truncates integer quotients.
type divPatcher struct{}

// Visit implements ast.Visitor.
func (divPatcher) Visit(node *ast.Node) {
	bin, ok := (*node).(*ast.BinaryNode)
	if !ok || bin.Operator != "/" {
		return
	}

	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: divFunc},
		Arguments: []ast.Node{bin.Left, bin.Right},
	})
}

var errDivideByZero = errors.New("integer divide by zero")

// divide is a / b with Go semantics: integer operands yield a truncated
// integer quotient, anything else a float64.
func divide(params ...any) (any, error) {
	a, b := reflect.ValueOf(params[0]), reflect.ValueOf(params[1])

	if isInt(a) && isInt(b) {
		return intDivide(a, b)
	}

	x, okx := toFloat(a)
	y, oky := toFloat(b)

	if !okx || !oky {
		return nil, fmt.Errorf("invalid operation: %T / %T", params[0], params[1])
	}

	return x / y, nil
}

func intDivide(a, b reflect.Value) (any, error) {
	// An untyped literal is an int in expr-lang; the other operand's type
	// wins, as it would for a Go constant.
	typ := a.Type()
	if a.Kind() == reflect.Int {
		typ = b.Type()
	}

	var q reflect.Value

	switch {
	case isUnsigned(a) && isUnsigned(b):
		if b.Uint() == 0 {
			return nil, errDivideByZero
		}

		q = reflect.ValueOf(a.Uint() / b.Uint())

	default:
		x, y := signed(a), signed(b)
		if y == 0 {
			return nil, errDivideByZero
		}

		q = reflect.ValueOf(x / y)
	}

	return q.Convert(typ).Interface(), nil
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}

	return isUnsigned(v)
}

func isUnsigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}

	return false
}

func signed(v reflect.Value) int64 {
	if isUnsigned(v) {
		return int64(v.Uint()) //nolint:gosec
	}

	return v.Int()
}

func toFloat(v reflect.Value) (float64, bool) {
	switch {
	case !v.IsValid():
		return 0, false

	case isUnsigned(v):
		return float64(v.Uint()), true

	case isInt(v):
		return float64(v.Int()), true

	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		return v.Float(), true
	}

	return 0, false
}
