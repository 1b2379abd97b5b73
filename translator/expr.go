package translator

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evalExpr evaluates a compile-time $(...) expression against the labels
// already bound by the allocation pass, the way the teacher's assembler
// evaluates its own $(...) syntax against accumulated equates.
func evalExpr(expr string, labels map[string]int) (int32, error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	predeclared := starlark.StringDict{}
	for name, addr := range labels {
		predeclared[name] = starlark.MakeInt(addr)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, predeclared)
	if err != nil {
		return 0, &ExprError{Expr: expr, Err: err}
	}

	rc, ok := dict["rc"]
	if !ok {
		return 0, &ExprError{Expr: expr}
	}
	i, ok := rc.(starlark.Int)
	if !ok {
		return 0, &ExprError{Expr: expr}
	}
	v, ok := i.Int64()
	if !ok {
		return 0, &ExprError{Expr: expr}
	}
	return int32(v), nil
}

// ExprError reports a malformed or unevaluable $(...) expression.
type ExprError struct {
	Expr string
	Err  error
}

func (e *ExprError) Error() string {
	return f("$(%v) is not a valid expression: %v", e.Expr, e.Err)
}

func (e *ExprError) Unwrap() error {
	return e.Err
}
