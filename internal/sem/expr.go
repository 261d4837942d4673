package sem

import (
	"github.com/vela-lang/vela/internal/syntax"
	"github.com/vela-lang/vela/internal/types"
)

// expr analyzes an expression, annotates it and every reachable child,
// and returns its inferred type. A node whose type cannot be determined
// is annotated Unknown, which suppresses cascading diagnostics.
func (a *analyzer) expr(e syntax.Expr) types.Type {
	if e == nil {
		return types.Unknown
	}

	switch e := e.(type) {
	case *syntax.Name:
		return a.ident(e)

	case *syntax.BasicLit:
		t := types.FromLitKind(e.Kind)
		a.annotate(e, t, false)
		return t

	case *syntax.Operation:
		if e.Y == nil {
			return a.unary(e)
		}
		return a.binary(e)

	case *syntax.CallExpr:
		return a.callExpr(e)

	case *syntax.BlockExpr:
		return a.blockExpr(e)

	case *syntax.FuncExpr:
		return a.funcExpr(e)

	case *syntax.ReturnType:
		t := types.FromKeyword(e.Tok().Kind)
		a.annotate(e, t, false)
		return t

	default:
		a.errorf(e.Pos(), "unhandled node %T", e)
		return types.Unknown
	}
}

// ident resolves an identifier against the scope stack.
func (a *analyzer) ident(e *syntax.Name) types.Type {
	sym, ok := a.tab.Resolve(e.Value)
	if !ok {
		a.errorf(e.Pos(), "use of undeclared identifier '%s'", e.Value)
		a.annotate(e, types.Unknown, false)
		return types.Unknown
	}
	a.annotate(e, sym.Type, sym.Mutable)
	return sym.Type
}

// unary infers the type of a prefix operation.
func (a *analyzer) unary(e *syntax.Operation) types.Type {
	opnd := types.Unknown
	if e.X != nil {
		opnd = a.expr(e.X)
	}

	t := resultOfUnary(e.Op(), opnd)
	if t == types.Unknown && opnd != types.Unknown {
		switch e.Op() {
		case syntax.Not:
			a.errorf(e.Pos(), "operator '!' requires a boolean operand, got '%s'", opnd)
		case syntax.Inc, syntax.Dec, syntax.Sub:
			a.errorf(e.Pos(), "operator '%s' requires a numeric operand, got '%s'", e.Tok().Lit, opnd)
		default:
			a.errorf(e.Pos(), "unsupported unary operator '%s'", e.Tok().Lit)
		}
	}

	a.annotate(e, t, false)
	return t
}

// binary infers the type of an infix operation.
func (a *analyzer) binary(e *syntax.Operation) types.Type {
	left := a.expr(e.X)
	right := a.expr(e.Y)

	t := resultOf(e.Op(), left, right)
	if t == types.Unknown && left != types.Unknown && right != types.Unknown {
		a.errorf(e.Pos(), "operator '%s' cannot be applied to '%s' and '%s'",
			e.Tok().Lit, left, right)
	}

	a.annotate(e, t, false)
	return t
}

// callExpr resolves the callee and checks argument count and types
// against the function's declared parameters. The call's type is the
// callee's return type.
func (a *analyzer) callExpr(e *syntax.CallExpr) types.Type {
	var sym types.Symbol
	resolved := false

	switch fun := e.Fun.(type) {
	case *syntax.Name:
		var ok bool
		sym, ok = a.tab.Resolve(fun.Value)
		if !ok {
			a.errorf(fun.Pos(), "use of undeclared identifier '%s'", fun.Value)
			a.annotate(fun, types.Unknown, false)
		} else {
			resolved = true
			a.annotate(fun, sym.Type, sym.Mutable)
			if sym.Kind != types.FuncSym {
				a.errorf(fun.Pos(), "'%s' is not a function", fun.Value)
				resolved = false
			}
		}
	case nil:
		// malformed call from a parse error
	default:
		a.expr(e.Fun)
	}

	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.expr(arg)
	}

	if resolved {
		if len(argTypes) != len(sym.Params) {
			a.errorf(e.Pos(), "mismatched number of arguments: '%s' takes %d, got %d",
				sym.Name, len(sym.Params), len(argTypes))
		} else {
			for i, at := range argTypes {
				want := sym.Params[i]
				if at != types.Unknown && want != types.Unknown && at != want {
					a.errorf(e.Args[i].Pos(), "type mismatch in argument %d: expected '%s', got '%s'",
						i, want, at)
				}
			}
		}
	}

	t := types.Unknown
	if resolved {
		t = sym.Type
	}
	a.annotate(e, t, false)
	return t
}

// blockExpr analyzes a block expression in a fresh scope. Its type is
// the type of the trailing expression, if any.
func (a *analyzer) blockExpr(e *syntax.BlockExpr) types.Type {
	a.tab.Push()

	for _, s := range e.Stmts {
		a.stmt(s)
	}

	t := types.Unknown
	if e.Final != nil {
		t = a.expr(e.Final)
	}

	a.annotate(e, t, false)
	a.tab.Pop()
	return t
}
