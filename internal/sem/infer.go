package sem

import (
	"github.com/vela-lang/vela/internal/syntax"
	"github.com/vela-lang/vela/internal/types"
)

// numericPair reports whether l and r are an int/float pair in either
// order.
func numericPair(l, r types.Type) bool {
	return l == types.Int && r == types.Float || l == types.Float && r == types.Int
}

// resultOf returns the type of a binary operation.
//
//	&& ||            bool when both operands are bool
//	comparisons      bool when operand types match or form a numeric pair
//	+ - * / %        operand type when both match; float for a numeric
//	                 pair; string + string concatenates
//
// Anything else is Unknown.
func resultOf(op syntax.TokenKind, l, r types.Type) types.Type {
	switch op {
	case syntax.AndAnd, syntax.OrOr:
		if l == types.Bool && r == types.Bool {
			return types.Bool
		}
		return types.Unknown

	case syntax.Lss, syntax.Leq, syntax.Gtr, syntax.Geq, syntax.Eql, syntax.Neq:
		if l == r || numericPair(l, r) {
			return types.Bool
		}
		return types.Unknown

	case syntax.Add:
		if l == types.String && r == types.String {
			return types.String
		}
	}

	switch op {
	case syntax.Add, syntax.Sub, syntax.Mul, syntax.Div, syntax.Rem:
		if l == r {
			if l == types.String {
				return types.Unknown // only + concatenates
			}
			return l
		}
		if numericPair(l, r) {
			return types.Float
		}
	}

	return types.Unknown
}

// resultOfUnary returns the type of a prefix operation.
//
//	!        bool when the operand is bool
//	- ++ --  the operand type when numeric
func resultOfUnary(op syntax.TokenKind, t types.Type) types.Type {
	switch op {
	case syntax.Not:
		if t == types.Bool {
			return types.Bool
		}
	case syntax.Sub, syntax.Inc, syntax.Dec:
		if t.IsNumeric() {
			return t
		}
	}
	return types.Unknown
}
