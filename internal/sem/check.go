package sem

import (
	"github.com/vela-lang/vela/internal/syntax"
	"github.com/vela-lang/vela/internal/types"
)

// analyzer is the tree walker. It owns the symbol table and the
// annotation map for one Analyze invocation.
type analyzer struct {
	conf *Config
	info *Info
	tab  *types.Table

	// Enclosing function context, for return checking.
	inFunc  bool
	retType types.Type

	errors int
	first  *SemError
}

// annotate records the node's metadata. The depth recorded is the scope
// depth at the moment of analysis.
func (a *analyzer) annotate(n syntax.Node, typ types.Type, mutable bool) {
	if a.info == nil {
		return
	}
	a.info.Annotations[n] = Annotation{
		Type:    typ,
		Mutable: mutable,
		Depth:   a.tab.Depth() - 1,
	}
}

// ----------------------------------------------------------------------------
// Statements

// stmt analyzes a single statement. The walker is total: every variant
// has a handler, and unknown variants produce a diagnostic.
func (a *analyzer) stmt(s syntax.Stmt) {
	if s == nil {
		return
	}

	switch s := s.(type) {
	case *syntax.LetStmt:
		a.letStmt(s)
	case *syntax.AssignStmt:
		a.assignStmt(s)
	case *syntax.ExprStmt:
		a.annotate(s, a.expr(s.X), false)
	case *syntax.BlockStmt:
		a.blockStmt(s)
	case *syntax.IfStmt:
		a.ifStmt(s)
	case *syntax.WhileStmt:
		a.whileStmt(s)
	case *syntax.ForStmt:
		a.forStmt(s)
	case *syntax.ReturnStmt:
		a.returnStmt(s)
	case *syntax.BranchStmt:
		a.annotate(s, types.Unknown, false)
	case *syntax.FuncStmt:
		a.funcStmt(s)
	case *syntax.SignalStmt:
		a.signalStmt(s)
	case *syntax.StartStmt:
		a.annotate(s, types.Unknown, false)
	case *syntax.WaitStmt:
		a.waitStmt(s)
	default:
		a.errorf(s.Pos(), "unhandled node %T", s)
	}
}

// letStmt checks a typed declaration and binds its symbol in the
// innermost scope.
func (a *analyzer) letStmt(s *syntax.LetStmt) {
	name := s.Name.Lit
	declared := types.FromKeyword(s.Tok().Kind)
	isAuto := s.Tok().Kind == syntax.TypeAuto

	varType := declared
	if s.Value == nil && isAuto {
		a.errorf(s.Pos(), "cannot use 'auto' without initialization in variable '%s'", name)
	}

	if s.Value != nil {
		valType := a.expr(s.Value)
		if isAuto {
			varType = valType
		} else if valType != types.Unknown && valType != declared {
			a.errorf(s.Pos(), "type mismatch: variable '%s' declared as '%s' but assigned value of type '%s'",
				name, declared, valType)
		}
	}

	sym := types.Symbol{
		Name:    name,
		Type:    varType,
		Kind:    types.VarSym,
		Mutable: true,
	}
	if _, ok := a.tab.Insert(sym); !ok {
		a.errorf(s.Name.Pos(), "'%s' redeclared in this block", name)
	}

	a.annotate(s, varType, true)
}

// assignStmt checks an assignment against the target's declared type.
func (a *analyzer) assignStmt(s *syntax.AssignStmt) {
	name := s.Tok().Lit
	sym, ok := a.tab.Resolve(name)
	if !ok {
		a.errorf(s.Pos(), "use of undeclared identifier '%s'", name)
	}

	valType := a.expr(s.Value)

	target := types.Unknown
	if ok {
		target = sym.Type
		if valType != types.Unknown && target != types.Unknown && valType != target {
			a.errorf(s.Pos(), "type mismatch: cannot assign '%s' to '%s' of type '%s'",
				valType, name, target)
		}
	}

	a.annotate(s, target, true)
}

// blockStmt analyzes a block statement in a fresh scope.
func (a *analyzer) blockStmt(s *syntax.BlockStmt) {
	a.tab.Push()
	for _, inner := range s.Stmts {
		a.stmt(inner)
	}
	a.annotate(s, types.Unknown, false)
	a.tab.Pop()
}

// ifStmt checks the conditions and analyzes each branch.
func (a *analyzer) ifStmt(s *syntax.IfStmt) {
	a.condition(s.Cond, "if condition must be boolean")

	if s.Then != nil {
		a.blockStmt(s.Then)
	}

	if s.ElseIfCond != nil {
		a.condition(s.ElseIfCond, "if condition must be boolean")
	}
	if s.ElseIf != nil {
		a.blockStmt(s.ElseIf)
	}

	if s.Else != nil {
		a.blockStmt(s.Else)
	}

	a.annotate(s, types.Bool, false)
}

// whileStmt checks the loop condition and analyzes the body.
func (a *analyzer) whileStmt(s *syntax.WhileStmt) {
	condType := a.condition(s.Cond, "while condition must be boolean")
	if s.Body != nil {
		a.blockStmt(s.Body)
	}
	a.annotate(s, condType, false)
}

// forStmt analyzes a for loop. The initializer's scope covers the
// condition, step, and body.
func (a *analyzer) forStmt(s *syntax.ForStmt) {
	a.tab.Push()

	a.stmt(s.Init)
	a.condition(s.Cond, "for loop condition must be boolean")
	if s.Step != nil {
		a.expr(s.Step)
	}
	if s.Body != nil {
		a.blockStmt(s.Body)
	}

	a.annotate(s, types.Unknown, false)
	a.tab.Pop()
}

// condition analyzes a boolean-context expression and diagnoses
// non-boolean types. An Unknown type has already been diagnosed at its
// source and is not re-reported.
func (a *analyzer) condition(cond syntax.Expr, msg string) types.Type {
	if cond == nil {
		return types.Unknown
	}
	t := a.expr(cond)
	if t != types.Bool && t != types.Unknown {
		a.errorf(cond.Pos(), "%s, got '%s'", msg, t)
	}
	return t
}

// returnStmt infers the returned value and checks it against the
// enclosing function's declared return type.
func (a *analyzer) returnStmt(s *syntax.ReturnStmt) {
	var t types.Type
	if s.Result != nil {
		t = a.expr(s.Result)
	}

	if a.inFunc && s.Result != nil {
		switch {
		case a.retType == types.Void:
			a.errorf(s.Pos(), "unexpected return value in void function")
		case t != types.Unknown && a.retType != types.Unknown && t != a.retType:
			a.errorf(s.Pos(), "return type mismatch: function returns '%s', got '%s'",
				a.retType, t)
		}
	}

	a.annotate(s, t, false)
}

// funcStmt analyzes a function declaration.
func (a *analyzer) funcStmt(s *syntax.FuncStmt) {
	t := types.Unknown
	if s.Func != nil {
		t = a.funcExpr(s.Func)
	}
	a.annotate(s, t, false)
}

// funcExpr registers the function's symbol in its declaration scope,
// binds parameters in a fresh inner scope, and analyzes the body.
// The symbol is inserted before the body is analyzed so that recursive
// calls resolve.
func (a *analyzer) funcExpr(fe *syntax.FuncExpr) types.Type {
	retType := types.Unknown
	if fe.Result != nil {
		retType = types.FromKeyword(fe.Result.Tok().Kind)
		a.annotate(fe.Result, retType, false)
	}

	declDepth := a.tab.Depth() - 1
	a.tab.Push()

	// Parameters are statements; analyzing them binds the parameter
	// symbols in the function scope. An assignment-style parameter is a
	// binding, not an assignment: its name takes the default value's
	// type.
	for _, ps := range fe.Params {
		if def, ok := ps.(*syntax.AssignStmt); ok {
			valType := a.expr(def.Value)
			sym := types.Symbol{
				Name:    def.Tok().Lit,
				Type:    valType,
				Kind:    types.VarSym,
				Mutable: true,
			}
			if _, ok := a.tab.Insert(sym); !ok {
				a.errorf(def.Pos(), "'%s' redeclared in this block", sym.Name)
			}
			a.annotate(def, valType, true)
			continue
		}
		a.stmt(ps)
	}

	paramTypes := make([]types.Type, len(fe.Params))
	for i, ps := range fe.Params {
		if sym, ok := a.tab.LookupLocal(paramName(ps)); ok {
			paramTypes[i] = sym.Type
		}
	}

	sym := types.Symbol{
		Name:   fe.Name.Lit,
		Type:   retType,
		Kind:   types.FuncSym,
		Params: paramTypes,
	}
	if _, ok := a.tab.InsertAt(declDepth, sym); !ok {
		a.errorf(fe.Name.Pos(), "'%s' redeclared in this block", fe.Name.Lit)
	}

	savedIn, savedRet := a.inFunc, a.retType
	a.inFunc, a.retType = true, retType
	if fe.Body != nil {
		a.expr(fe.Body)
	}
	a.inFunc, a.retType = savedIn, savedRet

	a.annotate(fe, retType, false)
	a.tab.Pop()
	return retType
}

// paramName returns the name a parameter statement binds.
func paramName(s syntax.Stmt) string {
	switch s := s.(type) {
	case *syntax.LetStmt:
		return s.Name.Lit
	case *syntax.AssignStmt:
		return s.Tok().Lit
	}
	return ""
}

// signalStmt binds the signal handle and analyzes the spawned call.
// The front-end assigns the concurrency primitives no runtime
// semantics.
func (a *analyzer) signalStmt(s *syntax.SignalStmt) {
	if s.Name != nil {
		sym := types.Symbol{Name: s.Name.Value, Kind: types.VarSym}
		if _, ok := a.tab.Insert(sym); !ok {
			a.errorf(s.Name.Pos(), "'%s' redeclared in this block", s.Name.Value)
		}
		a.annotate(s.Name, types.Unknown, false)
	}

	if s.Start != nil {
		a.annotate(s.Start, types.Unknown, false)
	}
	if s.Call != nil {
		a.expr(s.Call)
	}

	a.annotate(s, types.Unknown, false)
}

// waitStmt resolves the waited-on signal handle.
func (a *analyzer) waitStmt(s *syntax.WaitStmt) {
	if s.Target != nil {
		sym, ok := a.tab.Resolve(s.Target.Value)
		if !ok {
			a.errorf(s.Target.Pos(), "use of undeclared identifier '%s'", s.Target.Value)
			a.annotate(s.Target, types.Unknown, false)
		} else {
			a.annotate(s.Target, sym.Type, sym.Mutable)
		}
	}
	a.annotate(s, types.Unknown, false)
}
