package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first source order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *LetStmt:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *AssignStmt:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		if n.Then != nil {
			Walk(n.Then, v)
		}
		if n.ElseIfCond != nil {
			Walk(n.ElseIfCond, v)
		}
		if n.ElseIf != nil {
			Walk(n.ElseIf, v)
		}
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		if n.Cond != nil {
			Walk(n.Cond, v)
		}
		if n.Step != nil {
			Walk(n.Step, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *FuncStmt:
		if n.Func != nil {
			Walk(n.Func, v)
		}

	case *SignalStmt:
		if n.Name != nil {
			Walk(n.Name, v)
		}
		if n.Start != nil {
			Walk(n.Start, v)
		}
		if n.Call != nil {
			Walk(n.Call, v)
		}

	case *WaitStmt:
		if n.Target != nil {
			Walk(n.Target, v)
		}

	case *Operation:
		if n.X != nil {
			Walk(n.X, v)
		}
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *FuncExpr:
		for _, ps := range n.Params {
			Walk(ps, v)
		}
		if n.Result != nil {
			Walk(n.Result, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *BlockExpr:
		for _, s := range n.Stmts {
			Walk(s, v)
		}
		if n.Final != nil {
			Walk(n.Final, v)
		}

	// Leaf nodes: Name, BasicLit, BranchStmt, StartStmt, ReturnType
	// No children to visit.
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// WalkProgram traverses every top-level statement of a program.
func WalkProgram(prog *Program, v Visitor) {
	for _, s := range prog.Stmts {
		Walk(s, v)
	}
}
