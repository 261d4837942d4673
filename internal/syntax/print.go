package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes canonical source text for the node to w.
// Parsing the output of a well-formed tree yields a structurally equal
// tree (positions aside).
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	switch n := node.(type) {
	case Stmt:
		p.stmt(n)
	case Expr:
		p.expr(n)
	}
}

// FprintProgram writes canonical source text for a whole program to w.
func FprintProgram(w io.Writer, prog *Program) {
	p := &printer{w: w}
	for _, s := range prog.Stmts {
		p.stmt(s)
	}
}

// String returns the canonical source text for the node.
func String(node Node) string {
	var b strings.Builder
	Fprint(&b, node)
	return b.String()
}

// ProgramString returns the canonical source text for a whole program.
func ProgramString(prog *Program) string {
	var b strings.Builder
	FprintProgram(&b, prog)
	return b.String()
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(format string, args ...interface{}) {
	p.printf("%s", strings.Repeat("    ", p.indent))
	p.printf(format, args...)
	p.printf("\n")
}

// stmt prints a statement on its own line(s).
func (p *printer) stmt(s Stmt) {
	if s == nil {
		return
	}

	switch n := s.(type) {
	case *LetStmt:
		p.line("%s;", p.letText(n))

	case *AssignStmt:
		p.line("%s = %s;", n.Tok().Lit, p.exprText(n.Value))

	case *ExprStmt:
		p.line("%s;", p.exprText(n.X))

	case *BlockStmt:
		p.line("{")
		p.indent++
		for _, inner := range n.Stmts {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")

	case *IfStmt:
		p.line("if (%s) {", p.exprText(n.Cond))
		p.blockBody(n.Then)
		if n.ElseIf != nil {
			p.line("} else if (%s) {", p.exprText(n.ElseIfCond))
			p.blockBody(n.ElseIf)
		}
		if n.Else != nil {
			p.line("} else {")
			p.blockBody(n.Else)
		}
		p.line("}")

	case *WhileStmt:
		p.line("while (%s) {", p.exprText(n.Cond))
		p.blockBody(n.Body)
		p.line("}")

	case *ForStmt:
		init := ""
		if let, ok := n.Init.(*LetStmt); ok {
			init = p.letText(let)
		}
		p.line("for (%s; %s; %s) {", init, p.exprText(n.Cond), p.exprText(n.Step))
		p.blockBody(n.Body)
		p.line("}")

	case *ReturnStmt:
		if n.Result != nil {
			p.line("return %s;", p.exprText(n.Result))
		} else {
			p.line("return;")
		}

	case *BranchStmt:
		p.line("%s;", n.Tok().Lit)

	case *FuncStmt:
		p.funcDecl(n.Func)

	case *SignalStmt:
		p.line("signal %s = start(%s);", n.Name.Value, p.exprText(n.Call))

	case *StartStmt:
		p.line("start")

	case *WaitStmt:
		p.line("wait(%s);", n.Target.Value)

	default:
		p.line("/* %T */", s)
	}
}

// blockBody prints the statements of a block at one extra indent level,
// without the surrounding braces.
func (p *printer) blockBody(b *BlockStmt) {
	if b == nil {
		return
	}
	p.indent++
	for _, s := range b.Stmts {
		p.stmt(s)
	}
	p.indent--
}

// letText renders a declaration without the trailing semicolon, for use
// both as a statement and as a function parameter or for-initializer.
func (p *printer) letText(n *LetStmt) string {
	if n.Value != nil {
		return fmt.Sprintf("%s %s = %s", n.Tok().Lit, n.Name.Lit, p.exprText(n.Value))
	}
	return fmt.Sprintf("%s %s", n.Tok().Lit, n.Name.Lit)
}

// funcDecl prints a function declaration.
func (p *printer) funcDecl(fe *FuncExpr) {
	if fe == nil {
		return
	}

	params := make([]string, 0, len(fe.Params))
	for _, ps := range fe.Params {
		switch pn := ps.(type) {
		case *LetStmt:
			params = append(params, p.letText(pn))
		case *AssignStmt:
			params = append(params, fmt.Sprintf("%s = %s", pn.Tok().Lit, p.exprText(pn.Value)))
		}
	}

	result := ""
	if fe.Result != nil {
		result = " : " + fe.Result.Tok().Lit
	}

	p.line("work %s(%s)%s {", fe.Name.Lit, strings.Join(params, ", "), result)
	if fe.Body != nil {
		p.indent++
		for _, s := range fe.Body.Stmts {
			p.stmt(s)
		}
		if fe.Body.Final != nil {
			p.line("%s", p.exprText(fe.Body.Final))
		}
		p.indent--
	}
	p.line("}")
}

// expr prints an expression inline.
func (p *printer) expr(e Expr) {
	p.printf("%s", p.exprText(e))
}

// exprText renders an expression as source text. Operations are fully
// parenthesized; grouping parens are unwrapped during parsing, so the
// extra parens re-parse to the same tree.
func (p *printer) exprText(e Expr) string {
	if e == nil {
		return ""
	}

	switch n := e.(type) {
	case *Name:
		return n.Value

	case *BasicLit:
		switch n.Kind {
		case LitString:
			return strconv.Quote(n.Value)
		case LitChar:
			return quoteChar(n.Value)
		default:
			return n.Tok().Lit
		}

	case *Operation:
		if n.Y == nil {
			return fmt.Sprintf("(%s%s)", n.Tok().Lit, p.exprText(n.X))
		}
		return fmt.Sprintf("(%s %s %s)", p.exprText(n.X), n.Tok().Lit, p.exprText(n.Y))

	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = p.exprText(a)
		}
		return fmt.Sprintf("%s(%s)", p.exprText(n.Fun), strings.Join(args, ", "))

	case *BlockExpr:
		var b strings.Builder
		inner := &printer{w: &b, indent: p.indent + 1}
		b.WriteString("{\n")
		for _, s := range n.Stmts {
			inner.stmt(s)
		}
		if n.Final != nil {
			inner.line("%s", inner.exprText(n.Final))
		}
		b.WriteString(strings.Repeat("    ", p.indent))
		b.WriteString("}")
		return b.String()

	case *ReturnType:
		return n.Tok().Lit

	case *FuncExpr:
		var b strings.Builder
		inner := &printer{w: &b, indent: p.indent}
		inner.funcDecl(n)
		return strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf("/* %T */", e)
}

// quoteChar renders a char literal with the escapes the scanner accepts.
func quoteChar(s string) string {
	if s == "" {
		return "''"
	}
	switch s {
	case "\n":
		return `'\n'`
	case "\t":
		return `'\t'`
	case "\r":
		return `'\r'`
	case "\\":
		return `'\\'`
	case "'":
		return `'\''`
	case "\x00":
		return `'\0'`
	}
	return "'" + s + "'"
}
