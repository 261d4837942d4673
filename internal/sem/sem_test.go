package sem

import (
	"strings"
	"testing"

	"github.com/vela-lang/vela/internal/syntax"
	"github.com/vela-lang/vela/internal/types"
)

// ----------------------------------------------------------------------------
// Test helpers

// analyzeSrc parses and analyzes src. Parse errors fail the test: these
// tests exercise the analyzer.
func analyzeSrc(t *testing.T, src string) (*syntax.Program, *Info, []string) {
	t.Helper()

	toks := syntax.ScanString(src, func(line, col uint32, msg string) {
		t.Fatalf("scan error at %d:%d: %s", line, col, msg)
	})
	p := syntax.NewParser(toks, nil)
	prog := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	var diags []string
	info := &Info{}
	Analyze(prog, &Config{
		Error: func(pos syntax.Pos, msg string) {
			diags = append(diags, pos.String()+": "+msg)
		},
	}, info)

	return prog, info, diags
}

// expectNoErrors analyzes src and fails on any diagnostic.
func expectNoErrors(t *testing.T, src string) (*syntax.Program, *Info) {
	t.Helper()
	prog, info, diags := analyzeSrc(t, src)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics:\n%s", strings.Join(diags, "\n"))
	}
	return prog, info
}

// expectErrors analyzes src and checks each expected substring appears
// in some diagnostic.
func expectErrors(t *testing.T, src string, want ...string) []string {
	t.Helper()
	_, _, diags := analyzeSrc(t, src)
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics containing %v, got none", want)
	}
	all := strings.Join(diags, "\n")
	for _, w := range want {
		if !strings.Contains(all, w) {
			t.Errorf("expected diagnostic containing %q, got:\n%s", w, all)
		}
	}
	return diags
}

func annotationOf(t *testing.T, info *Info, n syntax.Node) Annotation {
	t.Helper()
	ann, ok := info.Annotations[n]
	if !ok {
		t.Fatalf("node %T has no annotation", n)
	}
	return ann
}

// ----------------------------------------------------------------------------
// Declarations and inference

func TestLiteralLet(t *testing.T) {
	prog, info := expectNoErrors(t, "int x = 5;")

	let := prog.Stmts[0].(*syntax.LetStmt)
	ann := annotationOf(t, info, let)
	if ann.Type != types.Int {
		t.Errorf("annotation type = %v, want int", ann.Type)
	}
	if !ann.Mutable {
		t.Error("declared variable should be mutable")
	}
	if ann.Depth != 0 {
		t.Errorf("depth = %d, want 0 (global)", ann.Depth)
	}
}

func TestAutoInference(t *testing.T) {
	tests := []struct {
		src  string
		want types.Type
	}{
		{"auto y = 3.14;", types.Float},
		{"auto n = 42;", types.Int},
		{`auto s = "hi";`, types.String},
		{"auto c = 'a';", types.Char},
		{"auto b = false;", types.Bool},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, info := expectNoErrors(t, tt.src)
			let := prog.Stmts[0].(*syntax.LetStmt)
			if ann := annotationOf(t, info, let); ann.Type != tt.want {
				t.Errorf("annotation type = %v, want %v", ann.Type, tt.want)
			}
		})
	}
}

func TestArithmeticPromotion(t *testing.T) {
	prog, info := expectNoErrors(t, "int a = 1; float b = 2.0; auto c = a + b;")

	let := prog.Stmts[2].(*syntax.LetStmt)
	if ann := annotationOf(t, info, let); ann.Type != types.Float {
		t.Errorf("c inferred as %v, want float", ann.Type)
	}
	if ann := annotationOf(t, info, let.Value); ann.Type != types.Float {
		t.Errorf("a + b annotated as %v, want float", ann.Type)
	}
}

func TestAutoWithoutInitializer(t *testing.T) {
	diags := expectErrors(t, "auto x;", "cannot use 'auto' without initialization")
	if len(diags) != 1 {
		t.Errorf("got %d diagnostics, want exactly 1: %v", len(diags), diags)
	}
}

func TestLetTypeMismatch(t *testing.T) {
	// Exactly one diagnostic, and x stays bound as int.
	_, info, diags := analyzeSrc(t, "int x = 1.0; int y = x;")
	if len(diags) != 1 || !strings.Contains(diags[0], "type mismatch") {
		t.Fatalf("diagnostics = %v, want exactly one type mismatch", diags)
	}
	for n, ann := range info.Annotations {
		if let, ok := n.(*syntax.LetStmt); ok && let.Name.Lit == "y" {
			if ann.Type != types.Int {
				t.Errorf("y bound as %v, want int (from x)", ann.Type)
			}
		}
	}
}

func TestRedeclarationRejected(t *testing.T) {
	expectErrors(t, "int x = 1; int x = 2;", "redeclared in this block")
}

func TestShadowingAllowed(t *testing.T) {
	expectNoErrors(t, "int x = 1; if (true) { float x = 2.0; x = 3.0; }")
}

// ----------------------------------------------------------------------------
// Assignments and identifiers

func TestUndeclaredAssignment(t *testing.T) {
	diags := expectErrors(t, "y = 5;", "use of undeclared identifier 'y'")
	if len(diags) != 1 {
		t.Errorf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
}

func TestAssignmentTypeMismatch(t *testing.T) {
	expectErrors(t, "int x = 1; x = true;", "type mismatch")
}

func TestUndeclaredIdentifierInExpression(t *testing.T) {
	expectErrors(t, "int x = nope + 1;", "use of undeclared identifier 'nope'")
}

func TestUnknownSuppressesCascade(t *testing.T) {
	// The undeclared identifier is reported once; the arithmetic and
	// declaration using the Unknown result stay quiet.
	_, _, diags := analyzeSrc(t, "int x = nope + 1;")
	if len(diags) != 1 {
		t.Errorf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
}

// ----------------------------------------------------------------------------
// Boolean contexts

func TestNonBooleanIfCondition(t *testing.T) {
	src := "int n = 0; if (n) { n = 1; }"
	prog, info, diags := analyzeSrc(t, src)
	if len(diags) != 1 || !strings.Contains(diags[0], "condition must be boolean") {
		t.Fatalf("diagnostics = %v, want one boolean-condition error", diags)
	}

	// The body is still analyzed.
	ifs := prog.Stmts[1].(*syntax.IfStmt)
	as := ifs.Then.Stmts[0].(*syntax.AssignStmt)
	if ann := annotationOf(t, info, as); ann.Type != types.Int {
		t.Errorf("inner assignment annotated %v, want int", ann.Type)
	}
}

func TestBooleanConditionsAccepted(t *testing.T) {
	expectNoErrors(t, `
bool ready = true;
int i = 0;
if (ready) { i = 1; }
while (i < 10) { i = i + 1; }
for (int j = 0; j < 3; ++j) { i = i + j; }
`)
}

func TestNonBooleanWhileCondition(t *testing.T) {
	expectErrors(t, `while ("loop") { }`, "condition must be boolean")
}

func TestNonBooleanForCondition(t *testing.T) {
	expectErrors(t, "for (int i = 0; i + 1; ++i) { }", "condition must be boolean")
}

func TestForInitializerScope(t *testing.T) {
	// The loop variable is invisible after the for statement.
	expectErrors(t, "for (int i = 0; i < 3; ++i) { } i = 1;",
		"use of undeclared identifier 'i'")
}

// ----------------------------------------------------------------------------
// Operators

func TestOperatorTyping(t *testing.T) {
	tests := []struct {
		src  string
		want types.Type
	}{
		{"auto v = 1 + 2;", types.Int},
		{"auto v = 1.5 * 2.5;", types.Float},
		{"auto v = 1 + 2.0;", types.Float},
		{"auto v = 7 % 3;", types.Int},
		{"auto v = 1 < 2;", types.Bool},
		{"auto v = 1 == 2.0;", types.Bool},
		{"auto v = 'a' == 'b';", types.Bool},
		{"auto v = true && false;", types.Bool},
		{"auto v = !true;", types.Bool},
		{"auto v = -3;", types.Int},
		{"auto v = -3.5;", types.Float},
		{`auto v = "a" + "b";`, types.String},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, info := expectNoErrors(t, tt.src)
			let := prog.Stmts[0].(*syntax.LetStmt)
			if ann := annotationOf(t, info, let); ann.Type != tt.want {
				t.Errorf("inferred %v, want %v", ann.Type, tt.want)
			}
		})
	}
}

func TestOperatorMismatches(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"auto v = 1 && true;", "operator '&&'"},
		{`auto v = "a" - "b";`, "operator '-'"},
		{`auto v = 1 + "s";`, "operator '+'"},
		{"auto v = !5;", "operator '!' requires a boolean operand"},
		{"auto v = ++true;", "operator '++' requires a numeric operand"},
		{`auto v = -"s";`, "operator '-' requires a numeric operand"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectErrors(t, tt.src, tt.want)
		})
	}
}

// ----------------------------------------------------------------------------
// Functions and calls

func TestFunctionCall(t *testing.T) {
	src := "work f(int p) : int { return p; } f(true);"
	prog, info, diags := analyzeSrc(t, src)
	if len(diags) != 1 || !strings.Contains(diags[0], "type mismatch in argument 0") {
		t.Fatalf("diagnostics = %v, want one argument-type error", diags)
	}

	call := prog.Stmts[1].(*syntax.ExprStmt).X.(*syntax.CallExpr)
	if ann := annotationOf(t, info, call); ann.Type != types.Int {
		t.Errorf("call annotated %v, want int (return type)", ann.Type)
	}
}

func TestCallArgumentCount(t *testing.T) {
	expectErrors(t, "work f(int a, int b) : int { return a; } f(1);",
		"mismatched number of arguments")
}

func TestCallUndeclaredFunction(t *testing.T) {
	expectErrors(t, "f(1);", "use of undeclared identifier 'f'")
}

func TestCallNonFunction(t *testing.T) {
	expectErrors(t, "int x = 1; x(2);", "'x' is not a function")
}

func TestRecursionResolves(t *testing.T) {
	expectNoErrors(t, `
work fib(int n) : int {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
`)
}

func TestParametersBoundInFunctionScope(t *testing.T) {
	expectErrors(t, "work f(int p) : int { return p; } p = 1;",
		"use of undeclared identifier 'p'")
}

func TestReturnTypeMismatch(t *testing.T) {
	expectErrors(t, "work f() : int { return true; }", "return type mismatch")
}

func TestReturnValueInVoidFunction(t *testing.T) {
	expectErrors(t, "work f() : void { return 1; }", "unexpected return value in void function")
}

func TestReturnMatchesDeclaredType(t *testing.T) {
	expectNoErrors(t, `
work half(float x) : float { return x / 2.0; }
work name() : string { return "vela"; }
`)
}

func TestFunctionBodyFinalExpression(t *testing.T) {
	prog, info := expectNoErrors(t, "work f() : int { int x = 1; x }")

	body := prog.Stmts[0].(*syntax.FuncStmt).Func.Body
	if ann := annotationOf(t, info, body); ann.Type != types.Int {
		t.Errorf("block expression annotated %v, want int (trailing expression)", ann.Type)
	}
}

// ----------------------------------------------------------------------------
// Concurrency statements

func TestSignalBindsHandle(t *testing.T) {
	expectNoErrors(t, `
work job(int n) : int { return n; }
signal s = start(job(1));
wait(s);
`)
}

func TestSignalCallIsChecked(t *testing.T) {
	expectErrors(t, `
work job(int n) : int { return n; }
signal s = start(job(true));
`, "type mismatch in argument 0")
}

func TestWaitUndeclared(t *testing.T) {
	expectErrors(t, "wait(ghost);", "use of undeclared identifier 'ghost'")
}

// ----------------------------------------------------------------------------
// Invariants

func TestEveryNodeAnnotated(t *testing.T) {
	src := `
work add(int a, b = 2) : int {
    int sum = a + b;
    return sum;
}
int x = 5;
auto y = x + 1;
if (x < y) { x = y; } else { y = x; }
while (x < 10) { ++x; }
for (int i = 0; i < 3; ++i) { x = x + i; }
signal s = start(add(1, 2));
wait(s);
start
f(x);
`
	// One deliberate diagnostic (f undeclared): annotations must still
	// cover every node.
	prog, info, _ := analyzeSrc(t, src)

	var missing []string
	syntax.WalkProgram(prog, func(n syntax.Node) bool {
		if _, ok := info.Annotations[n]; !ok {
			missing = append(missing, syntax.String(n))
		}
		return true
	})
	if len(missing) > 0 {
		t.Errorf("nodes without annotation: %v", missing)
	}
}

func TestScopeBalance(t *testing.T) {
	src := `
work f(int a) : int {
    if (a > 0) {
        while (a > 1) { a = a - 1; }
    }
    return a;
}
for (int i = 0; i < 2; ++i) { f(i); }
`
	toks := syntax.ScanString(src, nil)
	p := syntax.NewParser(toks, nil)
	prog := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	a := &analyzer{conf: &Config{}, info: &Info{Annotations: map[syntax.Node]Annotation{}}, tab: types.NewTable()}
	for _, s := range prog.Stmts {
		a.stmt(s)
	}
	if a.tab.Depth() != 1 {
		t.Errorf("scope depth after analysis = %d, want 1 (global remains)", a.tab.Depth())
	}
}

func TestAnalyzeReturnsFirstError(t *testing.T) {
	toks := syntax.ScanString("y = 1; z = 2;", nil)
	p := syntax.NewParser(toks, nil)
	prog := p.Parse()

	err := Analyze(prog, nil, nil)
	if err == nil {
		t.Fatal("Analyze returned nil, want first error")
	}
	if !strings.Contains(err.Error(), "'y'") {
		t.Errorf("first error = %v, want the diagnostic for y", err)
	}
}

func TestAnalyzeCleanProgram(t *testing.T) {
	toks := syntax.ScanString("int x = 1;", nil)
	p := syntax.NewParser(toks, nil)
	if err := Analyze(p.Parse(), nil, nil); err != nil {
		t.Fatalf("Analyze() = %v, want nil", err)
	}
}
