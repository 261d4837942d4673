// Package sem implements semantic analysis for the Vela programming
// language: symbol resolution, type inference and checking, and
// per-node annotations.
package sem

import (
	"github.com/vela-lang/vela/internal/syntax"
	"github.com/vela-lang/vela/internal/types"
)

// Config specifies the configuration for semantic analysis.
type Config struct {
	// Error is called for each diagnostic.
	// If nil, diagnostics are only counted.
	Error ErrorHandler
}

// Annotation is the typing and scoping metadata attached to a node.
type Annotation struct {
	Type     types.Type
	Mutable  bool
	Constant bool
	Depth    int // scope depth at the moment of analysis
}

// Info holds the results of semantic analysis.
type Info struct {
	// Annotations maps each analyzed node to its metadata.
	// Every node the walker visits gets exactly one entry.
	Annotations map[syntax.Node]Annotation
}

// Analyze walks every node of the program in source order, resolves
// identifiers, infers and checks types, and records annotations.
// The AST is not rewritten. Analysis never aborts; the first
// diagnostic, if any, is returned as an error.
func Analyze(prog *syntax.Program, conf *Config, info *Info) error {
	if conf == nil {
		conf = &Config{}
	}
	if info != nil && info.Annotations == nil {
		info.Annotations = make(map[syntax.Node]Annotation)
	}

	a := &analyzer{
		conf: conf,
		info: info,
		tab:  types.NewTable(),
	}

	for _, s := range prog.Stmts {
		a.stmt(s)
	}

	if a.first != nil {
		return a.first
	}
	return nil
}
