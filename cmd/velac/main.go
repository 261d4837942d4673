// velac is the Vela compiler front-end driver: it scans, parses, and
// semantically analyzes Vela source files and reports diagnostics.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/sem"
	"github.com/vela-lang/vela/internal/syntax"
)

// Version information
const version = "0.1.0-dev"

var (
	cfgFile    string
	noColor    bool
	maxErrors  int
	trace      bool
	emitTokens bool
)

var rootCmd = &cobra.Command{
	Use:   "velac",
	Short: "Vela compiler front-end",
	Long: `velac runs the Vela compiler front-end: lexical analysis, parsing,
and semantic analysis. It reports all diagnostics found in one run.

Commands:
  check    scan, parse, and analyze a source file
  fmt      print a source file in canonical form`,
	Version: version,
}

var checkCmd = &cobra.Command{
	Use:   "check <file.vela>",
	Short: "Scan, parse, and analyze a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.vela>",
	Short: "Print a source file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "configuration file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", 0, "cap printed diagnostics, 0 = no cap (unset = use config)")

	checkCmd.Flags().BoolVar(&emitTokens, "emit-tokens", false, "output the token stream")
	checkCmd.Flags().BoolVar(&trace, "trace", false, "output phase timing")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the configuration file with command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if noColor {
		cfg.Color = false
	}
	if cmd.Flags().Changed("max-errors") {
		cfg.MaxErrors = maxErrors
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = trace
	}
	return cfg, nil
}

// frontend runs scan, parse, and analyze on one file and collects every
// diagnostic in phase order.
func frontend(path string, cfg config.Config) (*syntax.Program, []diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var diags []diagnostic

	scanStart := time.Now()
	toks := syntax.Scan(f, func(line, col uint32, msg string) {
		diags = append(diags, diagnostic{phase: "scan", line: line, col: col, msg: msg})
	})
	scanDone := time.Now()

	p := syntax.NewParser(toks, func(pos syntax.Pos, msg string) {
		diags = append(diags, diagnostic{phase: "parse", line: pos.Line(), col: pos.Col(), msg: msg})
	})
	prog := p.Parse()
	parseDone := time.Now()

	info := &sem.Info{}
	sem.Analyze(prog, &sem.Config{
		Error: func(pos syntax.Pos, msg string) {
			diags = append(diags, diagnostic{phase: "sem", line: pos.Line(), col: pos.Col(), msg: msg})
		},
	}, info)
	semDone := time.Now()

	if cfg.Trace {
		fmt.Fprintf(os.Stderr, "scan %v, parse %v, analyze %v\n",
			scanDone.Sub(scanStart), parseDone.Sub(scanDone), semDone.Sub(parseDone))
	}

	return prog, diags, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]

	if emitTokens {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		toks := syntax.Scan(f, nil)
		f.Close()
		for _, t := range toks {
			fmt.Printf("%3d:%-3d %s\n", t.Line, t.Col, t)
		}
	}

	_, diags, err := frontend(path, cfg)
	if err != nil {
		return err
	}

	printDiagnostics(os.Stderr, path, diags, cfg)
	if len(diags) > 0 {
		return fmt.Errorf("%s: %d error(s)", path, len(diags))
	}

	fmt.Printf("%s: ok\n", path)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	prog, diags, err := frontend(path, cfg)
	if err != nil {
		return err
	}

	// Formatting output from a tree with parse errors would drop the
	// unparsed parts of the input.
	for _, d := range diags {
		if d.phase != "sem" {
			printDiagnostics(os.Stderr, path, diags, cfg)
			return fmt.Errorf("%s: not formatted due to syntax errors", path)
		}
	}

	syntax.FprintProgram(os.Stdout, prog)
	return nil
}
