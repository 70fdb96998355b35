// Command gocc drives the semantic core over a single translation
// unit: it lexes and parses the input, folds every top-level constant
// initializer it can, and prints the result — a stand-in for a real
// code generator, which spec.md places out of this module's scope.
//
// Usage:
//
//	gocc [options] <file.c>
//
// Options:
//
//	-I, --include <path>   Add a directory to the include search path (repeatable)
//	-D, --define <name=val> Predefine a macro (repeatable; unused by the
//	                        semantic core itself, carried through cfg for
//	                        a future preprocessor)
//	-v, --verbose           Enable verbose logging
//	--config <file>         Use a specific config file
//	--no-config             Ignore config files
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/ceval"
	"github.com/HugoDaniel/gocc/internal/cfg"
	"github.com/HugoDaniel/gocc/internal/clog"
	"github.com/HugoDaniel/gocc/internal/cparse"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/diag"
	"github.com/HugoDaniel/gocc/internal/visit"
)

var (
	includePaths []string
	defines      []string
	verbose      bool
	configFile   string
	noConfig     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gocc <file.c>",
		Short: "Fold and report the constant expressions in a C translation unit",
		Args:  cobra.ExactArgs(1),
		RunE:  runGocc,
	}
	cmd.Flags().StringArrayVarP(&includePaths, "include", "I", nil, "add a directory to the include search path")
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "predefine a macro as name=value")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().StringVar(&configFile, "config", "", "use a specific config file")
	cmd.Flags().BoolVar(&noConfig, "no-config", false, "ignore config files")
	return cmd
}

func runGocc(_ *cobra.Command, args []string) error {
	path := args[0]

	opts, configPath, err := loadOptions(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := clog.New(opts.Verbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	cparse.SetLogger(logger)
	ceval.SetLogger(logger)

	if configPath != "" {
		logger.Debug("using config file", zap.String("path", configPath))
	}
	logger.Debug("resolved options",
		zap.Strings("includePaths", opts.IncludePaths),
		zap.Int("pointerWidth", opts.PointerWidth))

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	reg := ctype.NewRegistry()
	toks := cparse.NewLexer(string(source), path).Tokenize()
	p := cparse.New(toks, reg)
	tu, err := p.ParseTranslationUnit()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return reportTranslationUnit(tu, opts)
}

// loadOptions mirrors the teacher's cmd/miniray: an explicit
// --config file wins, else an upward search from the input's
// directory, with --no-config skipping both and CLI flags always
// merged on top.
func loadOptions(inputPath string) (cfg.Options, string, error) {
	if noConfig {
		return cfg.DefaultOptions().Merge(cliOverrides()), "", nil
	}

	var fileCfg *cfg.Config
	var configPath string
	var err error

	if configFile != "" {
		fileCfg, err = cfg.LoadFile(configFile)
		configPath = configFile
	} else {
		fileCfg, configPath, err = cfg.Load(filepath.Dir(inputPath))
	}
	if err != nil {
		return cfg.Options{}, "", err
	}
	return fileCfg.Merge(cliOverrides()), configPath, nil
}

func cliOverrides() cfg.CLIOverrides {
	defs := make(map[string]string, len(defines))
	for _, d := range defines {
		name, val, _ := strings.Cut(d, "=")
		defs[name] = val
	}
	return cfg.CLIOverrides{
		IncludePaths: includePaths,
		Defines:      defs,
		Verbose:      verbose,
	}
}

// reportTranslationUnit walks every top-level declaration, folding
// whatever initializer or enumerator it can and printing the result,
// using internal/visit's dispatch rather than a hand-rolled type
// switch at the call site.
func reportTranslationUnit(tu *cast.TranslationUnit, opts cfg.Options) error {
	intKind := intKindForWidth(opts.PointerWidth)
	reporter := diag.NewReporter()

	visitor := visit.StmtVisitor{
		Declaration: func(d *cast.Declaration) error {
			for _, decl := range d.Declarators {
				reportDeclarator(decl, intKind, reporter)
			}
			return nil
		},
	}

	for _, stmt := range tu.Decls {
		if err := visit.Stmt(visitor, stmt); err != nil {
			reporter.Report(err)
		}
	}

	for _, d := range reporter.All() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if reporter.HasErrors() {
		return fmt.Errorf("compilation failed with %d diagnostic(s)", len(reporter.All()))
	}
	return nil
}

func reportDeclarator(decl cast.Declarator, intKind ceval.Kind, reporter *diag.Reporter) {
	if su, ok := decl.Type.(*ctype.StructUnion); ok {
		fmt.Printf("%s: width=%d align=%d\n", decl.Name, su.Width(), su.Align())
	}
	if decl.Init == nil {
		return
	}
	if addr, err := ceval.EvalAddr(decl.Init); err == nil {
		fmt.Printf("%s = %s\n", decl.Name, formatAddr(addr))
		return
	}
	v, err := ceval.New(intKind).EvalInt(decl.Init)
	if err != nil {
		reporter.Report(err)
		return
	}
	fmt.Printf("%s = %d\n", decl.Name, v)
}

func formatAddr(a ceval.Addr) string {
	if !a.HasLabel {
		return fmt.Sprintf("%d", a.Offset)
	}
	if a.Offset == 0 {
		return a.Label
	}
	return fmt.Sprintf("%s+%d", a.Label, a.Offset)
}

func intKindForWidth(pointerWidth int) ceval.Kind {
	if pointerWidth >= 8 {
		return ceval.Int64
	}
	return ceval.Int32
}
