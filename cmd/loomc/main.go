// Package main implements the loomc CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/loomlang/loom/pkg/config"
	"github.com/loomlang/loom/pkg/loader"
	"github.com/loomlang/loom/pkg/logx"
	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/parser"
	"github.com/loomlang/loom/pkg/ui"
)

var version = "0.1.0-alpha"

func main() {
	rootCmd := &cobra.Command{
		Use:   "loomc",
		Short: "loomc - a pure-functional language front end",
		Long: `loomc parses, canonicalizes, and solves a loom module graph.
It is the front end for a small pure-functional, strictly-typed,
indentation-sensitive language: no code generation, just the pipeline
from source text to a solved, per-module type summary.`,
		Version:      version,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintLoomHelp(version)
		},
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		ui.PrintLoomHelp(version)
	})
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintLoomHelp(version)
		},
	})

	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCmd() *cobra.Command {
	var (
		rootDir    string
		maxWorkers int
		jsonLog    bool
	)

	cmd := &cobra.Command{
		Use:   "load [file.loom]",
		Short: "Load a module and its dependency graph",
		Long: `Load header-scans, parses, canonicalizes, and solves the root
file and every module it (transitively) imports, reporting each module's
exposed declarations and their solved types.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := &config.Config{
				Session: config.SessionConfig{RootDir: rootDir, MaxWorkers: maxWorkers},
				Logging: config.LoggingConfig{JSON: jsonLog},
			}
			return runLoad(args[0], overrides)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Directory module names are resolved under (default: the root file's directory)")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum concurrent module workers (0 = auto)")
	cmd.Flags().BoolVar(&jsonLog, "json-log", false, "Emit structured logs as JSON instead of text")

	return cmd
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file.loom]",
		Short: "Parse a single source file and print its header and definition count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0])
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of loomc",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintVersionInfo(version)
		},
	}
}

func runLoad(inputPath string, overrides *config.Config) error {
	cfg, err := config.Load(overrides)
	if err != nil {
		return err
	}
	if cfg.Session.RootDir == "." || cfg.Session.RootDir == "" {
		cfg.Session.RootDir = dirOf(inputPath)
	}

	sessionID := uuid.NewString()
	logger := logx.New(cfg.Logging)
	entry := logx.WithSession(logger, sessionID)

	out := ui.NewLoadOutput()
	out.PrintHeader(version)
	out.PrintModuleStart(inputPath, cfg.Session.RootDir)

	start := time.Now()
	res, err := loader.Load(inputPath, cfg.Session.RootDir, cfg.Workers(), entry)
	if err != nil {
		out.PrintSummary(false, err.Error())
		return err
	}

	out.PrintLoadStart(len(res.Modules))
	for id, mod := range res.Modules {
		name := res.Names[id]
		if mod.Invalid {
			out.PrintStep(ui.Step{Name: name, Status: ui.StepError, Message: mod.InvalidReason})
			continue
		}
		solved := res.Solved[id]
		msg := fmt.Sprintf("%d declaration(s) solved", len(solved.Types))
		out.PrintStep(ui.Step{Name: name, Status: ui.StepSuccess, Duration: time.Since(start), Message: msg})
		for sym, t := range solved.Types {
			if _, ok := mod.ExposedVars[sym]; ok {
				out.PrintInfo(fmt.Sprintf("%s : %s", identText(res, id, sym), t.String()))
			}
		}
	}

	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			out.PrintWarning(e.Error())
		}
		out.PrintSummary(false, fmt.Sprintf("%d module(s) failed", len(res.Errors)))
		return fmt.Errorf("load completed with %d error(s)", len(res.Errors))
	}

	out.PrintSummary(true, "")
	return nil
}

func runParse(inputPath string) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	header, defs, err := parser.ParseModule(src)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	fmt.Printf("module %s\n", header.ModuleName)
	fmt.Printf("  exposes %v\n", header.Exposes)
	for _, imp := range header.Imports {
		if len(imp.Idents) > 0 {
			fmt.Printf("  imports %s.%v\n", imp.ModuleName, imp.Idents)
		} else {
			fmt.Printf("  imports %s\n", imp.ModuleName)
		}
	}
	fmt.Printf("  %d top-level definition(s)\n", len(defs))
	return nil
}

func identText(res *loader.Result, id module.ID, sym module.Symbol) string {
	if hdr, ok := res.Headers[id]; ok && hdr.IdentIds != nil {
		return hdr.IdentIds.Text(sym.Ident)
	}
	return fmt.Sprintf("#%d", sym.Ident)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
