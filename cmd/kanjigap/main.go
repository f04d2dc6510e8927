// Command kanjigap compares a kanji dictionary against a learner's study deck
// and writes JSON reports of what is left to learn.
//
// Usage:
//
//	kanjigap todo       [--dict path] [--deck path] [--grade n] [--out path] [--dict-out path]
//	kanjigap curriculum [--dict path] --csv path [--deck path] [--out path]
//	kanjigap audit      [--dict path] [--deck path] [--grade n] [--out path] [--format json|yaml]
//	kanjigap import     --kanjidic path [--out path]
//	kanjigap version
//
// Every command accepts --config, a YAML file read before environment
// variables. Flags override both.
//
// Exit codes: 0 = success, 1 = error, 2 = usage error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/kanjigap/internal/app"
	"github.com/heartmarshall/kanjigap/internal/app/pipeline"
	"github.com/heartmarshall/kanjigap/internal/config"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: kanjigap <command> [flags]

commands:
  todo        write the target grade's kanji missing from the deck
  curriculum  write the dictionary kanji found in a curriculum CSV
  audit       classify the deck's kanji against the target grade
  import      convert KANJIDIC2 XML into the dictionary JSON format
  version     print build information

run "kanjigap <command> -h" for command flags
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the raw flag values of one invocation.
type options struct {
	configPath string
	dict       string
	deck       string
	grade      int
	out        string
	dictOut    string
	csv        string
	kanjidic   string
	format     string
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd := args[0]
	switch cmd {
	case "version":
		fmt.Fprintln(stdout, app.BuildVersion())
		return exitOK
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	case pipeline.PhaseTodo, pipeline.PhaseCurriculum, pipeline.PhaseAudit, pipeline.PhaseImport:
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}

	fs := flag.NewFlagSet("kanjigap "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := registerFlags(fs, cmd)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return exitUsage
	}

	cfg, err := config.Read(opts.configPath)
	if err != nil {
		log.New(stderr, "", log.LstdFlags).Printf("load config: %v", err)
		return exitError
	}

	// CLI flags override config.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	importOut := applyFlags(cfg, cmd, opts, set)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		return exitUsage
	}
	if cmd == pipeline.PhaseCurriculum && cfg.Sources.CurriculumPath == "" {
		fmt.Fprintln(stderr, "curriculum: --csv is required")
		return exitUsage
	}
	inputs, outputs := commandPaths(cfg, cmd, importOut)
	if err := config.CheckPaths(inputs, outputs); err != nil {
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		return exitUsage
	}

	logger, runID := app.WithRun(app.NewLogger(cfg.Log))
	logger.Info("kanjigap starting",
		slog.String("command", cmd),
		slog.String("version", app.BuildVersion()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	p := pipeline.New(logger, *cfg, runID)
	start := time.Now()

	switch cmd {
	case pipeline.PhaseTodo:
		err = p.RunTodo(ctx)
	case pipeline.PhaseCurriculum:
		err = p.RunCurriculum(ctx)
	case pipeline.PhaseAudit:
		err = p.RunAudit(ctx)
	case pipeline.PhaseImport:
		err = p.RunImport(ctx, importOut)
	}
	if err != nil {
		logger.Error("run failed",
			slog.String("command", cmd),
			slog.String("error", err.Error()),
		)
		return exitError
	}

	logger.Info("run completed",
		slog.String("command", cmd),
		slog.Int("phases_run", len(p.Results())),
		slog.Duration("duration", time.Since(start)),
	)
	return exitOK
}

func registerFlags(fs *flag.FlagSet, cmd string) *options {
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file (default: $KANJIGAP_CONFIG or ./kanjigap.yaml)")

	switch cmd {
	case pipeline.PhaseTodo:
		fs.StringVar(&opts.dict, "dict", "", "dictionary JSON path")
		fs.StringVar(&opts.deck, "deck", "", "study deck export path")
		fs.IntVar(&opts.grade, "grade", 0, "target grade")
		fs.StringVar(&opts.out, "out", "", "todo report path")
		fs.StringVar(&opts.dictOut, "dict-out", "", "also write the full dictionary to this path")
	case pipeline.PhaseCurriculum:
		fs.StringVar(&opts.dict, "dict", "", "dictionary JSON path")
		fs.StringVar(&opts.csv, "csv", "", "curriculum CSV path")
		fs.StringVar(&opts.deck, "deck", "", "study deck export path; known kanji are left out")
		fs.StringVar(&opts.out, "out", "", "curriculum report path")
	case pipeline.PhaseAudit:
		fs.StringVar(&opts.dict, "dict", "", "dictionary JSON path")
		fs.StringVar(&opts.deck, "deck", "", "study deck export path")
		fs.IntVar(&opts.grade, "grade", 0, "grade the deck is meant to cover")
		fs.StringVar(&opts.out, "out", "", "audit report path")
		fs.StringVar(&opts.format, "format", "", "audit report format: json or yaml")
	case pipeline.PhaseImport:
		fs.StringVar(&opts.kanjidic, "kanjidic", "", "KANJIDIC2 XML path")
		fs.StringVar(&opts.out, "out", "", "dictionary JSON output path (default: the configured dictionary path)")
	}
	return opts
}

// applyFlags copies explicitly set flags onto cfg and returns the import
// output path.
func applyFlags(cfg *config.Config, cmd string, opts *options, set map[string]bool) string {
	if set["dict"] {
		cfg.Sources.DictPath = opts.dict
	}
	if set["deck"] {
		cfg.Sources.DeckPath = opts.deck
	}
	if set["grade"] {
		cfg.Grade = opts.grade
	}
	if set["csv"] {
		cfg.Sources.CurriculumPath = opts.csv
	}
	if set["kanjidic"] {
		cfg.Sources.KanjidicPath = opts.kanjidic
	}
	if set["format"] {
		cfg.Reports.AuditFormat = opts.format
	}
	if set["dict-out"] {
		cfg.Reports.DictDumpPath = opts.dictOut
	}

	importOut := cfg.Sources.DictPath
	if set["out"] {
		switch cmd {
		case pipeline.PhaseTodo:
			cfg.Reports.TodoPath = opts.out
		case pipeline.PhaseCurriculum:
			cfg.Reports.CurriculumPath = opts.out
		case pipeline.PhaseAudit:
			cfg.Reports.AuditPath = opts.out
		case pipeline.PhaseImport:
			importOut = opts.out
		}
	}
	return importOut
}

// commandPaths lists the files cmd reads and writes.
func commandPaths(cfg *config.Config, cmd, importOut string) (inputs, outputs map[string]string) {
	if cmd == pipeline.PhaseImport {
		return map[string]string{"kanjidic": cfg.Sources.KanjidicPath},
			map[string]string{pipeline.PhaseImport: importOut}
	}

	inputs = map[string]string{
		"dict": cfg.Sources.DictPath,
		"deck": cfg.Sources.DeckPath,
	}
	switch cmd {
	case pipeline.PhaseTodo:
		outputs = map[string]string{
			pipeline.PhaseTodo:     cfg.Reports.TodoPath,
			pipeline.PhaseDictDump: cfg.Reports.DictDumpPath,
		}
	case pipeline.PhaseCurriculum:
		inputs["csv"] = cfg.Sources.CurriculumPath
		outputs = map[string]string{pipeline.PhaseCurriculum: cfg.Reports.CurriculumPath}
	case pipeline.PhaseAudit:
		outputs = map[string]string{pipeline.PhaseAudit: cfg.Reports.AuditPath}
	}
	return inputs, outputs
}
