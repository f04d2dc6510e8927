// Package pipeline runs the report commands: it loads the inputs, hands
// them to the kanji service and writes the results, logging each phase.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/kanjigap/internal/app/report"
	"github.com/heartmarshall/kanjigap/internal/app/source/anki"
	"github.com/heartmarshall/kanjigap/internal/app/source/curriculum"
	"github.com/heartmarshall/kanjigap/internal/app/source/dictjson"
	"github.com/heartmarshall/kanjigap/internal/app/source/kanjidic"
	"github.com/heartmarshall/kanjigap/internal/config"
	"github.com/heartmarshall/kanjigap/internal/domain"
	"github.com/heartmarshall/kanjigap/internal/service/kanji"
)

// Phase names, also used as keys in Results.
const (
	PhaseDictDump   = "dict_dump"
	PhaseTodo       = "todo"
	PhaseCurriculum = "curriculum"
	PhaseAudit      = "audit"
	PhaseImport     = "import"
)

// ErrNoOutput is returned when a phase has no output path configured.
var ErrNoOutput = errors.New("output path not configured")

// Result holds the outcome of a single phase.
type Result struct {
	Name     string
	Path     string
	Entries  int
	Duration time.Duration
	Err      error
}

// Pipeline loads the dictionary once and produces reports from it.
type Pipeline struct {
	log     *slog.Logger
	cfg     config.Config
	runID   string
	writer  report.Writer
	dict    *domain.Dictionary
	results map[string]Result
}

// New creates a Pipeline. runID is embedded in reports that carry metadata.
func New(log *slog.Logger, cfg config.Config, runID string) *Pipeline {
	return &Pipeline{
		log:     log,
		cfg:     cfg,
		runID:   runID,
		writer:  report.Writer{Indent: cfg.Reports.Indent},
		results: make(map[string]Result),
	}
}

// Results returns phase results recorded so far.
func (p *Pipeline) Results() map[string]Result {
	return p.results
}

// Dictionary loads the dictionary on first use. Failure is fatal for every
// report, so callers should stop on error.
func (p *Pipeline) Dictionary() (*domain.Dictionary, error) {
	if p.dict != nil {
		return p.dict, nil
	}

	start := time.Now()
	dict, err := dictjson.Load(p.cfg.Sources.DictPath)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	p.dict = dict
	p.log.Info("dictionary loaded",
		slog.String("path", p.cfg.Sources.DictPath),
		slog.Int("entries", dict.Len()),
		slog.Any("grades", dict.Grades()),
		slog.Duration("duration", time.Since(start)),
	)
	return dict, nil
}

// RunTodo writes the kanji of the configured grade that the deck does not
// cover yet. The dictionary dump is written first when configured.
func (p *Pipeline) RunTodo(ctx context.Context) error {
	dict, err := p.Dictionary()
	if err != nil {
		return err
	}

	if p.cfg.Reports.DictDumpPath != "" {
		if err := p.RunDictDump(ctx); err != nil {
			return err
		}
	}

	return p.phase(ctx, PhaseTodo, p.cfg.Reports.TodoPath, func(path string) (int, error) {
		known := p.knownEntries(dict)
		todo := kanji.GapSimple(dict, p.cfg.Grade, known)
		p.log.Info("gap reconciled",
			slog.Int("grade", p.cfg.Grade),
			slog.Int("grade_total", len(dict.ByGrade(p.cfg.Grade))),
			slog.Int("known", len(known)),
			slog.Int("todo", len(todo)),
		)
		return len(todo), p.writer.WriteJSON(path, todo)
	})
}

// RunDictDump re-serializes the whole dictionary.
func (p *Pipeline) RunDictDump(ctx context.Context) error {
	dict, err := p.Dictionary()
	if err != nil {
		return err
	}
	return p.phase(ctx, PhaseDictDump, p.cfg.Reports.DictDumpPath, func(path string) (int, error) {
		return dict.Len(), p.writer.WriteJSON(path, report.Dictionary(dict))
	})
}

// RunCurriculum writes every dictionary kanji found in the curriculum CSV,
// sorted for study. With a deck configured, known kanji are left out.
func (p *Pipeline) RunCurriculum(ctx context.Context) error {
	dict, err := p.Dictionary()
	if err != nil {
		return err
	}
	if p.cfg.Sources.CurriculumPath == "" {
		return p.record(PhaseCurriculum, Result{Err: errors.New("curriculum path not configured")})
	}

	return p.phase(ctx, PhaseCurriculum, p.cfg.Reports.CurriculumPath, func(path string) (int, error) {
		cells, err := curriculum.ReadCells(p.cfg.Sources.CurriculumPath)
		if err != nil {
			return 0, err
		}
		entries := kanji.LookupText(dict, domain.NormalizeAll(cells)...)
		p.log.Info("curriculum parsed",
			slog.Int("cells", len(cells)),
			slog.Int("kanji", len(entries)),
		)

		if p.cfg.Sources.DeckPath != "" {
			entries = kanji.Subtract(entries, p.knownEntries(dict))
		}
		out := report.Simple(entries)
		domain.SortSimple(out)
		return len(out), p.writer.WriteJSON(path, out)
	})
}

// RunAudit classifies the deck's known kanji against the configured grade.
func (p *Pipeline) RunAudit(ctx context.Context) error {
	dict, err := p.Dictionary()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(p.cfg.Reports.AuditFormat)
	if err != nil {
		return err
	}

	return p.phase(ctx, PhaseAudit, p.cfg.Reports.AuditPath, func(path string) (int, error) {
		res := kanji.Audit(dict, p.cfg.Grade, p.knownEntries(dict))
		p.log.Info("deck audited",
			slog.Int("grade", res.Grade),
			slog.Int("at_grade", len(res.AtGrade)),
			slog.Int("above_grade", len(res.AboveGrade)),
			slog.Int("below_grade", len(res.BelowGrade)),
			slog.Int("ungraded", len(res.Ungraded)),
			slog.Int("missing", len(res.Missing)),
			slog.Float64("coverage", res.Coverage()),
		)
		if len(res.Missing) > 0 {
			p.log.Debug("grade kanji missing from deck",
				slog.String("chars", strings.Join(domain.Literals(res.Missing), "")),
			)
		}
		return res.Total(), p.writer.Write(path, format, report.Audit(p.runID, res))
	})
}

// RunImport converts a KANJIDIC2 file into the dictionary JSON format.
// It does not need a dictionary to be loaded.
func (p *Pipeline) RunImport(ctx context.Context, out string) error {
	return p.phase(ctx, PhaseImport, out, func(path string) (int, error) {
		entries, stats, err := kanjidic.ParseFile(p.cfg.Sources.KanjidicPath)
		if err != nil {
			return 0, err
		}
		p.log.Info("kanjidic parsed",
			slog.Int("characters", stats.Characters),
			slog.Int("graded", stats.Graded),
			slog.Int("no_literal", stats.NoLiteral),
			slog.Int("duplicates", stats.Duplicates),
		)

		dict, err := domain.NewDictionary(entries)
		if err != nil {
			return 0, fmt.Errorf("build dictionary: %w", err)
		}
		return dict.Len(), p.writer.WriteJSON(path, report.Dictionary(dict))
	})
}

// knownEntries reads the deck and looks its answers up. Every deck failure
// degrades to an empty known set.
func (p *Pipeline) knownEntries(dict *domain.Dictionary) []domain.KanjiEntry {
	path := p.cfg.Sources.DeckPath
	if path == "" {
		p.log.Info("no deck configured, known set is empty")
		return nil
	}

	answers, stats, ok := anki.ReadAnswers(path)
	if !ok {
		p.log.Info("deck unavailable, known set is empty", slog.String("path", path))
		return nil
	}

	known := anki.KnownEntries(dict, answers)
	p.log.Info("deck read",
		slog.String("path", path),
		slog.Int("notes", stats.TotalNotes),
		slog.Int("answers", stats.Extracted),
		slog.Int("skipped_notes", stats.SkippedNotes),
		slog.Int("known", len(known)),
	)
	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		misses := kanji.Misses(dict, kanji.Extract(domain.NormalizeAll(answers)...))
		if misses.Len() > 0 {
			p.log.Debug("deck kanji missing from dictionary", slog.String("chars", misses.String()))
		}
	}
	return known
}

// phase times fn, records its result and logs the outcome.
func (p *Pipeline) phase(ctx context.Context, name, path string, fn func(path string) (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return p.record(name, Result{Err: ErrNoOutput})
	}

	start := time.Now()
	p.log.Info("starting phase", slog.String("phase", name))

	n, err := fn(path)
	return p.record(name, Result{Path: path, Entries: n, Duration: time.Since(start), Err: err})
}

func (p *Pipeline) record(name string, r Result) error {
	r.Name = name
	p.results[name] = r

	if r.Err != nil {
		p.log.Warn("phase failed",
			slog.String("phase", name),
			slog.String("error", r.Err.Error()),
			slog.Duration("duration", r.Duration),
		)
		return fmt.Errorf("%s: %w", name, r.Err)
	}
	p.log.Info("phase completed",
		slog.String("phase", name),
		slog.String("path", r.Path),
		slog.Int("entries", r.Entries),
		slog.Duration("duration", r.Duration),
	)
	return nil
}
