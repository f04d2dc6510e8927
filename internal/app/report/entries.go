package report

import (
	"github.com/heartmarshall/kanjigap/internal/domain"
	"github.com/heartmarshall/kanjigap/internal/service/kanji"
)

// Simple projects entries onto the flattened report shape, preserving order.
func Simple(entries []domain.KanjiEntry) []domain.KanjiEntrySimple {
	return domain.ToSimple(entries)
}

// Dictionary returns the dictionary dump: an object keyed by literal with the
// same shape as the dictionary source.
func Dictionary(dict *domain.Dictionary) map[string]domain.KanjiEntry {
	return dict.Map()
}

// AuditSummary is the human-oriented view of a grade audit.
type AuditSummary struct {
	RunID      string                    `json:"run_id" yaml:"run_id"`
	Grade      int                       `json:"grade" yaml:"grade"`
	Total      int                       `json:"total" yaml:"total"`
	Coverage   float64                   `json:"coverage" yaml:"coverage"`
	AtGrade    []domain.KanjiEntrySimple `json:"at_grade" yaml:"at_grade"`
	AboveGrade []domain.KanjiEntrySimple `json:"above_grade" yaml:"above_grade"`
	BelowGrade []domain.KanjiEntrySimple `json:"below_grade" yaml:"below_grade"`
	Ungraded   []domain.KanjiEntrySimple `json:"ungraded" yaml:"ungraded"`
	Missing    []domain.KanjiEntrySimple `json:"missing" yaml:"missing"`
}

// Audit flattens an audit result for reporting.
func Audit(runID string, res kanji.AuditResult) AuditSummary {
	return AuditSummary{
		RunID:      runID,
		Grade:      res.Grade,
		Total:      res.Total(),
		Coverage:   res.Coverage(),
		AtGrade:    Simple(res.AtGrade),
		AboveGrade: Simple(res.AboveGrade),
		BelowGrade: Simple(res.BelowGrade),
		Ungraded:   Simple(res.Ungraded),
		Missing:    Simple(res.Missing),
	}
}
