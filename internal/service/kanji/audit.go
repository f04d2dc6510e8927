package kanji

import (
	"github.com/heartmarshall/kanjigap/internal/domain"
)

// AuditResult classifies a deck's kanji against the grade the deck claims to
// cover. Each bucket is sorted by domain.SortEntries.
type AuditResult struct {
	Grade      int                 `json:"grade"`
	AtGrade    []domain.KanjiEntry `json:"at_grade"`
	AboveGrade []domain.KanjiEntry `json:"above_grade"`
	BelowGrade []domain.KanjiEntry `json:"below_grade"`
	Ungraded   []domain.KanjiEntry `json:"ungraded"`
	// Missing is the grade's todo list: entries at grade not in the deck.
	Missing []domain.KanjiEntry `json:"missing"`
}

// Audit buckets entries by their grade relative to grade and computes the
// grade entries the deck lacks.
func Audit(dict *domain.Dictionary, grade int, entries []domain.KanjiEntry) AuditResult {
	res := AuditResult{
		Grade:      grade,
		AtGrade:    []domain.KanjiEntry{},
		AboveGrade: []domain.KanjiEntry{},
		BelowGrade: []domain.KanjiEntry{},
		Ungraded:   []domain.KanjiEntry{},
	}
	seen := make(KnownSet, len(entries))
	for _, e := range entries {
		if seen.Has(e.Literal) {
			continue
		}
		seen[e.Literal] = struct{}{}

		switch {
		case e.Grade == grade:
			res.AtGrade = append(res.AtGrade, e)
		case !e.IsGraded():
			res.Ungraded = append(res.Ungraded, e)
		case e.Grade > grade:
			res.AboveGrade = append(res.AboveGrade, e)
		default:
			res.BelowGrade = append(res.BelowGrade, e)
		}
	}
	domain.SortEntries(res.AtGrade)
	domain.SortEntries(res.AboveGrade)
	domain.SortEntries(res.BelowGrade)
	domain.SortEntries(res.Ungraded)
	res.Missing = Gap(dict, grade, entries)
	return res
}

// Total returns the number of distinct entries audited.
func (r AuditResult) Total() int {
	return len(r.AtGrade) + len(r.AboveGrade) + len(r.BelowGrade) + len(r.Ungraded)
}

// Coverage returns the fraction of the grade the deck covers, in [0, 1].
// A grade with no entries has coverage 0.
func (r AuditResult) Coverage() float64 {
	total := len(r.AtGrade) + len(r.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(r.AtGrade)) / float64(total)
}
