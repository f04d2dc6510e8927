// Package kanjidic parses the KANJIDIC2 XML dictionary into kanji entries.
// Pure function: reader in, domain structs out. This is the import step that
// produces the dictionary JSON the other commands consume.
//
// Document shape (abridged):
//
//	<kanjidic2>
//	  <character>
//	    <literal>亜</literal>
//	    <misc><grade>8</grade><stroke_count>7</stroke_count></misc>
//	    <reading_meaning>
//	      <rmgroup>
//	        <reading r_type="ja_on">ア</reading>
//	        <reading r_type="ja_kun">つ.ぐ</reading>
//	        <meaning>Asia</meaning>
//	        <meaning m_lang="fr">Asie</meaning>
//	      </rmgroup>
//	    </reading_meaning>
//	  </character>
//	</kanjidic2>
package kanjidic

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/kanjigap/internal/domain"
)

const (
	readingOn  = "ja_on"
	readingKun = "ja_kun"
)

// KANJIDIC2 XML deserialization types.

type character struct {
	Literal  string    `xml:"literal"`
	Misc     misc      `xml:"misc"`
	RMGroups []rmgroup `xml:"reading_meaning>rmgroup"`
}

type misc struct {
	Grade        string   `xml:"grade"`
	StrokeCounts []string `xml:"stroke_count"`
}

type rmgroup struct {
	Readings []reading `xml:"reading"`
	Meanings []meaning `xml:"meaning"`
}

type reading struct {
	Type  string `xml:"r_type,attr"`
	Value string `xml:",chardata"`
}

type meaning struct {
	Lang  *string `xml:"m_lang,attr"`
	Value string  `xml:",chardata"`
}

// Stats holds parser statistics for logging.
type Stats struct {
	Characters int
	Graded     int
	NoLiteral  int
	Duplicates int
}

// ParseFile opens path and parses it.
func ParseFile(path string) ([]domain.KanjiEntry, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open kanjidic: %w", err)
	}
	defer f.Close()

	entries, stats, err := Parse(f)
	if err != nil {
		return nil, stats, fmt.Errorf("parse kanjidic %s: %w", path, err)
	}
	return entries, stats, nil
}

// Parse streams <character> elements from r. Characters without a literal are
// skipped and a repeated literal keeps its first occurrence. Missing or
// malformed grade and stroke counts become 0.
func Parse(r io.Reader) ([]domain.KanjiEntry, Stats, error) {
	d := xml.NewDecoder(r)
	// The distributed file declares its DTD inline; map HTML entities so a
	// stray named entity does not abort the whole import.
	d.Entity = xml.HTMLEntity

	var (
		stats   Stats
		entries []domain.KanjiEntry
		seen    = make(map[string]bool)
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read token: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "character" {
			continue
		}

		var ch character
		if err := d.DecodeElement(&ch, &start); err != nil {
			return nil, stats, fmt.Errorf("decode character %d: %w", stats.Characters+1, err)
		}
		stats.Characters++

		e := toEntry(ch)
		if e.Literal == "" {
			stats.NoLiteral++
			continue
		}
		if seen[e.Literal] {
			stats.Duplicates++
			continue
		}
		seen[e.Literal] = true
		if e.IsGraded() {
			stats.Graded++
		}
		entries = append(entries, e)
	}
	return entries, stats, nil
}

// toEntry maps a decoded character onto a KanjiEntry.
func toEntry(ch character) domain.KanjiEntry {
	e := domain.KanjiEntry{
		Literal: strings.TrimSpace(ch.Literal),
		Grade:   atoiOrZero(ch.Misc.Grade),
		Onyomi:  []string{},
		Kunyomi: []string{},
	}
	if len(ch.Misc.StrokeCounts) > 0 {
		// The first stroke_count is the accepted one; the rest are common miscounts.
		e.StrokeCount = atoiOrZero(ch.Misc.StrokeCounts[0])
	}

	for _, g := range ch.RMGroups {
		for _, rd := range g.Readings {
			switch rd.Type {
			case readingOn:
				e.Onyomi = append(e.Onyomi, rd.Value)
			case readingKun:
				e.Kunyomi = append(e.Kunyomi, rd.Value)
			}
		}
		for _, m := range g.Meanings {
			if isEnglish(m.Lang) {
				e.EnglishMeanings.Add(m.Value)
			}
		}
	}
	return e
}

// isEnglish reports whether a meaning is English. KANJIDIC2 leaves English
// meanings without an m_lang attribute; any m_lang, even "en", excludes it.
func isEnglish(lang *string) bool {
	return lang == nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
