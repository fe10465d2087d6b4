// Package search evaluates subject, tag and date queries against the
// vault. Every operation re-scans and re-reads the full vault; there
// is no persistent index and no ranking, results keep scan order.
package search

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/araddon/dateparse"

	"dynix/internal/parser"
	"dynix/internal/vault"
)

// digitTermPattern recognizes date terms already shaped like an ID
// prefix (`2024`, `202401`, `20240131-1530`); anything else is handed
// to the date parser for normalization.
var digitTermPattern = regexp.MustCompile(`^\d{1,8}(-\d{0,4})?$`)

// Match pairs a loaded note with its extracted metadata.
type Match struct {
	Note vault.Note
	Meta parser.Metadata
}

// ResultSet is the outcome of one query execution, consumed
// immediately by the caller and never persisted.
type ResultSet struct {
	Query   Query
	Matches []Match
	Skipped int
}

func (rs *ResultSet) Len() int {
	return len(rs.Matches)
}

// TagCount is one entry of the vault-wide tag survey.
type TagCount struct {
	Tag   string
	Notes int
}

// Engine runs queries over the notes a Scanner finds.
type Engine struct {
	scanner *vault.Scanner
}

func NewEngine(scanner *vault.Scanner) *Engine {
	return &Engine{scanner: scanner}
}

// Run dispatches q to the matching operation.
func (e *Engine) Run(q Query) (*ResultSet, error) {
	switch q.Kind {
	case KindSubject:
		return e.BySubject(firstTerm(q))
	case KindTags:
		return e.ByTags(q.Terms)
	case KindDate:
		return e.ByDate(firstTerm(q))
	default:
		return nil, fmt.Errorf("unknown query kind %d", q.Kind)
	}
}

// BySubject matches term as a case-folded substring of each note's
// subject; notes with no subject line fall back to their file name
// without extension.
func (e *Engine) BySubject(term string) (*ResultSet, error) {
	q := NewQuery(KindSubject, term)
	return e.filter(q, func(m Match) bool {
		return matchSubject(m, firstTerm(q))
	})
}

// ByTags matches notes where any query term and any note tag contain
// one another, case-insensitively. The containment is loose: a short
// term like "fin" matches "finance", and "ml" matches "html".
func (e *Engine) ByTags(terms []string) (*ResultSet, error) {
	q := NewQuery(KindTags, strings.Join(terms, ","))
	return e.filter(q, func(m Match) bool {
		return matchTags(m.Meta.Tags, q.Terms)
	})
}

// ByDate matches term as a prefix of each note's embedded ID code;
// notes without an ID never match. Terms that are not already a digit
// prefix are parsed as a calendar date and normalized to YYYYMMDD
// before matching.
func (e *Engine) ByDate(term string) (*ResultSet, error) {
	q := NewQuery(KindDate, term)
	normalized := normalizeDateTerm(firstTerm(q))
	return e.filter(q, func(m Match) bool {
		return matchDate(m.Meta.ID, normalized)
	})
}

// AllTags surveys the whole vault and returns every tag with the
// number of notes carrying it, sorted by tag.
func (e *Engine) AllTags() ([]TagCount, int, error) {
	notes, skipped, err := e.scanner.Scan()
	if err != nil {
		return nil, skipped, err
	}

	counts := make(map[string]int)
	for _, note := range notes {
		for _, tag := range parser.Extract(note.Raw).Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		tags = append(tags, TagCount{Tag: tag, Notes: n})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Tag < tags[j].Tag })

	return tags, skipped, nil
}

// filter performs the scan phase and keeps the notes for which keep
// reports true, preserving scan order.
func (e *Engine) filter(q Query, keep func(Match) bool) (*ResultSet, error) {
	rs := &ResultSet{Query: q}
	if q.Empty() {
		return rs, nil
	}

	notes, skipped, err := e.scanner.Scan()
	if err != nil {
		return nil, err
	}
	rs.Skipped = skipped

	for _, note := range notes {
		m := Match{Note: note, Meta: parser.Extract(note.Raw)}
		if keep(m) {
			rs.Matches = append(rs.Matches, m)
		}
	}
	return rs, nil
}

func matchSubject(m Match, term string) bool {
	if m.Meta.HasSubject() {
		return strings.Contains(strings.ToLower(m.Meta.Subject), term)
	}
	return strings.Contains(strings.ToLower(m.Note.Basename()), term)
}

func matchTags(tags, terms []string) bool {
	for _, term := range terms {
		for _, tag := range tags {
			if tagsRelated(tag, term) {
				return true
			}
		}
	}
	return false
}

// tagsRelated reports bidirectional substring containment between a
// note tag and a query term, both already lower-cased.
func tagsRelated(tag, term string) bool {
	return strings.Contains(tag, term) || strings.Contains(term, tag)
}

func matchDate(id, term string) bool {
	if id == "" || term == "" {
		return false
	}
	return strings.HasPrefix(id, term)
}

// normalizeDateTerm leaves digit-prefix terms untouched and converts
// calendar-date input (2024-01-31, Jan 31 2024, ...) to its YYYYMMDD
// form. Unparsable input passes through verbatim and simply matches
// nothing.
func normalizeDateTerm(term string) string {
	if term == "" || digitTermPattern.MatchString(term) {
		return term
	}
	parsed, err := dateparse.ParseAny(term)
	if err != nil {
		return term
	}
	return parsed.Format("20060102")
}

func firstTerm(q Query) string {
	if len(q.Terms) == 0 {
		return ""
	}
	return q.Terms[0]
}
