package search

import (
	"fmt"
	"strings"
)

// Kind selects which match rule a query runs under.
type Kind int

const (
	KindSubject Kind = iota
	KindTags
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindSubject:
		return "subject"
	case KindTags:
		return "tags"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Query is one search request: a kind plus its case-folded terms.
// Subject and date queries carry a single term; tag queries carry one
// or more.
type Query struct {
	Kind  Kind
	Terms []string
}

// NewQuery folds and trims raw input into a Query, dropping empty
// terms. Tag input is comma-separated; the other kinds take the line
// as one term.
func NewQuery(kind Kind, input string) Query {
	var raw []string
	if kind == KindTags {
		raw = strings.Split(input, ",")
	} else {
		raw = []string{input}
	}

	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return Query{Kind: kind, Terms: terms}
}

func (q Query) Empty() bool {
	return len(q.Terms) == 0
}

// Describe renders the query for result headers and status lines,
// e.g. `tags "finance, q1"`.
func (q Query) Describe() string {
	return fmt.Sprintf("%s %q", q.Kind, strings.Join(q.Terms, ", "))
}
