package manual

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var ErrEmptyQuery = errors.New("empty query")

type Mode string

const (
	MatchTerms     Mode = "fts"   // all words of the query, ranked by hits
	MatchSubstring Mode = "like"  // the query as a substring, in page order
	MatchRegexp    Mode = "regex" // the query as a regular expression, in page order
)

// Query describes a search. All modes ignore case.
type Query struct {
	Mode    Mode
	Text    string
	Limit   int // maximum number of results, 0 for all
	Context int // characters around each match, 0 for no contexts
}

type Result struct {
	Num      int      `json:"page_num"`
	Chars    int      `json:"char_count"`
	Tables   int      `json:"table_count"`
	Hits     int      `json:"hits"`
	Contexts []string `json:"contexts,omitempty"`
}

type matcher struct {
	count     func(text string) int
	highlight *regexp.Regexp
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

func (q *Query) matcher() (*matcher, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrEmptyQuery
	}

	switch q.Mode {
	case MatchTerms:
		fold := cases.Fold()
		terms := words(fold.String(q.Text))
		if len(terms) == 0 {
			return nil, ErrEmptyQuery
		}
		quoted := make([]string, len(terms))
		for i, t := range terms {
			quoted[i] = regexp.QuoteMeta(t)
		}
		return &matcher{
			count: func(text string) int {
				found := make(map[string]int, len(terms))
				for _, w := range words(text) {
					w = fold.String(w)
					if slices.Contains(terms, w) {
						found[w]++
					}
				}
				hits := 0
				for _, t := range terms {
					if found[t] == 0 {
						return 0
					}
					hits += found[t]
				}
				return hits
			},
			highlight: regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`),
		}, nil
	case MatchSubstring:
		return patternMatcher(regexp.MustCompile("(?i)" + regexp.QuoteMeta(q.Text))), nil
	case MatchRegexp:
		re, err := regexp.Compile("(?i)" + q.Text)
		if err != nil {
			return nil, err
		}
		return patternMatcher(re), nil
	}
	return nil, fmt.Errorf("unknown search mode %q", q.Mode)
}

func patternMatcher(re *regexp.Regexp) *matcher {
	return &matcher{
		count: func(text string) int {
			hits := 0
			for _, loc := range re.FindAllStringIndex(text, -1) {
				if loc[0] != loc[1] {
					hits++
				}
			}
			return hits
		},
		highlight: re,
	}
}

// Search returns the pages matching q.
func (idx *Index) Search(q Query) ([]Result, error) {
	m, err := q.matcher()
	if err != nil {
		return nil, err
	}

	results := []Result{}
	for i := range idx.Pages {
		p := &idx.Pages[i]
		hits := m.count(p.Text)
		if hits == 0 {
			continue
		}
		results = append(results, Result{
			Num:    p.Num,
			Chars:  p.Chars(),
			Tables: len(p.Tables),
			Hits:   hits,
		})
		if q.Mode != MatchTerms && len(results) == q.Limit {
			break
		}
	}
	if q.Mode == MatchTerms {
		slices.SortStableFunc(results, func(a, b Result) int { return cmp.Compare(b.Hits, a.Hits) })
	}
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}

	if q.Context > 0 {
		for i := range results {
			results[i].Contexts = contexts(idx.Page(results[i].Num).Text, m.highlight, q.Context)
		}
	}
	return results, nil
}

// contexts returns every match of re in text with n characters on both
// sides. The match is highlighted in Markdown bold, line breaks become
// spaces.
func contexts(text string, re *regexp.Regexp, n int) []string {
	var ctxs []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		start := loc[0]
		for i := 0; i < n && start > 0; i++ {
			_, size := utf8.DecodeLastRuneInString(text[:start])
			start -= size
		}
		end := loc[1]
		for i := 0; i < n && end < len(text); i++ {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}
		ctx := text[start:loc[0]] + "**" + text[loc[0]:loc[1]] + "**" + text[loc[1]:end]
		ctxs = append(ctxs, strings.Join(strings.Split(ctx, "\n"), " "))
	}
	return ctxs
}
