// Package search — query parsing and tokenization.
package search

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrBadQuery is returned when a search query is empty or cannot be parsed
// (e.g. an unterminated quote or a field scope with no value).
var ErrBadQuery = errors.New("malformed search query")

// term is one parsed unit of a query: an optional field scope plus the
// token set of its value. A quoted phrase yields a multi-token term.
type term struct {
	field  string
	tokens map[string]struct{}
}

// lower performs Unicode-aware, locale-independent lowercasing.
var lower = cases.Lower(language.Und)

// wordRE extracts letter/digit runs; "2020-01-01" tokenizes to 2020, 01, 01.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

// tokenize splits s into its lowercase token set.
func tokenize(s string) map[string]struct{} {
	words := wordRE.FindAllString(lower.String(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// normalizeField canonicalizes a field name for scoped lookups
// ("lastName" and "lastname" address the same field).
func normalizeField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseQuery splits a query string into terms.
//
// Grammar, per unit:
//
//	term   = [field ":"] value
//	value  = quoted | bare
//	quoted = '"' ... '"'   (whitespace preserved inside, matched as a phrase)
//	bare   = run of non-whitespace characters
//
// An unterminated quote, a field scope with an empty value, or a query with
// no terms at all yields ErrBadQuery.
func parseQuery(q string) ([]term, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrBadQuery
	}

	var terms []term
	i := 0
	runes := []rune(q)
	for i < len(runes) {
		// Skip whitespace between terms.
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
			i++
		}
		if i >= len(runes) {
			break
		}

		// Optional field scope: identifier followed by ':'.
		field := ""
		if j := scanFieldScope(runes, i); j > i {
			field = normalizeField(string(runes[i : j-1]))
			i = j
		}

		// Value: quoted phrase or bare token.
		var raw string
		if i < len(runes) && runes[i] == '"' {
			end := indexRune(runes, i+1, '"')
			if end < 0 {
				return nil, ErrBadQuery
			}
			raw = string(runes[i+1 : end])
			i = end + 1
		} else {
			start := i
			for i < len(runes) && runes[i] != ' ' && runes[i] != '\t' {
				i++
			}
			raw = string(runes[start:i])
		}

		toks := tokenize(raw)
		if len(toks) == 0 {
			if field != "" {
				return nil, ErrBadQuery
			}
			continue
		}
		terms = append(terms, term{field: field, tokens: toks})
	}

	if len(terms) == 0 {
		return nil, ErrBadQuery
	}
	return terms, nil
}

// compileTerms lowers exported Terms into the parsed form shared with the
// string syntax, under the same validation rules: a term whose text holds no
// tokens is dropped when unscoped and rejected when field-scoped, and a query
// with no surviving terms is malformed.
func compileTerms(query []Term) ([]term, error) {
	var terms []term
	for _, t := range query {
		field := normalizeField(t.Field)
		toks := tokenize(t.Text)
		if len(toks) == 0 {
			if field != "" {
				return nil, ErrBadQuery
			}
			continue
		}
		terms = append(terms, term{field: field, tokens: toks})
	}
	if len(terms) == 0 {
		return nil, ErrBadQuery
	}
	return terms, nil
}

// scanFieldScope returns the index just past "identifier:" starting at i,
// or i when no field scope is present.
func scanFieldScope(runes []rune, i int) int {
	j := i
	for j < len(runes) && (isIdentRune(runes[j])) {
		j++
	}
	if j > i && j < len(runes) && runes[j] == ':' {
		return j + 1
	}
	return i
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func indexRune(runes []rune, from int, want rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == want {
			return i
		}
	}
	return -1
}

// sortResults orders hits by score descending, then id ascending, so equal
// scores page deterministically.
func sortResults(hits []Result) {
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].ID < hits[b].ID
	})
}
