// Package search provides a concurrency-safe in-memory document index, one
// instance per entity type, acting as the read-optimized mirror of the
// relational store. It is intentionally small and dependency-light:
//
//   - No logging in the library (callers decide how/what to log)
//   - Documents are flat {id, field→text} maps derived from entity rows
//   - Upsert/Delete are idempotent and keyed by entity id
//   - Deterministic scoring and sorting (stable order for ties)
//   - A query-string language with free terms, quoted phrases, and
//     field-scoped terms ("lastName:anderson", "id:5")
//
// Scoring uses Jaccard similarity between the query token set and the
// document's token set: score = |Q ∩ D| / |Q ∪ D|. Ties break by ascending
// document id so paginated results never shuffle between calls.
//
// The index is always derived state: the authoritative row lives in the
// entity store, and the caller re-reads it by id before indexing.
package search

import "sync"

// Document is the denormalized, searchable form of one entity row.
type Document struct {
	// ID is the entity's surrogate identity.
	ID int64
	// Fields maps a field name to its text value. Empty values are skipped.
	Fields map[string]string
}

// Result is one ranked hit.
type Result struct {
	ID    int64
	Score float64
}

// docEntry is the tokenized form kept per document.
type docEntry struct {
	// fields holds the token set per field (for field-scoped terms).
	fields map[string]map[string]struct{}
	// all is the union of every field's tokens (for free terms and scoring).
	all map[string]struct{}
}

// Index is a mutable, id-keyed document index safe for concurrent use.
type Index struct {
	name string

	mu   sync.RWMutex
	docs map[int64]docEntry
}

// NewIndex returns an empty index. The name identifies the entity type in
// logs and metrics; it does not affect matching.
func NewIndex(name string) *Index {
	return &Index{name: name, docs: make(map[int64]docEntry)}
}

// Name returns the entity-type name the index was created with.
func (ix *Index) Name() string { return ix.name }

// Upsert stores (or replaces) the document for doc.ID. Calling it twice with
// the same id leaves exactly one document; last write wins.
func (ix *Index) Upsert(doc Document) {
	e := docEntry{
		fields: make(map[string]map[string]struct{}, len(doc.Fields)),
		all:    make(map[string]struct{}),
	}
	for name, val := range doc.Fields {
		toks := tokenize(val)
		if len(toks) == 0 {
			continue
		}
		e.fields[normalizeField(name)] = toks
		for t := range toks {
			e.all[t] = struct{}{}
		}
	}

	ix.mu.Lock()
	ix.docs[doc.ID] = e
	ix.mu.Unlock()
}

// Delete removes the document for id. Deleting an absent id is a no-op.
func (ix *Index) Delete(id int64) {
	ix.mu.Lock()
	delete(ix.docs, id)
	ix.mu.Unlock()
}

// Len returns the number of documents currently indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Clear drops every document. Used by the rebuild path before re-feeding
// the index from the store.
func (ix *Index) Clear() {
	ix.mu.Lock()
	ix.docs = make(map[int64]docEntry)
	ix.mu.Unlock()
}

// Term is one unit of a structured query, for programmatic callers that
// build queries without going through the string syntax. Field restricts the
// term to one document field (empty matches anywhere); Text behaves like a
// quoted phrase: every one of its tokens must be present.
type Term struct {
	Field string
	Text  string
}

// Search evaluates the query string and returns the page of ranked hit ids
// plus the total number of hits. A document matches when at least one query
// term matches it (field-scoped terms only match inside their field).
// Returns ErrBadQuery for empty or unparsable input.
func (ix *Index) Search(query string, offset, limit int) ([]int64, int64, error) {
	terms, err := parseQuery(query)
	if err != nil {
		return nil, 0, err
	}
	return ix.searchParsed(terms, offset, limit)
}

// SearchTerms evaluates an already-structured query. It applies the same
// matching, scoring, and pagination rules as Search; the string syntax is
// just a front end for this form. Returns ErrBadQuery when the query has no
// usable terms or a field scope carries no text.
func (ix *Index) SearchTerms(query []Term, offset, limit int) ([]int64, int64, error) {
	terms, err := compileTerms(query)
	if err != nil {
		return nil, 0, err
	}
	return ix.searchParsed(terms, offset, limit)
}

func (ix *Index) searchParsed(terms []term, offset, limit int) ([]int64, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	// Union of all query tokens, for Jaccard scoring.
	qTokens := make(map[string]struct{})
	for _, t := range terms {
		for tok := range t.tokens {
			qTokens[tok] = struct{}{}
		}
	}
	if len(qTokens) == 0 {
		return nil, 0, ErrBadQuery
	}

	ix.mu.RLock()
	hits := make([]Result, 0, len(ix.docs))
	for id, e := range ix.docs {
		if !matches(terms, e) {
			continue
		}
		hits = append(hits, Result{ID: id, Score: jaccard(qTokens, e.all)})
	}
	ix.mu.RUnlock()

	sortResults(hits)

	total := int64(len(hits))
	if offset >= len(hits) {
		return []int64{}, total, nil
	}
	end := offset + limit
	if end > len(hits) {
		end = len(hits)
	}
	ids := make([]int64, 0, end-offset)
	for _, h := range hits[offset:end] {
		ids = append(ids, h.ID)
	}
	return ids, total, nil
}

// matches reports whether at least one term matches the document. This is
// the query-string default (OR across terms); a term with a field scope only
// inspects that field's tokens.
func matches(terms []term, e docEntry) bool {
	for _, t := range terms {
		var set map[string]struct{}
		if t.field == "" {
			set = e.all
		} else {
			set = e.fields[t.field]
		}
		if set == nil {
			continue
		}
		if containsAll(set, t.tokens) {
			return true
		}
	}
	return false
}

// containsAll reports whether every token of want is present in set. A
// multi-token term (quoted phrase) requires all of its tokens.
func containsAll(set, want map[string]struct{}) bool {
	if len(want) == 0 {
		return false
	}
	for tok := range want {
		if _, ok := set[tok]; !ok {
			return false
		}
	}
	return true
}

// jaccard computes |a ∩ b| / |a ∪ b|.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for t := range small {
		if _, ok := large[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
