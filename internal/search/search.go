// Package search scores documents against a free-text query and orders
// them by name, date or size. All functions are pure: inputs are never
// mutated and repeated calls give the same result.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/MadMax2121/dataroom-client/internal/document"
)

// Match scores, highest first. A query hits a document on its name, its
// type tag, or any of its tags; the best-scoring field wins.
const (
	scoreExact      = 1000
	scorePrefix     = 900
	scoreWordPrefix = 800

	// Subsequence matches score in [100, 400): a floor of 100, up to 300
	// for the density of the query within the field, plus 10 per
	// character of the longest consecutive run. Keeps every subsequence
	// match below the weakest word-prefix match.
	scoreSubseqFloor   = 100
	scoreSubseqDensity = 300
	scoreSubseqRunUnit = 10
)

// Score returns the best match score for doc against query and whether the
// document matched at all. An empty query matches everything with score 0.
func Score(doc *document.Document, query string) (int, bool) {
	if query == "" {
		return 0, true
	}

	fields := make([]string, 0, 2+len(doc.Tags))
	fields = append(fields, doc.Name, string(doc.Type))
	fields = append(fields, doc.Tags...)

	best := -1

	for _, field := range fields {
		if s, ok := scoreField(field, query); ok && s > best {
			best = s
		}
	}

	if best < 0 {
		return 0, false
	}

	return best, true
}

// scoreField scores a single field value against the query.
func scoreField(field, query string) (int, bool) {
	f := strings.ToLower(field)
	q := strings.ToLower(query)

	if f == "" || q == "" {
		return 0, false
	}

	if f == q {
		return scoreExact, true
	}

	if strings.HasPrefix(f, q) {
		return scorePrefix, true
	}

	for _, word := range splitWords(f) {
		if strings.HasPrefix(word, q) {
			return scoreWordPrefix, true
		}
	}

	return scoreSubsequence(f, q)
}

// splitWords breaks a field into words at whitespace and punctuation.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// scoreSubsequence matches every query character against the field in
// order (not necessarily contiguous). A full in-order match scores by the
// query's density within the field plus a bonus for the longest contiguous
// run; any unmatched query character means no match.
func scoreSubsequence(field, query string) (int, bool) {
	fr := []rune(field)
	qr := []rune(query)

	matched := 0
	longestRun := 0
	run := 0
	prevIdx := -2

	fi := 0
	for _, qc := range qr {
		found := false

		for ; fi < len(fr); fi++ {
			if fr[fi] == qc {
				if fi == prevIdx+1 {
					run++
				} else {
					run = 1
				}

				if run > longestRun {
					longestRun = run
				}

				prevIdx = fi
				matched++
				fi++
				found = true

				break
			}
		}

		if !found {
			return 0, false
		}
	}

	density := float64(matched) / float64(len(fr))
	score := scoreSubseqFloor + int(scoreSubseqDensity*density) + scoreSubseqRunUnit*longestRun

	return score, true
}

// scored pairs a document with its score for ordering.
type scored struct {
	doc   *document.Document
	score int
}

// Search returns the documents matching query, ordered by descending score.
// Ties keep their input order. An empty query returns all documents in
// input order; callers apply plain sorting in that case.
func Search(docs []*document.Document, query string) []*document.Document {
	if query == "" {
		out := make([]*document.Document, len(docs))
		copy(out, docs)

		return out
	}

	var matches []scored

	for _, d := range docs {
		if s, ok := Score(d, query); ok {
			matches = append(matches, scored{doc: d, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]*document.Document, len(matches))
	for i, m := range matches {
		out[i] = m.doc
	}

	return out
}
