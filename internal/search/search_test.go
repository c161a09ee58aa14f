package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadMax2121/dataroom-client/internal/document"
)

func doc(id, name string) *document.Document {
	return &document.Document{ID: id, Name: name}
}

func TestScore_NameMatching(t *testing.T) {
	tests := []struct {
		name      string
		docName   string
		query     string
		wantMatch bool
		wantScore int
	}{
		{"exact case-insensitive", "report.pdf", "Report.PDF", true, scoreExact},
		{"prefix", "Report.pdf", "rep", true, scorePrefix},
		{"word prefix", "Q1 Report.pdf", "rep", true, scoreWordPrefix},
		{"no match", "xyz.pdf", "rep", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Score(doc("1", tt.docName), tt.query)
			assert.Equal(t, tt.wantMatch, ok)

			if tt.wantMatch {
				assert.Equal(t, tt.wantScore, got)
			}
		})
	}
}

func TestScore_SubsequenceRange(t *testing.T) {
	got, ok := Score(doc("1", "Prreport.pdf"), "rep")
	require.True(t, ok)
	assert.GreaterOrEqual(t, got, 100)
	assert.Less(t, got, 400)
}

func TestScore_EmptyQueryMatchesAll(t *testing.T) {
	got, ok := Score(doc("1", "anything.bin"), "")
	assert.True(t, ok)
	assert.Zero(t, got)
}

func TestScore_MatchesTypeAndTags(t *testing.T) {
	d := &document.Document{
		ID:   "1",
		Name: "zzz.bin",
		Type: document.TypePDF,
		Tags: []string{"finance", "board deck"},
	}

	// Type tag exact match.
	got, ok := Score(d, "pdf")
	require.True(t, ok)
	assert.Equal(t, scoreExact, got)

	// Tag word-prefix match.
	got, ok = Score(d, "dec")
	require.True(t, ok)
	assert.Equal(t, scoreWordPrefix, got)
}

func TestScore_BestFieldWins(t *testing.T) {
	d := &document.Document{
		ID:   "1",
		Name: "Report.pdf",      // prefix match for "rep": 900
		Tags: []string{"rep"},   // exact match for "rep": 1000
		Type: document.TypeWord, // no match
	}

	got, ok := Score(d, "rep")
	require.True(t, ok)
	assert.Equal(t, scoreExact, got)
}

func TestSearch_OrdersByDescendingScore(t *testing.T) {
	docs := []*document.Document{
		doc("sub", "Prreport.pdf"),  // subsequence
		doc("word", "Q1 Report.pdf"), // word prefix, 800
		doc("exact", "rep"),          // exact, 1000
		doc("none", "xyz.pdf"),       // excluded
		doc("prefix", "Report.pdf"),  // prefix, 900
	}

	got := Search(docs, "rep")

	require.Len(t, got, 4)
	assert.Equal(t, "exact", got[0].ID)
	assert.Equal(t, "prefix", got[1].ID)
	assert.Equal(t, "word", got[2].ID)
	assert.Equal(t, "sub", got[3].ID)
}

func TestSearch_EmptyQueryReturnsInputOrder(t *testing.T) {
	docs := []*document.Document{doc("b", "b"), doc("a", "a")}

	got := Search(docs, "")

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	docs := []*document.Document{doc("1", "b.pdf"), doc("2", "a.pdf")}

	_ = Search(docs, "pdf")
	_ = Sort(docs, SortByName, Asc)

	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, "2", docs[1].ID)
}
