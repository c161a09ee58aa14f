package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadMax2121/dataroom-client/internal/document"
)

func ts(day int) *time.Time {
	t := time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func size(n int64) *int64 { return &n }

func TestDefaultDirection(t *testing.T) {
	assert.Equal(t, Desc, DefaultDirection(SortByDate))
	assert.Equal(t, Asc, DefaultDirection(SortByName))
	assert.Equal(t, Asc, DefaultDirection(SortBySize))
}

func TestDirection_Toggle(t *testing.T) {
	assert.Equal(t, Desc, Asc.Toggle())
	assert.Equal(t, Asc, Desc.Toggle())
}

func TestSort_ByNameAscending(t *testing.T) {
	docs := []*document.Document{
		{ID: "1", Name: "banana.pdf"},
		{ID: "2", Name: "Apple.pdf"},
		{ID: "3", Name: "cherry.pdf"},
	}

	got := Sort(docs, SortByName, Asc)

	require.Len(t, got, 3)
	assert.Equal(t, "Apple.pdf", got[0].Name)
	assert.Equal(t, "banana.pdf", got[1].Name)
	assert.Equal(t, "cherry.pdf", got[2].Name)
}

func TestSort_ByDateDescending(t *testing.T) {
	docs := []*document.Document{
		{ID: "old", UpdatedAt: ts(1)},
		{ID: "new", UpdatedAt: ts(20)},
		{ID: "undated"}, // missing dates sort as the minimum
		{ID: "created-only", CreatedAt: ts(10)},
	}

	got := Sort(docs, SortByDate, Desc)

	require.Len(t, got, 4)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "created-only", got[1].ID)
	assert.Equal(t, "old", got[2].ID)
	assert.Equal(t, "undated", got[3].ID)
}

func TestSort_UpdatedAtWinsOverCreatedAt(t *testing.T) {
	docs := []*document.Document{
		// Created late but updated early: the update timestamp governs.
		{ID: "a", CreatedAt: ts(25), UpdatedAt: ts(2)},
		{ID: "b", CreatedAt: ts(1), UpdatedAt: ts(15)},
	}

	got := Sort(docs, SortByDate, Desc)

	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestSort_BySize(t *testing.T) {
	docs := []*document.Document{
		{ID: "big", SizeBytes: size(5000)},
		{ID: "small", SizeBytes: size(10)},
		{ID: "unknown"}, // missing size counts as zero
	}

	got := Sort(docs, SortBySize, Asc)

	assert.Equal(t, "unknown", got[0].ID)
	assert.Equal(t, "small", got[1].ID)
	assert.Equal(t, "big", got[2].ID)
}

func TestApply_QuerySupersedesSort(t *testing.T) {
	docs := []*document.Document{
		{ID: "1", Name: "Alpha Report.pdf", UpdatedAt: ts(1)},
		{ID: "2", Name: "report.pdf", UpdatedAt: ts(20)},
	}

	// With a query, relevance ordering wins: "report.pdf" is a prefix
	// match and outranks the newer word-prefix match.
	got := Apply(docs, "report", SortByDate, Desc)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)

	// Without a query, the plain sort applies.
	got = Apply(docs, "", SortByDate, Desc)
	assert.Equal(t, "2", got[0].ID)

	got = Apply(docs, "", SortByName, Asc)
	assert.Equal(t, "1", got[0].ID)
}
