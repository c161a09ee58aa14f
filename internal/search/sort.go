package search

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MadMax2121/dataroom-client/internal/document"
)

// SortKey selects the attribute documents are ordered by.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultDirection returns the direction used when a sort key is first
// selected: newest-first for dates, ascending for everything else.
func DefaultDirection(key SortKey) Direction {
	if key == SortByDate {
		return Desc
	}

	return Asc
}

// Toggle flips a direction.
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}

	return Asc
}

// newCollator builds the locale-aware collator used for name ordering.
// Collators are stateful, so each Sort call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// sortDate is the raw timestamp used for date ordering: updatedAt, else
// createdAt, else the epoch-like minimum so undated documents sink to the
// old end.
func sortDate(d *document.Document) time.Time {
	if d.UpdatedAt != nil {
		return *d.UpdatedAt
	}

	if d.CreatedAt != nil {
		return *d.CreatedAt
	}

	return time.Time{}
}

// sortSize is the raw byte count used for size ordering; missing sizes
// count as zero.
func sortSize(d *document.Document) int64 {
	if d.SizeBytes == nil {
		return 0
	}

	return *d.SizeBytes
}

// Sort returns a copy of docs ordered by the given key and direction.
// Name ordering is locale-aware; date and size compare the raw values,
// never the formatted display strings.
func Sort(docs []*document.Document, key SortKey, dir Direction) []*document.Document {
	out := make([]*document.Document, len(docs))
	copy(out, docs)

	var less func(a, b *document.Document) bool

	switch key {
	case SortByDate:
		less = func(a, b *document.Document) bool {
			return sortDate(a).Before(sortDate(b))
		}
	case SortBySize:
		less = func(a, b *document.Document) bool {
			return sortSize(a) < sortSize(b)
		}
	default:
		coll := newCollator()
		less = func(a, b *document.Document) bool {
			return coll.CompareString(a.Name, b.Name) < 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}

		return less(out[i], out[j])
	})

	return out
}

// Apply combines the two display-ordering modes: while a query is present,
// relevance ordering supersedes the user-chosen sort; otherwise the plain
// sort applies.
func Apply(docs []*document.Document, query string, key SortKey, dir Direction) []*document.Document {
	if query != "" {
		return Search(docs, query)
	}

	return Sort(docs, key, dir)
}
