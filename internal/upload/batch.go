// Package upload implements the batch upload workflow: duplicate-name
// detection against the destination folder, per-file resolution decisions,
// and a strictly sequential pipeline that applies them.
package upload

import (
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MadMax2121/dataroom-client/internal/document"
	derrors "github.com/MadMax2121/dataroom-client/internal/errors"
)

// Decision is the per-file choice collected for a duplicate candidate.
type Decision string

const (
	// KeepBoth uploads under a numbered name alongside the existing
	// document.
	KeepBoth Decision = "keep_both"
	// Replace deletes the existing document before uploading.
	Replace Decision = "replace"
)

// SelectedFile is a pending upload candidate. It exists only for the
// duration of one batch and is discarded on completion or cancellation.
type SelectedFile struct {
	Name        string
	Content     io.Reader
	Tags        []string
	IsDuplicate bool
	WillRename  bool
	WillReplace bool
}

// Batch holds one upload batch against a destination folder. NewBatch
// performs duplicate detection; decisions are collected through Resolve
// and ResolveAll before the pipeline runs it.
type Batch struct {
	ID        string
	Folder    *document.Folder
	Files     []*SelectedFile
	cancelled bool
}

// NewBatch builds a batch for the given folder, flagging every candidate
// whose name matches an existing document. Matching is case-insensitive
// and exact; no fuzzy matching here.
func NewBatch(folder *document.Folder, files []*SelectedFile) *Batch {
	for _, f := range files {
		f.IsDuplicate = folder.FindByName(f.Name) != nil
	}

	return &Batch{
		ID:     uuid.NewString(),
		Folder: folder,
		Files:  files,
	}
}

// Duplicates returns the candidates that collide with an existing
// document.
func (b *Batch) Duplicates() []*SelectedFile {
	var dups []*SelectedFile

	for _, f := range b.Files {
		if f.IsDuplicate {
			dups = append(dups, f)
		}
	}

	return dups
}

// Resolve records the decision for the duplicate candidate with the given
// name.
func (b *Batch) Resolve(name string, d Decision) error {
	for _, f := range b.Files {
		if !f.IsDuplicate || !strings.EqualFold(f.Name, name) {
			continue
		}

		f.WillRename = d == KeepBoth
		f.WillReplace = d == Replace

		return nil
	}

	return fmt.Errorf("resolving %q: no such duplicate candidate: %w", name, derrors.ErrDocumentNotFound)
}

// ResolveAll bulk-assigns one decision to every pending duplicate.
func (b *Batch) ResolveAll(d Decision) {
	for _, f := range b.Files {
		if f.IsDuplicate {
			f.WillRename = d == KeepBoth
			f.WillReplace = d == Replace
		}
	}
}

// Resolved reports whether every duplicate candidate has an explicit
// decision. The pipeline refuses a batch until this holds.
func (b *Batch) Resolved() bool {
	for _, f := range b.Files {
		if f.IsDuplicate && !f.WillRename && !f.WillReplace {
			return false
		}
	}

	return true
}

// Cancel discards the batch. A cancelled batch makes no remote calls.
func (b *Batch) Cancel() {
	b.cancelled = true
	b.Files = nil
}

// Cancelled reports whether the batch was discarded.
func (b *Batch) Cancelled() bool {
	return b.cancelled
}

var numberedName = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// FinalName returns the keep-both upload name for fileName within folder:
// "{base} (n)"+ext where n is one greater than the highest (k) suffix
// among same-stem documents already present. The plain, unnumbered name
// counts as zero, so the first keep-both of "Report.pdf" next to
// "Report.pdf" and "Report (1).pdf" yields "Report (2).pdf". Computed
// fresh per call so earlier numbered copies are never reused.
func FinalName(folder *document.Folder, fileName string) string {
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)

	stem := base
	if m := numberedName.FindStringSubmatch(base); m != nil {
		stem = m[1]
	}

	highest := -1

	for _, doc := range folder.Documents {
		docExt := path.Ext(doc.Name)
		if !strings.EqualFold(docExt, ext) {
			continue
		}

		docBase := strings.TrimSuffix(doc.Name, docExt)

		n := -1

		switch {
		case strings.EqualFold(docBase, stem):
			n = 0
		default:
			m := numberedName.FindStringSubmatch(docBase)
			if m == nil || !strings.EqualFold(m[1], stem) {
				continue
			}

			parsed, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}

			n = parsed
		}

		if n > highest {
			highest = n
		}
	}

	if highest < 0 {
		return fileName
	}

	return fmt.Sprintf("%s (%d)%s", stem, highest+1, ext)
}
