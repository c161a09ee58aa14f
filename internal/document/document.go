// Package document defines the canonical local model for folders and
// documents, plus the mapper that normalizes raw remote records into it.
package document

import (
	"encoding/json"
	"strings"
	"time"
)

// Type is the normalized file category for a document. It is a closed set;
// anything the mapper cannot classify becomes TypeUnknown.
type Type string

const (
	TypePDF        Type = "PDF"
	TypeExcel      Type = "EXCEL"
	TypeWord       Type = "WORD"
	TypePowerPoint Type = "POWERPOINT"
	TypeImage      Type = "IMAGE"
	TypeCSV        Type = "CSV/ODS"
	TypeText       Type = "TEXT"
	TypeArchive    Type = "ARCHIVE"
	TypeUnknown    Type = "UNKNOWN"
)

// Document is the canonical local form of a remote document record.
//
// SizeBytes, CreatedAt and UpdatedAt are nullable and hold the raw values
// from the remote record. Sorting always uses these raw values, never the
// formatted display strings.
type Document struct {
	ID        string
	Name      string
	Type      Type
	SizeBytes *int64
	CreatedAt *time.Time
	UpdatedAt *time.Time
	FolderID  string
	Tags      []string

	// RemoteRef is the original remote record, kept verbatim so update
	// operations can round-trip fields this client does not model.
	RemoteRef json.RawMessage
}

// FolderKind distinguishes private folders from team folders.
type FolderKind string

const (
	KindPrivate FolderKind = "private"
	KindTeam    FolderKind = "team"
)

// Folder is a node in the local tree. Documents holds insertion order;
// display order is computed by the search package and never stored.
type Folder struct {
	ID        string
	Name      string
	Kind      FolderKind
	Documents []*Document
}

// Contains reports whether the folder currently holds a document with the
// given id.
func (f *Folder) Contains(documentID string) bool {
	for _, d := range f.Documents {
		if d.ID == documentID {
			return true
		}
	}

	return false
}

// Remove deletes the document with the given id from the folder and returns
// it. Returns nil if the folder does not hold the document.
func (f *Folder) Remove(documentID string) *Document {
	for i, d := range f.Documents {
		if d.ID == documentID {
			f.Documents = append(f.Documents[:i], f.Documents[i+1:]...)
			return d
		}
	}

	return nil
}

// FindByName returns the first document whose name equals name
// case-insensitively, or nil.
func (f *Folder) FindByName(name string) *Document {
	for _, d := range f.Documents {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}

	return nil
}
