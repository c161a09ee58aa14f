// Package errors defines sentinel errors shared across internal packages.
package errors

import "errors"

// Tree lookup errors.
var (
	ErrFolderNotFound   = errors.New("folder not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoActiveFolder   = errors.New("no active folder")
)

// Input validation errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrEmptyBatch = errors.New("nothing to upload")
)

// Upload workflow errors.
var (
	ErrUnresolvedDuplicates = errors.New("unresolved duplicate candidates")
	ErrBatchCancelled       = errors.New("upload batch cancelled")
)
