package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/MadMax2121/dataroom-client/internal/document"
	derrors "github.com/MadMax2121/dataroom-client/internal/errors"
)

// Engine is the subset of synchronization-engine operations the pipeline
// needs. The pipeline never mutates the tree directly.
type Engine interface {
	UploadDocument(ctx context.Context, fileName string, content io.Reader, title string, tags []string, folderID string) (*document.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
}

// Progress is the running upload count for one batch.
type Progress struct {
	Uploaded int
	Total    int
	Percent  int
}

func progressAt(uploaded, total int) Progress {
	return Progress{
		Uploaded: uploaded,
		Total:    total,
		Percent:  int(math.Round(float64(uploaded) / float64(total) * 100)),
	}
}

// Result is the per-file outcome of a pipeline run.
type Result struct {
	Name     string
	Document *document.Document
	Replaced bool
}

// Pipeline uploads a resolved batch strictly sequentially: each file's
// possible replace-delete, upload and folder association complete before
// the next file starts, so progress accounting and delete-then-recreate
// ordering are race-free without any locking.
type Pipeline struct {
	engine      Engine
	logger      *slog.Logger
	noticeDelay time.Duration
	onProgress  func(Progress)

	mu      sync.Mutex
	success bool
}

// NewPipeline creates a pipeline over the given engine. noticeDelay is how
// long the success signal stays set after a completed batch. onProgress,
// when non-nil, is called after every uploaded file.
func NewPipeline(engine Engine, logger *slog.Logger, noticeDelay time.Duration, onProgress func(Progress)) *Pipeline {
	return &Pipeline{
		engine:      engine,
		logger:      logger,
		noticeDelay: noticeDelay,
		onProgress:  onProgress,
	}
}

// Success reports whether a batch completed recently. It is set on full
// batch completion and auto-clears after the configured delay.
func (p *Pipeline) Success() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.success
}

func (p *Pipeline) markSuccess() {
	p.mu.Lock()
	p.success = true
	p.mu.Unlock()

	time.AfterFunc(p.noticeDelay, func() {
		p.mu.Lock()
		p.success = false
		p.mu.Unlock()
	})
}

// Run uploads the batch in order. Unresolved duplicates are skipped; when
// nothing remains the store is never contacted and ErrEmptyBatch is
// returned. A failed upload call aborts the remaining files and is
// returned alongside the results of the files already committed; there is
// no batch-level rollback.
func (p *Pipeline) Run(ctx context.Context, batch *Batch) ([]Result, error) {
	if batch.Cancelled() {
		return nil, derrors.ErrBatchCancelled
	}

	files := make([]*SelectedFile, 0, len(batch.Files))

	for _, f := range batch.Files {
		if f.IsDuplicate && !f.WillRename && !f.WillReplace {
			p.logger.Warn("skipping unresolved duplicate candidate",
				slog.String("batch_id", batch.ID),
				slog.String("name", f.Name),
			)

			continue
		}

		files = append(files, f)
	}

	if len(files) == 0 {
		return nil, derrors.ErrEmptyBatch
	}

	total := len(files)
	results := make([]Result, 0, total)

	p.logger.Info("upload batch started",
		slog.String("batch_id", batch.ID),
		slog.String("folder_id", batch.Folder.ID),
		slog.Int("files", total),
	)

	for i, f := range files {
		replaced := false

		if f.WillReplace {
			if existing := batch.Folder.FindByName(f.Name); existing != nil {
				if err := p.engine.DeleteDocument(ctx, existing.ID); err != nil {
					// Accept a possible duplicate over a stalled batch.
					p.logger.Warn("replace-delete failed, uploading anyway",
						slog.String("batch_id", batch.ID),
						slog.String("document_id", existing.ID),
						slog.String("error", err.Error()),
					)
				} else {
					replaced = true
				}
			}
		}

		name := f.Name
		if f.WillRename {
			name = FinalName(batch.Folder, f.Name)
		}

		doc, err := p.engine.UploadDocument(ctx, name, f.Content, "", f.Tags, batch.Folder.ID)
		if err != nil {
			// Files already uploaded stay committed; the rest of the
			// batch is abandoned.
			p.logger.Error("upload failed, aborting remaining batch",
				slog.String("batch_id", batch.ID),
				slog.String("name", name),
				slog.Int("remaining", total-i-1),
				slog.String("error", err.Error()),
			)

			return results, fmt.Errorf("uploading %s: %w", name, err)
		}

		results = append(results, Result{Name: name, Document: doc, Replaced: replaced})

		if p.onProgress != nil {
			p.onProgress(progressAt(i+1, total))
		}
	}

	p.logger.Info("upload batch completed",
		slog.String("batch_id", batch.ID),
		slog.Int("files", total),
	)

	p.markSuccess()
	batch.Files = nil

	return results, nil
}
