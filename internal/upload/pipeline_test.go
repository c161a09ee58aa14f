package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadMax2121/dataroom-client/internal/document"
	derrors "github.com/MadMax2121/dataroom-client/internal/errors"
)

type engineCall struct {
	op   string
	name string
}

// fakeEngine records the order of engine calls and fails uploads on
// demand.
type fakeEngine struct {
	calls     []engineCall
	failOn    map[string]error
	deleteErr error
	nextID    int
}

func (f *fakeEngine) UploadDocument(_ context.Context, fileName string, _ io.Reader, _ string, _ []string, folderID string) (*document.Document, error) {
	f.calls = append(f.calls, engineCall{op: "upload", name: fileName})

	if err := f.failOn[fileName]; err != nil {
		return nil, err
	}

	f.nextID++

	return &document.Document{
		ID:       fmt.Sprintf("up-%d", f.nextID),
		Name:     fileName,
		FolderID: folderID,
	}, nil
}

func (f *fakeEngine) DeleteDocument(_ context.Context, documentID string) error {
	f.calls = append(f.calls, engineCall{op: "delete", name: documentID})

	return f.deleteErr
}

func newTestPipeline(engine Engine, onProgress func(Progress)) *Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPipeline(engine, logger, 10*time.Millisecond, onProgress)
}

func TestRun_UploadsInOrderWithProgress(t *testing.T) {
	engine := &fakeEngine{}

	var seen []Progress
	p := newTestPipeline(engine, func(pr Progress) { seen = append(seen, pr) })

	batch := NewBatch(folderWith(), []*SelectedFile{
		{Name: "a.pdf", Content: strings.NewReader("a")},
		{Name: "b.pdf", Content: strings.NewReader("b")},
		{Name: "c.pdf", Content: strings.NewReader("c")},
	})

	results, err := p.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "up-1", results[0].Document.ID)

	assert.Equal(t, []engineCall{
		{op: "upload", name: "a.pdf"},
		{op: "upload", name: "b.pdf"},
		{op: "upload", name: "c.pdf"},
	}, engine.calls)

	assert.Equal(t, []Progress{
		{Uploaded: 1, Total: 3, Percent: 33},
		{Uploaded: 2, Total: 3, Percent: 67},
		{Uploaded: 3, Total: 3, Percent: 100},
	}, seen)

	assert.Empty(t, batch.Files, "transient entities cleared on completion")
}

func TestRun_EmptyBatchMakesNoRemoteCalls(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	_, err := p.Run(context.Background(), NewBatch(folderWith(), nil))
	assert.ErrorIs(t, err, derrors.ErrEmptyBatch)
	assert.Empty(t, engine.calls)
}

func TestRun_SkipsUnresolvedDuplicates(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	folder := folderWith("a.pdf")
	batch := NewBatch(folder, []*SelectedFile{
		{Name: "a.pdf"}, // duplicate, never resolved
		{Name: "b.pdf"},
	})

	results, err := p.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b.pdf", results[0].Name)
}

func TestRun_AllUnresolvedIsEmpty(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	batch := NewBatch(folderWith("a.pdf"), []*SelectedFile{{Name: "a.pdf"}})

	_, err := p.Run(context.Background(), batch)
	assert.ErrorIs(t, err, derrors.ErrEmptyBatch)
	assert.Empty(t, engine.calls)
}

func TestRun_ReplaceDeletesExistingFirst(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	folder := folderWith("Report.pdf")
	existingID := folder.Documents[0].ID

	batch := NewBatch(folder, []*SelectedFile{{Name: "Report.pdf"}})
	require.NoError(t, batch.Resolve("Report.pdf", Replace))

	results, err := p.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Replaced)

	assert.Equal(t, []engineCall{
		{op: "delete", name: existingID},
		{op: "upload", name: "Report.pdf"},
	}, engine.calls)
}

func TestRun_ReplaceDeleteFailureDoesNotAbort(t *testing.T) {
	engine := &fakeEngine{deleteErr: fmt.Errorf("remote refused")}
	p := newTestPipeline(engine, nil)

	folder := folderWith("Report.pdf")
	batch := NewBatch(folder, []*SelectedFile{{Name: "Report.pdf"}})
	batch.ResolveAll(Replace)

	results, err := p.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Replaced)
	assert.Equal(t, "upload", engine.calls[1].op)
}

func TestRun_KeepBothUploadsUnderNumberedName(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	folder := folderWith("Report.pdf", "Report (1).pdf")
	batch := NewBatch(folder, []*SelectedFile{{Name: "Report.pdf"}})
	require.NoError(t, batch.Resolve("Report.pdf", KeepBoth))

	results, err := p.Run(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, "Report (2).pdf", results[0].Name)
	assert.Equal(t, "Report (2).pdf", engine.calls[0].name)
}

func TestRun_UploadFailureAbortsRemainingBatch(t *testing.T) {
	engine := &fakeEngine{failOn: map[string]error{"b.pdf": fmt.Errorf("disk full")}}
	p := newTestPipeline(engine, nil)

	batch := NewBatch(folderWith(), []*SelectedFile{
		{Name: "a.pdf"},
		{Name: "b.pdf"},
		{Name: "c.pdf"},
	})

	results, err := p.Run(context.Background(), batch)
	require.Error(t, err)

	// The first file stays committed; the third is never attempted.
	require.Len(t, results, 1)
	assert.Equal(t, "a.pdf", results[0].Name)
	assert.Equal(t, []engineCall{
		{op: "upload", name: "a.pdf"},
		{op: "upload", name: "b.pdf"},
	}, engine.calls)
	assert.False(t, p.Success())
}

func TestRun_CancelledBatch(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	batch := NewBatch(folderWith(), []*SelectedFile{{Name: "a.pdf"}})
	batch.Cancel()

	_, err := p.Run(context.Background(), batch)
	assert.ErrorIs(t, err, derrors.ErrBatchCancelled)
	assert.Empty(t, engine.calls)
}

func TestRun_SuccessSignalAutoClears(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine, nil)

	_, err := p.Run(context.Background(), NewBatch(folderWith(), []*SelectedFile{{Name: "a.pdf"}}))
	require.NoError(t, err)
	assert.True(t, p.Success())

	assert.Eventually(t, func() bool { return !p.Success() }, time.Second, 5*time.Millisecond)
}
