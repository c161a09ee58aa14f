// Package dataroom implements the folder/document synchronization engine:
// the canonical in-memory tree of folders and documents, kept consistent
// with the remote store across create, rename, move, upload and delete
// operations.
//
// The engine is the sole owner of the tree. Other components (the upload
// pipeline, the duplicate workflow, the CLI) request mutations through its
// operations and never touch the tree directly. Operations are designed
// for a single interactive caller: calls interleave only at remote-call
// boundaries and the engine performs no internal locking.
package dataroom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"github.com/MadMax2121/dataroom-client/internal/document"
	derrors "github.com/MadMax2121/dataroom-client/internal/errors"
	"github.com/MadMax2121/dataroom-client/internal/search"
)

// Session holds the ambient per-user state: the folder operations target,
// the current search term and the sort preference. It is explicit engine
// state rather than package-level globals so tests can construct any
// session deterministically.
type Session struct {
	ActiveFolderID string
	Query          string
	SortKey        search.SortKey
	SortDir        search.Direction
}

// Engine owns the folder/document tree.
type Engine struct {
	store   RemoteStore
	logger  *slog.Logger
	folders []*document.Folder
	session Session
}

// NewEngine creates an engine over the given remote store. The tree is
// empty until Load is called.
func NewEngine(store RemoteStore, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
		session: Session{
			SortKey: search.SortByName,
			SortDir: search.DefaultDirection(search.SortByName),
		},
	}
}

// Load fetches the folder list and then every folder's documents,
// replacing the local tree. Per-folder document listings run concurrently;
// a single folder's listing failure leaves that folder empty rather than
// failing the whole load. The active folder is preserved when it still
// exists, otherwise the first folder becomes active.
func (e *Engine) Load(ctx context.Context) error {
	records, err := e.store.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("loading folders: %w", err)
	}

	folders := make([]*document.Folder, len(records))
	for i, rec := range records {
		folders[i] = &document.Folder{
			ID:   rec.ID.String(),
			Name: rec.Name,
			Kind: document.FolderKind(rec.Kind),
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, folder := range folders {
		folder := folder
		g.Go(func() error {
			raws, err := e.store.ListFolderDocuments(gctx, folder.ID)
			if err != nil {
				e.logger.Warn("listing folder documents failed, leaving folder empty",
					slog.String("folder_id", folder.ID),
					slog.String("error", err.Error()),
				)

				return nil
			}

			docs := make([]*document.Document, 0, len(raws))

			for _, raw := range raws {
				doc := document.MapRemote(raw)
				doc.FolderID = folder.ID
				docs = append(docs, doc)
			}

			folder.Documents = docs

			return nil
		})
	}

	_ = g.Wait()

	e.folders = folders

	if e.folder(e.session.ActiveFolderID) == nil {
		e.session.ActiveFolderID = ""
		if len(e.folders) > 0 {
			e.session.ActiveFolderID = e.folders[0].ID
		}
	}

	return nil
}

// Folders returns the folders in tree order. Callers must not mutate the
// returned folders; all mutations go through engine operations.
func (e *Engine) Folders() []*document.Folder {
	return e.folders
}

// Session returns a copy of the current session state.
func (e *Engine) Session() Session {
	return e.session
}

// RestoreSession replaces the session state, dropping an active folder id
// that no longer exists in the tree.
func (e *Engine) RestoreSession(s Session) {
	if s.SortKey == "" {
		s.SortKey = search.SortByName
	}

	if s.SortDir == "" {
		s.SortDir = search.DefaultDirection(s.SortKey)
	}

	if s.ActiveFolderID != "" && e.folder(s.ActiveFolderID) == nil {
		s.ActiveFolderID = ""
		if len(e.folders) > 0 {
			s.ActiveFolderID = e.folders[0].ID
		}
	}

	e.session = s
}

// ActiveFolder returns the folder uploads and searches target, or nil when
// no folder exists.
func (e *Engine) ActiveFolder() *document.Folder {
	return e.folder(e.session.ActiveFolderID)
}

// SetActiveFolder switches the active folder.
func (e *Engine) SetActiveFolder(folderID string) error {
	if e.folder(folderID) == nil {
		return fmt.Errorf("activating folder %s: %w", folderID, derrors.ErrFolderNotFound)
	}

	e.session.ActiveFolderID = folderID

	return nil
}

// SetQuery sets the search term applied by VisibleDocuments.
func (e *Engine) SetQuery(query string) {
	e.session.Query = strings.TrimSpace(query)
}

// SelectSortKey applies the sort-selection rule: re-selecting the current
// key toggles direction, selecting a new key resets direction to that
// key's default (newest-first for dates, ascending otherwise).
func (e *Engine) SelectSortKey(key search.SortKey) {
	if key == e.session.SortKey {
		e.session.SortDir = e.session.SortDir.Toggle()
		return
	}

	e.session.SortKey = key
	e.session.SortDir = search.DefaultDirection(key)
}

// VisibleDocuments returns the active folder's documents in display order:
// relevance-ranked while a query is set, plain-sorted otherwise. Returns
// nil when no folder is active.
func (e *Engine) VisibleDocuments() []*document.Document {
	active := e.ActiveFolder()
	if active == nil {
		return nil
	}

	return search.Apply(active.Documents, e.session.Query, e.session.SortKey, e.session.SortDir)
}

// folder returns the folder with the given id, or nil.
func (e *Engine) folder(folderID string) *document.Folder {
	for _, f := range e.folders {
		if f.ID == folderID {
			return f
		}
	}

	return nil
}

// FindDocument locates a document anywhere in the tree and returns it with
// its owning folder.
func (e *Engine) FindDocument(documentID string) (*document.Document, *document.Folder, error) {
	for _, f := range e.folders {
		for _, d := range f.Documents {
			if d.ID == documentID {
				return d, f, nil
			}
		}
	}

	return nil, nil, fmt.Errorf("locating document %s: %w", documentID, derrors.ErrDocumentNotFound)
}

func validateFolderInput(name string, kind document.FolderKind) error {
	err := validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.Length(1, 255)),
		"kind": validation.Validate(string(kind), validation.Required,
			validation.In(string(document.KindPrivate), string(document.KindTeam))),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", derrors.ErrValidation, err)
	}

	return nil
}

// CreateFolder creates a folder remotely and, on success, appends it to
// the tree with its remote-assigned id. The first folder created into an
// empty tree becomes active. On failure the tree is unchanged.
func (e *Engine) CreateFolder(ctx context.Context, name string, kind document.FolderKind) (*document.Folder, error) {
	name = strings.TrimSpace(name)

	if err := validateFolderInput(name, kind); err != nil {
		return nil, err
	}

	rec, err := e.store.CreateFolder(ctx, name, string(kind))
	if err != nil {
		return nil, fmt.Errorf("creating folder %q: %w", name, err)
	}

	folder := &document.Folder{
		ID:   rec.ID.String(),
		Name: rec.Name,
		Kind: document.FolderKind(rec.Kind),
	}

	e.folders = append(e.folders, folder)

	if len(e.folders) == 1 {
		e.session.ActiveFolderID = folder.ID
	}

	e.logger.Info("folder created",
		slog.String("folder_id", folder.ID),
		slog.String("name", folder.Name),
		slog.String("kind", string(folder.Kind)),
	)

	return folder, nil
}

// RenameFolder renames a folder remotely and updates the local name only
// on success. No optimistic update here: a failed rename must not show a
// name other sessions cannot see.
func (e *Engine) RenameFolder(ctx context.Context, folderID, newName string) error {
	newName = strings.TrimSpace(newName)

	folder := e.folder(folderID)
	if folder == nil {
		return fmt.Errorf("renaming folder %s: %w", folderID, derrors.ErrFolderNotFound)
	}

	if err := validateFolderInput(newName, folder.Kind); err != nil {
		return err
	}

	if err := e.store.RenameFolder(ctx, folderID, newName); err != nil {
		return fmt.Errorf("renaming folder %s: %w", folderID, err)
	}

	folder.Name = newName

	return nil
}

// DeleteFolder deletes a folder remotely and, on success, removes it from
// the tree. When the active folder is deleted, the first remaining folder
// becomes active (or none remain active). On failure the tree is
// unchanged.
func (e *Engine) DeleteFolder(ctx context.Context, folderID string) error {
	if e.folder(folderID) == nil {
		return fmt.Errorf("deleting folder %s: %w", folderID, derrors.ErrFolderNotFound)
	}

	if err := e.store.DeleteFolder(ctx, folderID); err != nil {
		return fmt.Errorf("deleting folder %s: %w", folderID, err)
	}

	for i, f := range e.folders {
		if f.ID == folderID {
			e.folders = append(e.folders[:i], e.folders[i+1:]...)
			break
		}
	}

	if e.session.ActiveFolderID == folderID {
		e.session.ActiveFolderID = ""
		if len(e.folders) > 0 {
			e.session.ActiveFolderID = e.folders[0].ID
		}
	}

	return nil
}

// MoveDocument moves a document between folders with a single optimistic
// pass: the remote call is issued first, then the local tree commits the
// move regardless of the call's outcome. On success the remote-returned
// record (authoritative timestamps) replaces the local copy; on failure
// the last-known local copy is kept with only its folder patched, the
// discrepancy is corrected on the next Load, and the error is still
// returned to the caller.
func (e *Engine) MoveDocument(ctx context.Context, documentID, fromFolderID, toFolderID string) error {
	from := e.folder(fromFolderID)
	if from == nil {
		return fmt.Errorf("moving document %s: source: %w", documentID, derrors.ErrFolderNotFound)
	}

	to := e.folder(toFolderID)
	if to == nil {
		return fmt.Errorf("moving document %s: destination: %w", documentID, derrors.ErrFolderNotFound)
	}

	if !from.Contains(documentID) && !to.Contains(documentID) {
		return fmt.Errorf("moving document %s: %w", documentID, derrors.ErrDocumentNotFound)
	}

	raw, callErr := e.store.MoveDocument(ctx, documentID, toFolderID)

	removed := from.Remove(documentID)

	// Idempotence guard: a duplicate drop event must not insert the
	// document twice.
	if !to.Contains(documentID) {
		doc := removed

		if callErr == nil && raw != nil {
			doc = document.MapRemote(raw)
			if doc.ID == "" {
				doc.ID = documentID
			}
		}

		if doc != nil {
			doc.FolderID = toFolderID
			to.Documents = append(to.Documents, doc)
		}
	}

	if err := e.documentInvariant(documentID); err != nil {
		return err
	}

	if callErr != nil {
		e.logger.Warn("move committed locally despite remote failure",
			slog.String("document_id", documentID),
			slog.String("from", fromFolderID),
			slog.String("to", toFolderID),
			slog.String("error", callErr.Error()),
		)

		return fmt.Errorf("moving document %s: %w", documentID, callErr)
	}

	return nil
}

// DeleteDocument deletes a document remotely and, on success, removes it
// from whichever folder currently holds it. On failure the tree is
// unchanged.
func (e *Engine) DeleteDocument(ctx context.Context, documentID string) error {
	_, holder, err := e.FindDocument(documentID)
	if err != nil {
		return err
	}

	if err := e.store.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("deleting document %s: %w", documentID, err)
	}

	holder.Remove(documentID)

	return nil
}

// RenameDocument renames a document, appending the original file extension
// when the supplied name omits one. The extension comes from the
// document's last known name, never from content. The local name updates
// optimistically before the remote call resolves, mirroring the move
// policy; a remote failure is returned but not rolled back.
func (e *Engine) RenameDocument(ctx context.Context, documentID, newName string) (string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", fmt.Errorf("renaming document %s: empty name: %w", documentID, derrors.ErrValidation)
	}

	doc, _, err := e.FindDocument(documentID)
	if err != nil {
		return "", err
	}

	finalName := newName
	if path.Ext(finalName) == "" {
		finalName += path.Ext(doc.Name)
	}

	doc.Name = finalName
	doc.Type = document.ResolveType(finalName, "")

	if err := e.store.RenameDocument(ctx, documentID, finalName); err != nil {
		e.logger.Warn("rename committed locally despite remote failure",
			slog.String("document_id", documentID),
			slog.String("name", finalName),
			slog.String("error", err.Error()),
		)

		return finalName, fmt.Errorf("renaming document %s: %w", documentID, err)
	}

	return finalName, nil
}

// UploadDocument uploads a file and associates it with a folder. Upload
// and association are always two calls; the create endpoint does not
// accept a destination folder. A failed association is logged and the
// document still joins the target folder locally (the remote side leaves
// it unfiled until the next successful move). A failed upload returns an
// error and changes nothing.
func (e *Engine) UploadDocument(ctx context.Context, fileName string, content io.Reader, title string, tags []string, folderID string) (*document.Document, error) {
	folder := e.folder(folderID)
	if folder == nil {
		return nil, fmt.Errorf("uploading %s: %w", fileName, derrors.ErrFolderNotFound)
	}

	if title == "" {
		title = fileName
	}

	raw, err := e.store.CreateDocument(ctx, fileName, content, title, tags)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", fileName, err)
	}

	doc := document.MapRemote(raw)

	moved, err := e.store.MoveDocument(ctx, doc.ID, folderID)
	if err != nil {
		e.logger.Warn("folder association failed after upload",
			slog.String("document_id", doc.ID),
			slog.String("folder_id", folderID),
			slog.String("error", err.Error()),
		)
	} else if moved != nil {
		doc = document.MapRemote(moved)
	}

	doc.FolderID = folderID
	folder.Documents = append(folder.Documents, doc)

	return doc, nil
}

// DownloadDocument streams a document's content to w.
func (e *Engine) DownloadDocument(ctx context.Context, documentID string, w io.Writer) (int64, error) {
	if _, _, err := e.FindDocument(documentID); err != nil {
		return 0, err
	}

	rc, err := e.store.DownloadDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("downloading document %s: %w", documentID, err)
	}
	defer rc.Close()

	n, err := io.Copy(w, rc)
	if err != nil {
		return n, fmt.Errorf("writing document %s: %w", documentID, err)
	}

	return n, nil
}

// documentInvariant verifies that a document id appears in exactly one
// folder's collection.
func (e *Engine) documentInvariant(documentID string) error {
	count := 0

	for _, f := range e.folders {
		if f.Contains(documentID) {
			count++
		}
	}

	if count != 1 {
		return fmt.Errorf("document %s present in %d folders, want 1", documentID, count)
	}

	return nil
}

// Invariant verifies the tree-wide ownership invariant: every document id
// appears in exactly one folder.
func (e *Engine) Invariant() error {
	seen := make(map[string]string)

	for _, f := range e.folders {
		for _, d := range f.Documents {
			if prev, dup := seen[d.ID]; dup {
				return fmt.Errorf("document %s present in folders %s and %s", d.ID, prev, f.ID)
			}

			seen[d.ID] = f.ID

			if d.FolderID != f.ID {
				return fmt.Errorf("document %s in folder %s has folderId %s", d.ID, f.ID, d.FolderID)
			}
		}
	}

	return nil
}
