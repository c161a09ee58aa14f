package dataroom

import (
	"context"
	"encoding/json"
	"io"

	"github.com/MadMax2121/dataroom-client/internal/api"
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=dataroom

// RemoteStore is the remote document/folder API the engine reconciles
// against. Every call is fallible and independent; no call is atomic with
// any other. *api.Client is the production implementation.
type RemoteStore interface {
	ListFolders(ctx context.Context) ([]api.FolderRecord, error)
	ListFolderDocuments(ctx context.Context, folderID string) ([]json.RawMessage, error)
	CreateFolder(ctx context.Context, name, kind string) (api.FolderRecord, error)
	RenameFolder(ctx context.Context, folderID, name string) error
	DeleteFolder(ctx context.Context, folderID string) error
	CreateDocument(ctx context.Context, fileName string, content io.Reader, title string, tags []string) (json.RawMessage, error)
	RenameDocument(ctx context.Context, documentID, title string) error
	DeleteDocument(ctx context.Context, documentID string) error
	MoveDocument(ctx context.Context, documentID, folderID string) (json.RawMessage, error)
	DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, error)
}
