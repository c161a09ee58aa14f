package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FolderRecord is the wire form of a folder.
type FolderRecord struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	Kind      string      `json:"type"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

type folderListResponse struct {
	Folders []FolderRecord `json:"folders"`
}

type folderResponse struct {
	Folder FolderRecord `json:"folder"`
}

type documentListResponse struct {
	Documents []json.RawMessage `json:"documents"`
}

type documentResponse struct {
	Document json.RawMessage `json:"document"`
}

// ListFolders returns all folders visible to the authenticated user.
func (c *Client) ListFolders(ctx context.Context) ([]FolderRecord, error) {
	var resp folderListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/folders", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	return resp.Folders, nil
}

// ListFolderDocuments returns the raw document records in a folder.
// Records are passed through untouched for the document mapper.
func (c *Client) ListFolderDocuments(ctx context.Context, folderID string) ([]json.RawMessage, error) {
	var resp documentListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/folders/"+url.PathEscape(folderID)+"/documents", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing documents for folder %s: %w", folderID, err)
	}

	return resp.Documents, nil
}

// CreateFolder creates a folder and returns the created record with its
// remote-assigned id.
func (c *Client) CreateFolder(ctx context.Context, name, kind string) (FolderRecord, error) {
	req := struct {
		Name string `json:"name"`
		Kind string `json:"type"`
	}{Name: name, Kind: kind}

	var resp folderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/folders", req, &resp); err != nil {
		return FolderRecord{}, fmt.Errorf("creating folder: %w", err)
	}

	return resp.Folder, nil
}

// RenameFolder updates a folder's name.
func (c *Client) RenameFolder(ctx context.Context, folderID, name string) error {
	req := struct {
		Name string `json:"name"`
	}{Name: name}

	if err := c.doJSON(ctx, http.MethodPut, "/folders/"+url.PathEscape(folderID), req, nil); err != nil {
		return fmt.Errorf("renaming folder %s: %w", folderID, err)
	}

	return nil
}

// DeleteFolder deletes a folder.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/folders/"+url.PathEscape(folderID), nil, nil); err != nil {
		return fmt.Errorf("deleting folder %s: %w", folderID, err)
	}

	return nil
}

// CreateDocument uploads a file as a multipart form and returns the raw
// created record. The destination folder is not part of this call; the
// create endpoint does not accept one, so callers follow up with
// MoveDocument.
func (c *Client) CreateDocument(ctx context.Context, fileName string, content io.Reader, title string, tags []string) (json.RawMessage, error) {
	body, contentType, err := buildMultipart(fileName, content, title, tags)
	if err != nil {
		return nil, fmt.Errorf("building upload for %s: %w", fileName, err)
	}

	var resp documentResponse
	if err := c.do(ctx, http.MethodPost, "/documents", body, contentType, &resp); err != nil {
		return nil, fmt.Errorf("uploading document %s: %w", fileName, err)
	}

	return resp.Document, nil
}

// RenameDocument updates a document's title.
func (c *Client) RenameDocument(ctx context.Context, documentID, title string) error {
	req := struct {
		Title string `json:"title"`
	}{Title: title}

	if err := c.doJSON(ctx, http.MethodPut, "/documents/"+url.PathEscape(documentID), req, nil); err != nil {
		return fmt.Errorf("renaming document %s: %w", documentID, err)
	}

	return nil
}

// DeleteDocument deletes a document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/documents/"+url.PathEscape(documentID), nil, nil); err != nil {
		return fmt.Errorf("deleting document %s: %w", documentID, err)
	}

	return nil
}

// MoveDocument associates a document with a folder. The response may carry
// the updated record; callers use it preferentially when present, since it
// holds authoritative timestamps. A nil record with a nil error is a valid
// outcome.
func (c *Client) MoveDocument(ctx context.Context, documentID, folderID string) (json.RawMessage, error) {
	// Document ids are numeric on the wire; json.Number keeps them
	// unquoted without this client caring about their width.
	req := struct {
		DocumentID json.Number `json:"documentId"`
	}{DocumentID: json.Number(documentID)}

	var resp documentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/folders/"+url.PathEscape(folderID)+"/documents", req, &resp); err != nil {
		return nil, fmt.Errorf("moving document %s to folder %s: %w", documentID, folderID, err)
	}

	if len(resp.Document) == 0 {
		return nil, nil
	}

	return resp.Document, nil
}

// DownloadDocument streams a document's content. The caller owns the
// returned reader and must close it.
func (c *Client) DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, error) {
	endpoint := "/documents/" + url.PathEscape(documentID) + "/download"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("downloading document %s: %w", documentID, err)}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))

		err := fmt.Errorf("download %s returned status %d: %s", endpoint, resp.StatusCode, sanitizeResponseBody(body))
		if isTransientStatus(resp.StatusCode) {
			return nil, &TransientError{Err: err}
		}

		return nil, err
	}

	return resp.Body, nil
}
