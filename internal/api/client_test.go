package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client pointed at the given httptest server.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		token:      "test-token",
	}
}

func TestDo_SetsAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	err := c.doJSON(context.Background(), http.MethodGet, "/folders", nil, nil)
	require.NoError(t, err)
}

func TestListFolders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/folders", r.URL.Path)
		w.Write([]byte(`{"folders":[{"id":1,"name":"Legal","type":"private"},{"id":2,"name":"Team","type":"team"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	folders, err := c.ListFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "1", folders[0].ID.String())
	assert.Equal(t, "Legal", folders[0].Name)
	assert.Equal(t, "team", folders[1].Kind)
}

func TestListFolderDocuments_ReturnsRawRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/folders/7/documents", r.URL.Path)
		w.Write([]byte(`{"documents":[{"id":1,"title":"a.pdf","extra_field":"kept"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	docs, err := c.ListFolderDocuments(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	// Records pass through verbatim, unknown fields included.
	assert.Contains(t, string(docs[0]), "extra_field")
}

func TestCreateFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		body, _ := io.ReadAll(r.Body)

		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "Diligence", req["name"])
		assert.Equal(t, "team", req["type"])

		w.Write([]byte(`{"folder":{"id":9,"name":"Diligence","type":"team"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	folder, err := c.CreateFolder(context.Background(), "Diligence", "team")
	require.NoError(t, err)
	assert.Equal(t, "9", folder.ID.String())
	assert.Equal(t, "Diligence", folder.Name)
}

func TestCreateDocument_SendsMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Quarterly Report", r.FormValue("title"))
		assert.Equal(t, "finance", r.FormValue("tags[0]"))
		assert.Equal(t, "q2", r.FormValue("tags[1]"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(content))

		w.Write([]byte(`{"document":{"id":55,"title":"Quarterly Report"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	raw, err := c.CreateDocument(context.Background(), "report.pdf", strings.NewReader("pdf-bytes"), "Quarterly Report", []string{"finance", "q2"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":55`)
}

func TestMoveDocument_ReturnsUpdatedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/folders/3/documents", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"documentId":7}`, string(body))

		w.Write([]byte(`{"document":{"id":7,"title":"x.pdf","updated_at":"2024-05-01T00:00:00Z"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	raw, err := c.MoveDocument(context.Background(), "7", "3")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "updated_at")
}

func TestMoveDocument_NoRecordInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	raw, err := c.MoveDocument(context.Background(), "7", "3")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDo_APIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"folder name already exists"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.CreateFolder(context.Background(), "dup", "private")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder name already exists")
	assert.False(t, IsTransient(err))
}

func TestDo_TransientStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := newTestClient(srv)
		err := c.DeleteFolder(context.Background(), "1")
		require.Error(t, err)
		assert.True(t, IsTransient(err), "status %d should be transient", status)

		srv.Close()
	}
}

func TestDo_NetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv)
	err := c.DeleteDocument(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestDo_SanitizesNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("gone\x00\x01"))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	err := c.RenameDocument(context.Background(), "1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone??")
	assert.NotContains(t, err.Error(), "\x00")
}

func TestDownloadDocument_StreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/12/download", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte("file-content"))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	rc, err := c.DownloadDocument(context.Background(), "12")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "file-content", string(content))
}

func TestDownloadDocument_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.DownloadDocument(context.Background(), "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
