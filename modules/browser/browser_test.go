package browser_test

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropdir/dropdir/modules/browser"
	"github.com/dropdir/dropdir/pkg/browse"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	root := t.TempDir()
	files, err := browse.New(root)
	require.NoError(t, err)

	svc := browser.NewService(files)
	srv := httptest.NewServer(svc.Handle())
	t.Cleanup(srv.Close)

	return srv, root
}

func seedFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, content, 0644))
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func decodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

func TestList(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	seedFile(t, root, "a.txt", []byte("aa"))
	seedFile(t, root, "sub/b.txt", []byte("bb"))

	resp, err := http.Get(srv.URL + "/ls")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listing := decodeJSON[struct {
		Path    string         `json:"path"`
		Entries []browse.Entry `json:"entries"`
	}](t, resp.Body)

	require.Len(t, listing.Entries, 2)
	names := []string{listing.Entries[0].Name, listing.Entries[1].Name}
	assert.Contains(t, names, "a.txt")
	assert.Contains(t, names, "sub")
}

func TestList_TraversalReturns404(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	u.Path = "/ls/../../etc"

	req := &http.Request{Method: http.MethodGet, URL: u}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "etc")
}

func TestDownload_File(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	seedFile(t, root, "docs/report.txt", []byte("quarterly numbers"))

	resp, err := http.Get(srv.URL + "/dl/docs/report.txt")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report.txt")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(body))
}

func TestDownload_DirectoryArchive(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	seedFile(t, root, "proj/main.go", []byte("package main"))
	seedFile(t, root, "proj/sub/util.go", []byte("package sub"))

	resp, err := http.Get(srv.URL + "/dl/proj?format=none")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "proj.tar")

	members := map[string]string{}
	tr := tar.NewReader(resp.Body)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		members[hdr.Name] = string(data)
	}

	assert.Equal(t, "package main", members["main.go"])
	assert.Equal(t, "package sub", members["sub/util.go"])
	assert.Contains(t, members, "sub/")
}

func TestDownload_UnknownFormat(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	seedFile(t, root, "proj/main.go", []byte("package main"))

	resp, err := http.Get(srv.URL + "/dl/proj?format=rar")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpload(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	body, contentType := multipartBody(t, "notes.txt", []byte("hello"))
	resp, err := http.Post(srv.URL+"/upload/inbox", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeJSON[struct {
		Files []*browse.File `json:"files"`
	}](t, resp.Body)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "notes.txt", result.Files[0].Filename)
	assert.Equal(t, "inbox/notes.txt", result.Files[0].RelativePath)

	data, err := os.ReadFile(filepath.Join(root, "inbox", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestUpload_CollisionRenames(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	seedFile(t, root, "dup.txt", []byte("first"))

	body, contentType := multipartBody(t, "dup.txt", []byte("second"))
	resp, err := http.Post(srv.URL+"/upload", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeJSON[struct {
		Files []*browse.File `json:"files"`
	}](t, resp.Body)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "dup (2).txt", result.Files[0].Filename)

	data, err := os.ReadFile(filepath.Join(root, "dup.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestUpload_NoFiles(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("comment", "no file attached"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/upload", mw.FormDataContentType(), body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMkdirAndRemove(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/mkdir/a/b", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.DirExists(t, filepath.Join(root, "a", "b"))

	// Non-recursive DELETE refuses a directory.
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/rm/a", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/rm/a?recursive=true", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NoDirExists(t, filepath.Join(root, "a"))
}

func TestRemove_Missing(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/rm/ghost.txt", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func clipboardClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func TestClipboard_CopyPaste(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)
	client := clipboardClient(t)

	seedFile(t, root, "src/a.txt", []byte("aa"))

	resp, err := client.Post(srv.URL+"/clipboard/copy", "application/json",
		strings.NewReader(`{"paths":["src/a.txt"]}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/clipboard/paste/dest", "application/json", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeJSON[struct {
		Op     string   `json:"op"`
		Pasted []string `json:"pasted"`
	}](t, resp.Body)
	assert.Equal(t, "copy", result.Op)
	assert.Equal(t, []string{"dest/a.txt"}, result.Pasted)

	// Copy keeps both the source and the clipboard.
	assert.FileExists(t, filepath.Join(root, "src", "a.txt"))
	assert.FileExists(t, filepath.Join(root, "dest", "a.txt"))

	resp, err = client.Get(srv.URL + "/clipboard/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClipboard_CutPasteMovesAndClears(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)
	client := clipboardClient(t)

	seedFile(t, root, "src/a.txt", []byte("aa"))

	resp, err := client.Post(srv.URL+"/clipboard/cut", "application/json",
		strings.NewReader(`{"paths":["src/a.txt"]}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/clipboard/paste/dest", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NoFileExists(t, filepath.Join(root, "src", "a.txt"))
	assert.FileExists(t, filepath.Join(root, "dest", "a.txt"))

	resp, err = client.Get(srv.URL + "/clipboard/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClipboard_PasteCollisionRenames(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)
	client := clipboardClient(t)

	seedFile(t, root, "src/a.txt", []byte("new"))
	seedFile(t, root, "dest/a.txt", []byte("existing"))

	resp, err := client.Post(srv.URL+"/clipboard/copy", "application/json",
		strings.NewReader(`{"paths":["src/a.txt"]}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/clipboard/paste/dest", "application/json", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeJSON[struct {
		Pasted []string `json:"pasted"`
	}](t, resp.Body)
	assert.Equal(t, []string{"dest/a (2).txt"}, result.Pasted)

	data, err := os.ReadFile(filepath.Join(root, "dest", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestClipboard_SetMissingPath(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	client := clipboardClient(t)

	resp, err := client.Post(srv.URL+"/clipboard/cut", "application/json",
		strings.NewReader(`{"paths":["nope.txt"]}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClipboard_Clear(t *testing.T) {
	t.Parallel()
	srv, root := newTestServer(t)
	client := clipboardClient(t)

	seedFile(t, root, "a.txt", []byte("aa"))

	resp, err := client.Post(srv.URL+"/clipboard/copy", "application/json",
		strings.NewReader(`{"paths":["a.txt"]}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/clipboard/", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/clipboard/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
