package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, name, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[field][0]
}

func TestStorageService_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(filepath.Join(dir, "uploads"), 1024)
	require.NoError(t, storage.EnsureUploadDir())

	doc, err := storage.SaveFile(multipartFile(t, "resume", "Jane Resume.TXT", "hello"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Resume.TXT", doc.FileName)
	assert.True(t, strings.HasSuffix(doc.Path, ".txt"))
	assert.NotContains(t, filepath.Base(doc.Path), "Jane")

	data, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, storage.DeleteFile(doc.Path))
	_, err = os.Stat(doc.Path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.DeleteFile(doc.Path))
}

func TestStorageService_UniqueNames(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 0)

	a, err := storage.SaveFile(multipartFile(t, "resumes", "cv.pdf", "a"))
	require.NoError(t, err)
	b, err := storage.SaveFile(multipartFile(t, "resumes", "cv.pdf", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Path, b.Path)
	assert.Equal(t, a.FileName, b.FileName)
}

func TestStorageService_TooLarge(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 3)

	_, err := storage.SaveFile(multipartFile(t, "resume", "cv.txt", "too long"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
