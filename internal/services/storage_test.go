package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *StorageService {
	t.Helper()
	svc, err := NewStorageService(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	return svc
}

func TestStorageService_SaveDocument_PDF(t *testing.T) {
	svc := newTestStorage(t)
	content := []byte("%PDF-1.4 test document")

	stored, err := svc.SaveDocument("outlines", "lesson one.pdf", "application/pdf", int64(len(content)), bytes.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, "lesson-one.pdf", stored.Name)
	assert.True(t, strings.HasPrefix(stored.Path, "outlines/"))
	assert.True(t, strings.HasPrefix(stored.URL, "http://localhost:8080/files/outlines/"))

	data, err := os.ReadFile(filepath.Join(svc.Root(), filepath.FromSlash(stored.Path)))
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestStorageService_SaveDocument_RejectsUnsupportedType(t *testing.T) {
	svc := newTestStorage(t)

	testCases := []string{
		"image/png",
		"application/zip",
		"text/html",
		"",
	}

	for _, contentType := range testCases {
		t.Run(contentType, func(t *testing.T) {
			_, err := svc.SaveDocument("outlines", "file.bin", contentType, 10, bytes.NewReader([]byte("0123456789")))
			assert.ErrorIs(t, err, ErrUnsupportedFileType)
		})
	}
}

func TestStorageService_SaveDocument_RejectsOversizedDeclaredSize(t *testing.T) {
	svc := newTestStorage(t)

	_, err := svc.SaveDocument("outlines", "big.pdf", "application/pdf", MaxUploadSize+1, bytes.NewReader(nil))

	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestStorageService_SaveDocument_RejectsOversizedStream(t *testing.T) {
	// A lying Content-Length must not bypass the cap.
	svc := newTestStorage(t)
	oversized := bytes.NewReader(make([]byte, MaxUploadSize+1))

	_, err := svc.SaveDocument("outlines", "big.pdf", "application/pdf", 100, oversized)

	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, readErr := os.ReadDir(filepath.Join(svc.Root(), "outlines"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestStorageService_SaveImage(t *testing.T) {
	svc := newTestStorage(t)
	content := []byte("fake-png-bytes")

	stored, err := svc.SaveImage("profile-images", "me.png", "image/png", int64(len(content)), bytes.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, "me.png", stored.Name)

	_, err = svc.SaveImage("profile-images", "doc.pdf", "application/pdf", 10, bytes.NewReader([]byte("0123456789")))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestStorageService_Delete(t *testing.T) {
	svc := newTestStorage(t)
	content := []byte("%PDF-1.4")

	stored, err := svc.SaveDocument("outlines", "gone.pdf", "application/pdf", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(stored.Path))

	_, err = os.Stat(filepath.Join(svc.Root(), filepath.FromSlash(stored.Path)))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing file is not an error.
	assert.NoError(t, svc.Delete(stored.Path))
}

func TestStorageService_Delete_RejectsTraversal(t *testing.T) {
	svc := newTestStorage(t)

	assert.Error(t, svc.Delete("../outside.txt"))
	assert.Error(t, svc.Delete("/etc/passwd"))
}

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"lesson one.pdf", "lesson-one.pdf"},
		{"../../evil.pdf", "evil.pdf"},
		{"report_2024.docx", "report_2024.docx"},
		{"###", "upload"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, sanitizeFilename(tc.in))
	}
}
