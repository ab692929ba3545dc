package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadSize caps every upload at 5 MB.
const MaxUploadSize = 5 * 1024 * 1024

var (
	ErrFileTooLarge        = errors.New("file size must be less than 5MB")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type StoredFile struct {
	Name string
	Path string
	URL  string
}

// StorageService keeps uploaded blobs on the local filesystem under a single
// root and hands out public URLs served by the files route.
type StorageService struct {
	root    string
	baseURL string
}

func NewStorageService(root, baseURL string) (*StorageService, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &StorageService{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SaveDocument stores a PDF or Word upload. Size and type are rejected before
// anything touches disk.
func (s *StorageService) SaveDocument(category, filename, contentType string, size int64, r io.Reader) (*StoredFile, error) {
	if !documentTypes[contentType] {
		return nil, ErrUnsupportedFileType
	}
	return s.save(category, filename, size, r)
}

// SaveImage stores a JPEG or PNG upload.
func (s *StorageService) SaveImage(category, filename, contentType string, size int64, r io.Reader) (*StoredFile, error) {
	if !imageTypes[contentType] {
		return nil, ErrUnsupportedFileType
	}
	return s.save(category, filename, size, r)
}

func (s *StorageService) save(category, filename string, size int64, r io.Reader) (*StoredFile, error) {
	if size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	name := sanitizeFilename(filename)
	relPath := filepath.Join(category, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name))
	absPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	// The declared size is client-supplied; the limit is enforced again while
	// copying.
	written, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > MaxUploadSize {
		_ = os.Remove(absPath)
		return nil, ErrFileTooLarge
	}

	return &StoredFile{
		Name: name,
		Path: filepath.ToSlash(relPath),
		URL:  s.baseURL + "/files/" + filepath.ToSlash(relPath),
	}, nil
}

// Delete removes a stored blob by its relative path. Paths escaping the
// storage root are rejected.
func (s *StorageService) Delete(relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid storage path: %s", relPath)
	}
	if err := os.Remove(filepath.Join(s.root, cleaned)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Root returns the storage root for the static file route.
func (s *StorageService) Root() string {
	return s.root
}

func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	name = strings.ReplaceAll(name, " ", "-")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
