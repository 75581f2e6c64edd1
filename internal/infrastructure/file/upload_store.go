package file

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStore writes uploaded batch files into a scratch directory. Files
// are transient: the record source deletes them once the batch finishes.
type UploadStore struct {
	Dir string
}

func NewUploadStore(dir string) *UploadStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &UploadStore{Dir: dir}
}

// Save copies one multipart upload to disk and returns its path. The stored
// name keeps the original extension so the record source can pick a parser.
func (s *UploadStore) Save(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.Dir, "upload-"+uuid.NewString()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return path, nil
}
