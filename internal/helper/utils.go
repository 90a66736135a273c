// Package helper holds small filesystem utilities shared by the HTTP layer
// and the CLI.
package helper

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// CreateFolder makes dir and any missing parents.
func CreateFolder(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating folder %s: %w", dir, err)
	}
	return nil
}

// SaveFilesToDisk writes uploaded files into a fresh uuid-named directory
// under the system temp dir and returns its path. The caller is responsible
// for cleaning the directory up after ingestion.
func SaveFilesToDisk(files []*multipart.FileHeader) (string, error) {
	dir := filepath.Join(os.TempDir(), uuid.NewString())
	if err := CreateFolder(dir); err != nil {
		return "", err
	}

	for _, fh := range files {
		if err := saveFile(fh, dir); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func saveFile(fh *multipart.FileHeader, dir string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path := filepath.Join(dir, filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
