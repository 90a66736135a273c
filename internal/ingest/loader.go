package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"simplegpt/internal/models"
)

// ErrInvalidDataType is returned when a feed names a data type the loader
// does not support. It is checked before any collection is touched, so an
// invalid feed leaves the store unchanged.
var ErrInvalidDataType = errors.New("invalid data type, supported types are pdf and txt")

// SupportedDataType reports whether the loader can handle files of the given
// type.
func SupportedDataType(dataType string) bool {
	return dataType == "pdf" || dataType == "txt"
}

// LoadDir reads every file of the given type directly inside dir, one
// Document per file. Subdirectories are not descended into; files with other
// extensions are ignored.
func LoadDir(dir, dataType string) ([]models.Document, error) {
	if !SupportedDataType(dataType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDataType, dataType)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var docs []models.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), "."+dataType) {
			continue
		}

		path := filepath.Join(dir, name)
		var content string
		switch dataType {
		case "pdf":
			content, err = readPDF(path)
		case "txt":
			content, err = readText(path)
		}
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		docs = append(docs, models.Document{Content: content, Source: path})
	}
	return docs, nil
}

// readPDF extracts the plain text of every page, concatenated in page order.
func readPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
