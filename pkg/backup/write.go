package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const fileTimeLayout = "20060102T150405Z0700"

// Encode writes the document as a single JSON blob followed by a newline
func Encode(w io.Writer, doc *Document, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error encoding backup: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing backup: %w", err)
	}
	return nil
}

// FileName returns the timestamped file name used when writing into a directory
func FileName(exported time.Time) string {
	return fmt.Sprintf("wunderlist-%s.json", exported.Format(fileTimeLayout))
}

// WriteFile writes the document to path. If path is an existing directory
// the file is named after the export time. Returns the path written.
func WriteFile(path string, doc *Document, exported time.Time, pretty bool) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName(exported))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating backup directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("error creating backup file: %w", err)
	}
	if err := Encode(file, doc, pretty); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing backup file: %w", err)
	}

	slog.Debug("backup file written", "path", path)
	return path, nil
}
