package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// DefaultRecordFile is the conventional best-time file name.
const DefaultRecordFile = "best_time.txt"

// FileRecord keeps a single best time as "mm:ss" in a text file.
type FileRecord struct {
	path string
}

// NewFileRecord returns a record backed by path. A leading ~ is expanded.
func NewFileRecord(path string) (*FileRecord, error) {
	if path == "" {
		path = DefaultRecordFile
	}
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileRecord{path: path}, nil
}

// Path returns the file location.
func (f *FileRecord) Path() string {
	return f.path
}

// ReadBestTime returns the stored time, or core.NoRecord when the file is
// missing or does not hold a valid "mm:ss" value.
func (f *FileRecord) ReadBestTime() time.Duration {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return core.NoRecord
	}
	d, ok := core.ParseBestTime(string(data))
	if !ok {
		return core.NoRecord
	}
	return d
}

// WriteBestTime overwrites the file with d.
func (f *FileRecord) WriteBestTime(d time.Duration) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, []byte(core.FormatBestTime(d)), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write best time: %w", err)
	}
	return nil
}
