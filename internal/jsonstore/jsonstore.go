// Package jsonstore persists the CLI task collection as a single JSON
// document on disk. The whole document is read and rewritten on every
// mutation; writes go through a temp file in the same directory followed
// by an atomic rename, and the file is kept owner read/write only.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// SchemaVersion is the document format version written to the metadata block.
const SchemaVersion = "1.0.0"

// BackupSuffix is appended to the store path when a corrupt file is set aside.
const BackupSuffix = ".backup"

// filePerm restricts the store to owner read/write.
const filePerm = 0o600

// Store errors
var (
	// ErrCorrupted indicates the file exists but does not hold a valid
	// task document. The original bytes are copied to <path>.backup
	// before this is returned.
	ErrCorrupted = errors.New("task file is corrupted")

	// ErrStorage indicates an I/O failure reading or writing the file.
	ErrStorage = errors.New("task file storage error")
)

// TaskRecord is the on-disk representation of a single CLI task.
// Timestamps are fixed-format strings, not time.Time, so the file stays
// stable and human-diffable.
type TaskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Metadata is the document metadata block.
type Metadata struct {
	Version string `json:"version"`
}

// Document is the full contents of the task file: a flat id→record
// mapping plus a metadata block.
type Document struct {
	Tasks    map[string]TaskRecord `json:"tasks"`
	Metadata Metadata              `json:"metadata"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		Tasks:    make(map[string]TaskRecord),
		Metadata: Metadata{Version: SchemaVersion},
	}
}

// Store reads and writes a task document at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a Store for the given file path. If logger is nil,
// slog.Default() is used.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "jsonstore")),
	}
}

// Path returns the file path this store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document from disk. A missing file yields a fresh empty
// document rather than an error. A file that cannot be parsed, or that
// parses but lacks the expected shape, is copied to <path>.backup and
// reported as ErrCorrupted.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorage, s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, s.quarantine(data, fmt.Errorf("%w: %v", ErrCorrupted, err))
	}

	if doc.Tasks == nil || doc.Metadata.Version == "" {
		return nil, s.quarantine(data,
			fmt.Errorf("%w: missing tasks mapping or metadata version", ErrCorrupted))
	}

	for id, rec := range doc.Tasks {
		if rec.ID != id {
			return nil, s.quarantine(data,
				fmt.Errorf("%w: record under key %q has id %q", ErrCorrupted, id, rec.ID))
		}
	}

	return &doc, nil
}

// Save writes the document atomically: marshal, write to a temp file in
// the same directory, then rename over the target. The temp file is
// created with owner-only permissions, so the target ends up restricted
// as well.
func (s *Store) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", ErrStorage, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %s: %v", ErrStorage, dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrStorage, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: setting temp file permissions: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", ErrStorage, s.path, err)
	}

	s.logger.Debug("document saved",
		slog.String("path", s.path),
		slog.Int("tasks", len(doc.Tasks)))
	return nil
}

// quarantine copies the raw corrupt bytes to <path>.backup and returns
// cause. A failure writing the backup is logged but does not mask the
// corruption error.
func (s *Store) quarantine(data []byte, cause error) error {
	backupPath := s.path + BackupSuffix
	if err := os.WriteFile(backupPath, data, filePerm); err != nil {
		s.logger.Error("failed to write corruption backup",
			slog.String("path", backupPath),
			slog.String("error", err.Error()))
		return cause
	}
	s.logger.Warn("corrupt task file backed up",
		slog.String("path", s.path),
		slog.String("backup", backupPath))
	return cause
}
