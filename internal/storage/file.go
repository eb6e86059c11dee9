// internal/storage/file.go
package storage

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileStore persists each snapshot key as one file under a directory
type FileStore struct {
	dir string
	log *logrus.Logger
}

// NewFileStore creates the directory if needed and returns a file-backed store
func NewFileStore(dir string, log *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the stored value for key and whether it was present
func (s *FileStore) Get(key string) ([]byte, bool) {
	value, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).WithField("key", key).Warn("Failed to read snapshot")
		}
		return nil, false
	}
	return value, true
}

// Set stores value under key, replacing any previous value
func (s *FileStore) Set(key string, value []byte) {
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to write snapshot")
	}
}

// Delete removes key if present
func (s *FileStore) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).WithField("key", key).Warn("Failed to delete snapshot")
	}
}

// ClearAll removes every snapshot key
func (s *FileStore) ClearAll() {
	for _, key := range []string{KeyToken, KeyUser, KeyCart} {
		s.Delete(key)
	}
}
