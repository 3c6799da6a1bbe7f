// Package store provides a file-backed key-value store for the command line
// tool, playing the part the preferences store plays in the GUI.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
)

// File layout
const (
	AppDirName      = "source-editor"
	DefaultFileName = "store.json"
	lockSuffix      = ".lock"
	tmpSuffix       = ".tmp"
	filePerm        = 0644
	dirPerm         = 0755
)

// DefaultPath returns the store file under the XDG data directory.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppDirName, DefaultFileName)
}

// FileStore keeps string values in one JSON object file. Every call takes an
// exclusive file lock so concurrent processes do not lose writes.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore creates a store at path, creating parent directories.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{
		path: path,
		lock: flock.New(path + lockSuffix),
	}, nil
}

// Path returns the store file path
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key, or "" when the key or the file is absent.
func (s *FileStore) Get(key string) (string, error) {
	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("lock store: %w", err)
	}
	defer s.lock.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Set stores value under key, rewriting the file atomically.
func (s *FileStore) Set(key, value string) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer s.lock.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	return WriteFileAtomic(s.path, data)
}

func (s *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", s.path, err)
	}
	return values, nil
}

// WriteFileAtomic writes data to path using a tmp+rename strategy.
func WriteFileAtomic(path string, data []byte) error {
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
