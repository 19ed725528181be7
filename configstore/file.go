package configstore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// valueFileSuffix separates value files from child key directories inside a
// key directory.
const valueFileSuffix = ".value"

// FileStore implements a configuration store backed by the local file
// system. Each store key is a directory and each value a small file inside
// it, which makes a captured device state inspectable with plain shell
// tools. Used for dry runs and integration tests on non-enrolled machines.
type FileStore struct {
	baseDir string
	log     *slog.Logger
}

// NewFileStore creates a file-backed store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{baseDir: baseDir, log: log}, nil
}

// keyDir maps a backslash-separated store path onto a directory under baseDir.
func (s *FileStore) keyDir(path string) string {
	segments := strings.Split(strings.Trim(path, `\`), `\`)
	return filepath.Join(append([]string{s.baseDir}, segments...)...)
}

// Get returns the value stored under name at path.
func (s *FileStore) Get(path, name string) (string, error) {
	dir := s.keyDir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", interfaces.ErrKeyNotFound
	}

	data, err := os.ReadFile(filepath.Join(dir, name+valueFileSuffix))
	if os.IsNotExist(err) {
		return "", interfaces.ErrValueNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read value file: %w", err)
	}

	s.log.Debug("Read value from file store",
		slog.String("path", path),
		slog.String("name", name))
	return string(data), nil
}

// Set writes value under name at path, creating the key directory if absent.
func (s *FileStore) Set(path, name, value string) error {
	dir := s.keyDir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name+valueFileSuffix), []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write value file: %w", err)
	}

	s.log.Debug("Wrote value to file store",
		slog.String("path", path),
		slog.String("name", name),
		slog.Int("size", len(value)))
	return nil
}

// List returns the immediate child key names of path, sorted ascending.
func (s *FileStore) List(path string) ([]string, error) {
	entries, err := os.ReadDir(s.keyDir(path))
	if os.IsNotExist(err) {
		return nil, interfaces.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list key directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
