//go:build windows

package configstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sys/windows/registry"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// RegistryStore implements a configuration store over the live Windows
// registry under HKEY_LOCAL_MACHINE. This is the real device configuration
// store on enrolled clients; writing to it requires an elevated process.
type RegistryStore struct {
	root registry.Key
	log  *slog.Logger
}

// NewRegistryStore creates a store rooted at HKEY_LOCAL_MACHINE.
func NewRegistryStore(log *slog.Logger) *RegistryStore {
	return &RegistryStore{root: registry.LOCAL_MACHINE, log: log}
}

func newRegistryStore(log *slog.Logger) (Store, error) {
	return NewRegistryStore(log), nil
}

// Get returns the string value stored under name at path.
func (s *RegistryStore) Get(path, name string) (string, error) {
	key, err := registry.OpenKey(s.root, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", interfaces.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to open key %s: %w", path, err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", interfaces.ErrValueNotFound
		}
		return "", fmt.Errorf("failed to read value %s at %s: %w", name, path, err)
	}
	return value, nil
}

// Set writes a string value under name at path, creating the key if absent.
func (s *RegistryStore) Set(path, name, value string) error {
	key, _, err := registry.CreateKey(s.root, path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open key %s for writing: %w", path, err)
	}
	defer key.Close()

	if err := key.SetStringValue(name, value); err != nil {
		return fmt.Errorf("failed to write value %s at %s: %w", name, path, err)
	}

	s.log.Debug("Wrote registry value",
		slog.String("path", path),
		slog.String("name", name))
	return nil
}

// List returns the subkey names of path, sorted ascending.
func (s *RegistryStore) List(path string) ([]string, error) {
	key, err := registry.OpenKey(s.root, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, interfaces.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to open key %s: %w", path, err)
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate subkeys of %s: %w", path, err)
	}
	sort.Strings(names)
	return names, nil
}
