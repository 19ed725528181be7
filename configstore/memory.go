package configstore

import (
	"sort"
	"strings"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// MemoryStore implements a configuration store backed by an in-memory map.
// It is used by unit tests and by the mem:// factory scheme. Paths are
// matched case-insensitively, mirroring registry semantics; value names and
// values keep their exact case.
type MemoryStore struct {
	keys map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]map[string]string)}
}

func normalizePath(path string) string {
	return strings.ToLower(strings.Trim(path, `\`))
}

// CreateKey ensures path and all its ancestor keys exist without writing
// any value, mirroring registry key creation.
func (s *MemoryStore) CreateKey(path string) {
	p := normalizePath(path)
	for {
		if _, ok := s.keys[p]; !ok {
			s.keys[p] = make(map[string]string)
		}
		i := strings.LastIndex(p, `\`)
		if i < 0 {
			return
		}
		p = p[:i]
	}
}

// Get returns the value stored under name at path.
func (s *MemoryStore) Get(path, name string) (string, error) {
	values, ok := s.keys[normalizePath(path)]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	v, ok := values[name]
	if !ok {
		return "", interfaces.ErrValueNotFound
	}
	return v, nil
}

// Set writes value under name at path, creating the path if absent.
func (s *MemoryStore) Set(path, name, value string) error {
	s.CreateKey(path)
	s.keys[normalizePath(path)][name] = value
	return nil
}

// List returns the immediate child key names of path, sorted ascending.
// Child names are reported in the case they were created with.
func (s *MemoryStore) List(path string) ([]string, error) {
	prefix := normalizePath(path)
	if _, ok := s.keys[prefix]; !ok {
		return nil, interfaces.ErrKeyNotFound
	}

	seen := make(map[string]string)
	for key := range s.keys {
		if !strings.HasPrefix(key, prefix+`\`) {
			continue
		}
		child := strings.SplitN(key[len(prefix)+1:], `\`, 2)[0]
		seen[child] = child
	}

	names := make([]string, 0, len(seen))
	for _, name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
