package configstore

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// Store is the configuration store contract backends implement.
type Store = interfaces.ConfigStore

// Factory creates configuration store backends from URI strings.
type Factory struct {
	log *slog.Logger
}

// NewFactory creates a new factory instance.
func NewFactory(log *slog.Logger) *Factory {
	return &Factory{log: log}
}

// StoreFor creates a configuration store from a location URI.
//
// Supported schemes:
//   - registry:// - the live Windows registry under HKEY_LOCAL_MACHINE
//   - file:///path - a local directory tree
//   - mem:// - an in-memory store
//
// Returns an error if the URI is invalid or the scheme is unsupported on
// this platform.
func (f *Factory) StoreFor(locationURI string) (Store, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("invalid store URI %q: %w", locationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "registry":
		return newRegistryStore(f.log)
	case "file":
		return NewFileStore(u.Path, f.log)
	case "mem":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store scheme: %s", u.Scheme)
	}
}
