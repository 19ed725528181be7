package certstore

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// CertStore is the certificate store contract backends implement.
type CertStore = interfaces.CertStore

// Factory creates certificate store backends from URI strings.
type Factory struct {
	log *slog.Logger
}

// NewFactory creates a new factory instance.
func NewFactory(log *slog.Logger) *Factory {
	return &Factory{log: log}
}

// StoreFor creates a certificate store from a location URI.
//
// Supported schemes:
//   - system://MY - the machine personal store via platform APIs
//   - dir:///path - PEM certificate files in a directory
//   - mem:// - an empty in-memory store
//
// Returns an error if the URI is invalid or the scheme is unsupported on
// this platform.
func (f *Factory) StoreFor(locationURI string) (CertStore, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("invalid certificate store URI %q: %w", locationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "system":
		return newSystemStore(u.Host, f.log)
	case "dir":
		return NewDirectoryStore(u.Path, f.log), nil
	case "mem":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported certificate store scheme: %s", u.Scheme)
	}
}
