//go:build !windows

package certstore

import (
	"errors"
	"log/slog"
)

// ErrSystemStoreUnsupported is returned when the system:// scheme is
// requested on a platform without a system certificate store.
var ErrSystemStoreUnsupported = errors.New("system certificate store is only available on windows")

func newSystemStore(name string, log *slog.Logger) (CertStore, error) {
	return nil, ErrSystemStoreUnsupported
}
