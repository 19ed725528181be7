//go:build !windows

package configstore

import (
	"errors"
	"log/slog"
)

// ErrRegistryUnsupported is returned when the registry:// scheme is
// requested on a platform without a Windows registry.
var ErrRegistryUnsupported = errors.New("registry store is only available on windows")

func newRegistryStore(log *slog.Logger) (Store, error) {
	return nil, ErrRegistryUnsupported
}
