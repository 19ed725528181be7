//go:build windows

package certstore

import (
	"crypto/x509"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// SystemStore implements a certificate store over the machine-wide personal
// store via the Windows certificate APIs.
type SystemStore struct {
	name string
	log  *slog.Logger
}

// NewSystemStore creates a view of the named machine store, normally "MY".
func NewSystemStore(name string, log *slog.Logger) *SystemStore {
	if name == "" {
		name = "MY"
	}
	return &SystemStore{name: name, log: log}
}

// Enumerate returns records for every certificate in the store. Entries
// that fail to parse are skipped with a warning.
func (s *SystemStore) Enumerate() ([]interfaces.CertificateRecord, error) {
	namePtr, err := windows.UTF16PtrFromString(s.name)
	if err != nil {
		return nil, fmt.Errorf("invalid store name %q: %w", s.name, err)
	}

	store, err := windows.CertOpenStore(
		windows.CERT_STORE_PROV_SYSTEM,
		0,
		0,
		windows.CERT_SYSTEM_STORE_LOCAL_MACHINE|windows.CERT_STORE_READONLY_FLAG,
		uintptr(unsafe.Pointer(namePtr)))
	if err != nil {
		return nil, fmt.Errorf("failed to open machine %s store: %w", s.name, err)
	}
	defer windows.CertCloseStore(store, 0)

	var records []interfaces.CertificateRecord
	var ctx *windows.CertContext
	for {
		ctx, err = windows.CertEnumCertificatesInStore(store, ctx)
		if err != nil || ctx == nil {
			break
		}

		der := unsafe.Slice(ctx.EncodedCert, ctx.Length)
		buf := make([]byte, len(der))
		copy(buf, der)

		cert, err := x509.ParseCertificate(buf)
		if err != nil {
			s.log.Warn("Failed to parse store certificate", "err", err)
			continue
		}
		records = append(records, RecordFromCertificate(cert))
	}

	s.log.Debug("Enumerated system certificate store",
		slog.String("store", s.name),
		slog.Int("count", len(records)))
	return records, nil
}

func newSystemStore(name string, log *slog.Logger) (CertStore, error) {
	return NewSystemStore(name, log), nil
}
