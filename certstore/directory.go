package certstore

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// DirectoryStore implements a certificate store over PEM certificate files
// in a directory. It serves dry runs and integration tests on machines
// without a system certificate store.
type DirectoryStore struct {
	dir string
	log *slog.Logger
}

// NewDirectoryStore creates a store reading *.pem files under dir.
func NewDirectoryStore(dir string, log *slog.Logger) *DirectoryStore {
	return &DirectoryStore{dir: dir, log: log}
}

// Enumerate parses every PEM certificate file in the directory. Files that
// do not parse are skipped with a warning; the store mirrors a live
// certificate store, which also tolerates unrelated entries.
func (s *DirectoryStore) Enumerate() ([]interfaces.CertificateRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate directory: %w", err)
	}

	var records []interfaces.CertificateRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".pem" {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("Failed to read certificate file", "err", err, slog.String("path", path))
			continue
		}

		for block, rest := pem.Decode(data); block != nil; block, rest = pem.Decode(rest) {
			if block.Type != "CERTIFICATE" {
				continue
			}
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				s.log.Warn("Failed to parse certificate", "err", err, slog.String("path", path))
				continue
			}
			records = append(records, RecordFromCertificate(cert))
		}
	}

	s.log.Debug("Enumerated certificate directory",
		slog.String("dir", s.dir),
		slog.Int("count", len(records)))
	return records, nil
}
