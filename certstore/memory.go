package certstore

import (
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// MemoryStore implements a certificate store over a fixed record list.
type MemoryStore struct {
	records []interfaces.CertificateRecord
}

// NewMemoryStore creates a store holding the given records.
func NewMemoryStore(records ...interfaces.CertificateRecord) *MemoryStore {
	return &MemoryStore{records: records}
}

// Add appends a record to the store.
func (s *MemoryStore) Add(rec interfaces.CertificateRecord) {
	s.records = append(s.records, rec)
}

// Enumerate returns all records.
func (s *MemoryStore) Enumerate() ([]interfaces.CertificateRecord, error) {
	out := make([]interfaces.CertificateRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
