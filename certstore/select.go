package certstore

import (
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// RecordFromCertificate builds a store record from a parsed certificate.
// The thumbprint is the uppercase hex SHA-1 of the DER encoding.
func RecordFromCertificate(cert *x509.Certificate) interfaces.CertificateRecord {
	sum := sha1.Sum(cert.Raw)
	return interfaces.CertificateRecord{
		Thumbprint: strings.ToUpper(hex.EncodeToString(sum[:])),
		Subject:    cert.Subject.String(),
		Issuer:     cert.Issuer.String(),
		NotBefore:  cert.NotBefore,
		NotAfter:   cert.NotAfter,
	}
}

// SelectByIssuer returns the management certificate among records: the
// issuer must contain pattern (case-insensitive). When several certificates
// match, the most recently issued one wins; issuance-time ties fall back to
// the lexicographically smallest thumbprint, so the result never depends on
// enumeration order. Zero matches return ErrCertificateNotFound.
func SelectByIssuer(records []interfaces.CertificateRecord, pattern string) (interfaces.CertificateRecord, error) {
	needle := strings.ToLower(pattern)

	var matches []interfaces.CertificateRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Issuer), needle) {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return interfaces.CertificateRecord{}, fmt.Errorf("%w: no issuer matches %q", interfaces.ErrCertificateNotFound, pattern)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].NotBefore.Equal(matches[j].NotBefore) {
			return matches[i].NotBefore.After(matches[j].NotBefore)
		}
		return matches[i].Thumbprint < matches[j].Thumbprint
	})
	return matches[0], nil
}
