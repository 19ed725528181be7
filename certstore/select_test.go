package certstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

func rec(thumbprint string, notBefore time.Time) interfaces.CertificateRecord {
	return interfaces.CertificateRecord{
		Thumbprint: thumbprint,
		Issuer:     "CN=Microsoft Intune MDM Device CA",
		NotBefore:  notBefore,
	}
}

func TestSelectByIssuerNoMatch(t *testing.T) {
	records := []interfaces.CertificateRecord{
		{Thumbprint: "AAAA", Issuer: "CN=Contoso Issuing CA"},
	}
	_, err := SelectByIssuer(records, "Microsoft Intune MDM Device CA")
	assert.ErrorIs(t, err, interfaces.ErrCertificateNotFound)
}

func TestSelectByIssuerCaseInsensitive(t *testing.T) {
	records := []interfaces.CertificateRecord{
		{Thumbprint: "AAAA", Issuer: "cn=microsoft intune mdm device ca"},
	}
	got, err := SelectByIssuer(records, "Microsoft Intune MDM Device CA")
	require.NoError(t, err)
	assert.Equal(t, "AAAA", got.Thumbprint)
}

func TestSelectByIssuerPrefersNewest(t *testing.T) {
	old := rec("AAAA", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	renewed := rec("BBBB", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	got, err := SelectByIssuer([]interfaces.CertificateRecord{old, renewed}, "Intune")
	require.NoError(t, err)
	assert.Equal(t, "BBBB", got.Thumbprint)
}

func TestSelectByIssuerTieBreaksOnThumbprint(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := rec("1111", issued)
	b := rec("2222", issued)

	got, err := SelectByIssuer([]interfaces.CertificateRecord{b, a}, "Intune")
	require.NoError(t, err)
	assert.Equal(t, "1111", got.Thumbprint)
}

func TestSelectByIssuerIgnoresEnumerationOrder(t *testing.T) {
	records := []interfaces.CertificateRecord{
		rec("CCCC", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		rec("AAAA", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		rec("BBBB", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	permutations := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range permutations {
		shuffled := []interfaces.CertificateRecord{records[perm[0]], records[perm[1]], records[perm[2]]}
		got, err := SelectByIssuer(shuffled, "Intune")
		require.NoError(t, err)
		assert.Equal(t, "AAAA", got.Thumbprint)
	}
}
