package configstore

import (
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// Default well-known locations of MDM enrollment data on a managed device.
const (
	DefaultEnrollmentsRoot = `SOFTWARE\Microsoft\Enrollments`
	DefaultAccountsRoot    = `SOFTWARE\Microsoft\Provisioning\OMADM\Accounts`

	// ProviderIDValue is the enrollment property naming the management provider.
	ProviderIDValue = "ProviderID"
	// IdentityValue is the management identity property under the identity key.
	IdentityValue = "EntDMID"
	// ThumbprintValue is the enrollment's own certificate thumbprint property.
	ThumbprintValue = "DMPCertThumbPrint"
)

// Paths builds the store paths of one enrollment's records from structured
// inputs. The zero value is not usable; call DefaultPaths.
type Paths struct {
	// EnrollmentsRoot holds one subkey per enrollment, keyed by enrollment ID.
	EnrollmentsRoot string
	// AccountsRoot holds the OMA-DM account mirror of each enrollment,
	// including the protected settings key.
	AccountsRoot string
}

// DefaultPaths returns the standard device layout.
func DefaultPaths() Paths {
	return Paths{
		EnrollmentsRoot: DefaultEnrollmentsRoot,
		AccountsRoot:    DefaultAccountsRoot,
	}
}

// EnrollmentKey returns the path of the enrollment record itself.
func (p Paths) EnrollmentKey(id interfaces.EnrollmentID) string {
	return p.EnrollmentsRoot + `\` + id.String()
}

// IdentityKey returns the path of the DMClient settings key holding the
// management identity value.
func (p Paths) IdentityKey(id interfaces.EnrollmentID) string {
	return p.EnrollmentKey(id) + `\DMClient\MS DM Server`
}

// ProtectedKey returns the path of the protected settings key holding both
// reconciled values.
func (p Paths) ProtectedKey(id interfaces.EnrollmentID) string {
	return p.AccountsRoot + `\` + id.String() + `\Protected`
}
