package interfaces

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnrollmentID is the GUID-shaped identifier of one enrollment record. The
// identifier is kept in the exact form it appears as a store key; braces and
// letter case are preserved.
type EnrollmentID string

// NewEnrollmentID validates that raw is a GUID and returns it as an
// EnrollmentID. The raw form is preserved so the value can be used directly
// as a store path segment.
func NewEnrollmentID(raw string) (EnrollmentID, error) {
	if _, err := uuid.Parse(strings.Trim(raw, "{}")); err != nil {
		return "", fmt.Errorf("invalid enrollment ID %q: %w", raw, err)
	}
	return EnrollmentID(raw), nil
}

// String returns the identifier as it appears in the store.
func (id EnrollmentID) String() string {
	return string(id)
}

// Equal compares two enrollment identifiers.
func (id EnrollmentID) Equal(other EnrollmentID) bool {
	return id == other
}

// Enrollment is a device's registration record with a management service.
type Enrollment struct {
	ID         EnrollmentID `json:"id"`
	ProviderID string       `json:"provider_id"`
}

// CertificateRecord is one entry of the machine personal certificate store.
type CertificateRecord struct {
	Thumbprint string    `json:"thumbprint"`
	Subject    string    `json:"subject"`
	Issuer     string    `json:"issuer"`
	NotBefore  time.Time `json:"not_before"`
	NotAfter   time.Time `json:"not_after"`
}

// ValueKind identifies one of the two reconciled configuration values.
type ValueKind int

const (
	// SearchCriteria is the encoded certificate lookup instruction derived
	// from the enrollment's management identity.
	SearchCriteria ValueKind = iota
	// Reference is the store-and-thumbprint binding of the enrollment's
	// client authentication certificate.
	Reference
)

// Kinds lists all value kinds in processing order.
func Kinds() []ValueKind {
	return []ValueKind{SearchCriteria, Reference}
}

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case SearchCriteria:
		return "search-criteria"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// ValueName returns the store value name the kind is persisted under.
func (k ValueKind) ValueName() string {
	switch k {
	case SearchCriteria:
		return "SslClientCertSearchCriteria"
	case Reference:
		return "SslClientCertReference"
	default:
		return ""
	}
}

// ReconcileStatus is the terminal outcome for one value kind.
type ReconcileStatus int

const (
	// StatusMatched means the persisted value already equals the expected value.
	StatusMatched ReconcileStatus = iota
	// StatusCorrected means the persisted value was rewritten to the expected value.
	StatusCorrected
	// StatusWouldCorrect means a mismatch was found but the run was a dry run.
	StatusWouldCorrect
	// StatusFailed means resolution or the correcting write failed for the kind.
	StatusFailed
)

// String returns the status name.
func (s ReconcileStatus) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusCorrected:
		return "corrected"
	case StatusWouldCorrect:
		return "would-correct"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReconcileResult is the per-kind outcome of one reconciliation pass. Current
// and Expected are recorded even on failure so a mismatch can be diagnosed
// without rerunning.
type ReconcileResult struct {
	Kind      ValueKind       `json:"kind"`
	Status    ReconcileStatus `json:"status"`
	Path      string          `json:"path"`
	Current   string          `json:"current"`
	Expected  string          `json:"expected"`
	Err       error           `json:"-"`
	Timestamp time.Time       `json:"timestamp"`
}
