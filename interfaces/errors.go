package interfaces

import "errors"

var (
	// ErrEnrollmentNotFound indicates no enrollment record matched the
	// requested provider. Fatal for the whole run.
	ErrEnrollmentNotFound = errors.New("no enrollment found for provider")

	// ErrMissingIdentity indicates the enrollment carries no management
	// identity value. Fatal for the search criteria kind only.
	ErrMissingIdentity = errors.New("enrollment has no management identity")

	// ErrCertificateNotFound indicates no certificate matched the management
	// CA issuer pattern, or the enrollment carries no thumbprint property.
	// Fatal for the affected kind only.
	ErrCertificateNotFound = errors.New("management certificate not found")

	// ErrKeyNotFound indicates a store path does not exist.
	ErrKeyNotFound = errors.New("store key not found")

	// ErrValueNotFound indicates a store value is absent under an existing
	// path. Reconciliation treats an absent current value as the empty
	// string, not as a failure.
	ErrValueNotFound = errors.New("store value not found")
)
