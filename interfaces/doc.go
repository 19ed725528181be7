// Package interfaces defines core interfaces and types for the MDM
// certificate reconciler, separating interface definitions from
// implementations.
//
// The package provides the contract between the components of the tool:
//
// # Store Interfaces
//
// ConfigStore: Path-addressed key/value access to the device's local
// configuration store (the Windows registry on enrolled devices, a
// directory tree or in-memory map elsewhere).
//
// CertStore: Enumerable view of the machine personal ("MY") certificate
// store.
//
// # Domain Types
//
// EnrollmentID: GUID-shaped identifier of an enrollment record.
//
// Enrollment: A device's registration with a management provider, located
// by its ProviderID property.
//
// CertificateRecord: Thumbprint, subject and issuer of one installed
// certificate.
//
// ValueKind: The two reconciled configuration values — the certificate
// search criteria and the certificate reference.
//
// ReconcileResult: The per-kind outcome of one reconciliation pass.
//
// # Error Taxonomy
//
// Sentinel errors mirror the failure classes of a run: ErrEnrollmentNotFound
// is fatal for the whole run, ErrMissingIdentity and ErrCertificateNotFound
// are fatal for a single value kind, and store errors are reported without
// retry.
package interfaces
