// Package certstore provides enumerable views of the machine personal
// ("MY") certificate store and the deterministic selection rule used to
// pick the management certificate.
//
// Backends are specified using URI format and created through the Factory:
//
//   - system://MY - the machine personal store via the platform certificate
//     APIs (only available on windows builds)
//   - dir:///etc/reconciler/certs - PEM certificate files in a directory
//   - mem:// - a fixed record list, used in unit tests
//
// Thumbprints are the uppercase hex SHA-1 of the certificate DER encoding,
// matching how the device agent records them.
//
// # Selection
//
// SelectByIssuer filters records whose issuer contains a management CA
// pattern and picks one deterministically: the most recently issued
// certificate wins, and issuance-time ties fall back to the
// lexicographically smallest thumbprint. Enumeration order of the backing
// store never influences the result.
package certstore
