// Package enrollment locates the device's active management enrollment and
// resolves the identity data the reconciled values are derived from.
//
// Locator walks the enrollments root of the configuration store and picks
// the record whose ProviderID property equals the requested provider.
// Enrollment subkeys are visited in sorted order so the result is
// deterministic even if more than one record matches.
//
// Resolver answers the two kind-specific questions: the management identity
// (EntDMID) read from the enrollment's DMClient settings key, and the
// enrollment's own certificate thumbprint property. It also verifies,
// through the certificate store, that a certificate issued by the
// management CA is actually installed.
package enrollment
