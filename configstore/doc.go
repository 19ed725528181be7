// Package configstore provides path-addressed key/value store backends for
// the device's local configuration store, plus the typed path layout of the
// enrollment records the reconciler operates on.
//
// # Backends
//
// Store backends are specified using URI format and created through the
// Factory:
//
//   - registry:// — the live Windows registry under HKEY_LOCAL_MACHINE
//     (only available on windows builds)
//   - file:///var/lib/reconciler/store — a directory tree, one file per
//     value, used for dry runs and integration tests on any platform
//   - mem:// — an in-memory map, used in unit tests
//
// All backends speak backslash-separated paths so store paths read exactly
// as they do on an enrolled device, e.g.
//
//	SOFTWARE\Microsoft\Enrollments\<id>\DMClient\MS DM Server
//
// # Path Layout
//
// Paths carries the three well-known locations of the enrollment data: the
// enrollments root keyed by provider match, the enrollment-scoped identity
// key, and the enrollment-scoped protected settings key holding the two
// reconciled values. Constructing store paths through Paths instead of ad
// hoc string concatenation keeps the enrollment identifier and value kind
// as structured inputs.
package configstore
