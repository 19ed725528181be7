// Package main (cmd/reconciler) implements the certificate binding drift
// corrector for enrolled devices.
//
// An enrolled device authenticates to its management service with a TLS
// client certificate. Two values in the device configuration store bind the
// enrollment to that certificate: the certificate search criteria, derived
// from the enrollment's management identity, and the certificate reference,
// derived from the enrollment's recorded thumbprint. If either value drifts
// from what the enrollment implies, policy sync silently breaks.
//
// The tool locates the active enrollment, derives both expected values,
// compares them against the store and rewrites whichever has drifted. Each
// value is handled independently: a failure on one never blocks the other.
// Every step is appended to the operation log, and the process exits
// non-zero if the enrollment cannot be found or any value ends in failure.
//
// On non-Windows platforms (or with --dry-run against a captured state) the
// file and memory store backends allow exercising the full pipeline without
// touching a live device.
package main
