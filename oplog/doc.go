// Package oplog provides the append-only operation log the reconciler
// reports every step through.
//
// Each run writes one line per event carrying an RFC3339 timestamp, the run
// identifier, a severity level, a monotonically increasing step ordinal and
// a message. Logging is best effort: a sink write failure never surfaces to
// the caller and never aborts reconciliation; failed appends are only
// counted and can be read back via Dropped.
package oplog
