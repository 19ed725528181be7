// Package reconcile detects and corrects drift in the two configuration
// values binding an enrollment to its client authentication certificate.
//
// BuildSearchCriteria and BuildReference are the pure derivations of the
// expected values; they depend only on the resolved identity data, never on
// what the store currently holds.
//
// Engine drives one pass of the state machine per value kind:
//
//	DISCOVER -> RESOLVE -> COMPARE -> {MATCH | CORRECT} -> REPORT
//
// with a FAILED terminal reachable from DISCOVER and RESOLVE (and from a
// rejected correcting write). The enrollment is discovered once and shared
// by both kinds; a discovery failure aborts the run before either kind is
// processed. Kind failures are isolated: a failed resolution or write for
// one kind never stops the other. A corrected value is written exactly
// once, with no retry, and re-running immediately afterwards reports a
// match.
package reconcile
