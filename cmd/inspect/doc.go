// Package main (cmd/inspect) implements a read-only view of the
// enrollment's certificate binding state.
//
// It locates the active enrollment, resolves the management identity and
// recorded thumbprint, derives the expected binding values and prints a
// JSON document with the current values, the expected values, the drift
// verdict per value and all certificate candidates in the machine personal
// store. Nothing is written; the exit status reflects only whether the
// enrollment could be located.
package main
