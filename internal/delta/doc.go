// Package delta turns two successive snapshots of cumulative per-server
// counters into per-server deltas and picks the single server that received
// the most traffic during the cycle.
//
// The winner is the server with the strictly largest positive delta. Ties go
// to the server that appears first in snapshot order. A counter that moved
// backwards (a backend restart) counts as zero.
package delta
