// File: internal/plan/doc.go
// Brief: Execution planning for target dependency graphs.

// Package plan builds the subgraph reachable from a root target, partitions it
// into levels of mutually independent targets, and computes the transitive
// dependency set of every reachable target.
package plan
