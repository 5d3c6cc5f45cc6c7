//
// Copyright as per Creative Commons Legal Code license, which can
// be found in the file COPYING
//

/*
Package balanced is a standalone, zero-dependency Go implementation of
an AVL tree mapping opaque keys to opaque values under a caller
supplied comparator.

Unlike the intrusive-node style common in kernel data structures (and
in the C lineage this package's rotation formulas trace to), this
implementation owns its own nodes: callers pass keys and values, not
pre-allocated node headers to embed.

This implementation is non-recursive on every hot path (Insert, Probe,
Search, Remove), so it does not suffer from stack overflows on
pathological trees; Height, MinHeight, and PathLength remain recursive
since they exist only as diagnostics.

Supported operations: Insert, Probe, Search, Remove, Clear, Traverse,
Free, MinKey, MaxKey, plus an Iterator for bidirectional ordered
traversal, plus the Height/MinHeight/PathLength diagnostics.
*/
package balanced
