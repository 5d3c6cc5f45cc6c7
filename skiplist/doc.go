/*
Package skiplist is a standalone, zero-dependency Go implementation of
a probabilistic skip list mapping opaque keys to opaque values under a
caller-supplied comparator.

A skip list trades the pointer-rebalancing discipline of a balanced
tree for randomized structure: each node's tower height is drawn from
a per-list generator through a biased threshold test (see nextLevel), and search
descends level by level from a sentinel head, recording the last node
visited at each level in an update vector. That update vector is the
splice point for both insert and remove.

Supported operations: Insert, Probe, Search, Remove, Clear, Traverse,
Free, MinKey, MaxKey, Verify, plus an Iterator for bidirectional
ordered traversal.
*/
package skiplist
