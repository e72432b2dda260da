// Package qptrie implements an ordered in-memory map from byte-string keys to
// arbitrary values, organized as a QP-Trie: a compressed radix tree that
// branches on 4-bit half-bytes (nibbles).
//
// A trie consists of connected Twigs (branches and leaves). All branches end
// with a leaf. A branch stores no key bytes at all - only the nibble index it
// discriminates on (its choice point) and a 17-bit occupancy bitmap over its
// child slots:
//
//   - slot 0      - a key that ends right before the choice point;
//   - slot 1 + n  - a key whose nibble at the choice point has value n.
//
// Children are packed densely in ascending slot order, so the position of a
// child is the popcount of the bitmap bits below its slot. Choice points
// strictly increase with depth and every branch has at least two children;
// a branch left with a single child after a removal is collapsed into it.
//
// Example trie over the keys "a", "ab", "abc" and "x":
//
//	[branch ch=0] --+-- [branch ch=2] --+-- [leaf "a"]        (slot 0)
//	                |                   |
//	                |                   `-- [branch ch=4] --+-- [leaf "ab"]   (slot 0)
//	                |                                       |
//	                |                                       `-- [leaf "abc"]  (slot 7)
//	                |
//	                `-- [leaf "x"]
//
// Because slot order follows byte order (even nibble indexes address the high
// four bits of a byte) and a short key sorts before its extensions, the
// depth-first walk yields keys in exact lexicographic byte order.
//
// A Trie is a single-owner structure: concurrent readers are fine as long as
// no writer is active, and any writer needs exclusive access. The package
// provides no locking of its own.
package qptrie
