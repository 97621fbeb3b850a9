// Package coverage holds the result of a coverage query: an immutable,
// sorted set of non-overlapping cells, each flagged full or partial.
//
// A CellSet is read through one of two materializations:
//
//   - Hierarchical: one row per cell, in canonical depth-first order.
//   - Flat: every cell expanded to a uniform depth, 4^(D-d) rows per cell.
//
// Flat rows can also be streamed with Leaves, which expands cells on the fly
// and never holds the expanded set in memory.
//
// Internally each cell is packed into one uint64 with a sentinel bit that
// encodes its depth relative to the set's maximum depth, so that sorting the
// packed values yields the canonical order.
package coverage
