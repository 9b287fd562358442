// Package column implements the sparse column containers of the persistence
// matrix engine.
//
// A column is an ordered sparse vector over a prime field: a sequence of
// cells (row, value) with strictly increasing row indices and no stored
// zeros. Five container variants share one operation surface and differ only
// in their hot-path trade-offs:
//
//   - KindVector: sorted slice of cell pointers, linear merge additions.
//     The default; cache-friendly with O(log n) membership.
//   - KindList: singly-linked list, merges splice nodes without relocating
//     cells. Preferable when many columns share rows through the row index.
//   - KindSet: unordered map with a lazily recomputed pivot. Over Z/2 the
//     container degenerates to a roaring bitmap and addition to a symmetric
//     difference.
//   - KindHeap: lazy additions pushed onto a binary heap, compacted on read.
//     Amortized wins when many additions precede a pivot query.
//   - KindOrdered: sorted slice with in-place binary-search edits, for use
//     with ordered row containers.
//
// All binary operations snapshot their operands before writing, so they are
// safe when source and target resolve to the same physical column, as happens
// under column compression.
//
// Cells are pooled per matrix. When row access is enabled the pool links
// every constructed cell into an inverted row index, giving O(1) removal and
// row-wise traversal of the matrix.
package column
