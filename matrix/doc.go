// Package matrix implements the column-oriented sparse matrices of the
// persistence engine.
//
// Five species share the column operation surface but maintain different
// invariants after each operation:
//
//   - Base: append-only echelon storage with operations lifted to column
//     indices. The building block under the other species.
//   - Compressed: a base matrix in which identical columns share one
//     physical column, tracked by a union-find; adding to one member of a
//     class updates every member.
//   - Boundary: the reduced matrix R of the R=DU decomposition together
//     with the pivot table, driving standard and twist reduction.
//   - RU: R plus the unit upper-triangular U mirroring every column
//     operation; required for representative cycles and vineyard updates.
//   - Chain: a compatible basis of the cycle/boundary space in which every
//     column carries its pivot and an optional pairing.
//
// Columns are appended in filtration order; a boundary may only reference
// rows inserted before it. Reduction and pair extraction work purely through
// the surface of these types; drivers never touch columns directly.
package matrix
