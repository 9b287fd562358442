// Package field implements prime-field arithmetic for persistence computations.
//
// Two specializations matter in practice: Z/2, where every operation collapses
// to XOR/AND and values are stored implicitly (absence means zero), and Z/p for
// an odd prime p, where multiplicative inverses come from a lookup table built
// once at construction time.
//
// All values are normalized representatives in {0, ..., p-1}. The field is
// fixed for the lifetime of a matrix.
package field
