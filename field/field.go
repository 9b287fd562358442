package field

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroInverse is returned when the inverse of zero is requested.
	ErrZeroInverse = errors.New("field: zero has no multiplicative inverse")
)

// ErrNotPrime indicates that the requested characteristic is not a prime.
type ErrNotPrime struct {
	Characteristic uint32
}

func (e *ErrNotPrime) Error() string {
	return fmt.Sprintf("field: characteristic %d is not prime", e.Characteristic)
}

// Element is a normalized field element in {0, ..., p-1}.
type Element = uint32

// Arithmetic provides the operations of Z/p for a fixed prime p.
//
// Implementations must be safe for concurrent use; they carry no mutable
// state after construction.
type Arithmetic interface {
	// Characteristic returns p.
	Characteristic() uint32

	// Normalize maps an arbitrary signed value to its representative in {0, ..., p-1}.
	Normalize(v int64) Element

	// Add returns a + b.
	Add(a, b Element) Element

	// Sub returns a - b.
	Sub(a, b Element) Element

	// Neg returns -a.
	Neg(a Element) Element

	// Mul returns a * b.
	Mul(a, b Element) Element

	// Inv returns the multiplicative inverse of a. Inverting zero is an error.
	Inv(a Element) (Element, error)

	// MulAdd returns c*a + b, the fused operation of the reduction hot path.
	MulAdd(a, c, b Element) Element
}

// New returns the arithmetic for the given characteristic.
// p = 2 yields the boolean specialization, odd primes yield a
// table-backed Z/p. Non-prime characteristics are rejected.
func New(p uint32) (Arithmetic, error) {
	if p == 2 {
		return Z2{}, nil
	}
	return NewZp(p)
}

// Z2 is the two-element field. Addition is XOR, multiplication is AND.
type Z2 struct{}

// Characteristic returns 2.
func (Z2) Characteristic() uint32 { return 2 }

// Normalize reduces v modulo 2.
func (Z2) Normalize(v int64) Element {
	return Element(v & 1)
}

// Add returns a XOR b.
func (Z2) Add(a, b Element) Element { return a ^ b }

// Sub returns a XOR b; subtraction and addition coincide in Z/2.
func (Z2) Sub(a, b Element) Element { return a ^ b }

// Neg returns a; every element is its own negative.
func (Z2) Neg(a Element) Element { return a }

// Mul returns a AND b.
func (Z2) Mul(a, b Element) Element { return a & b }

// Inv returns 1 for 1 and an error for 0.
func (Z2) Inv(a Element) (Element, error) {
	if a == 0 {
		return 0, ErrZeroInverse
	}
	return 1, nil
}

// MulAdd returns (c AND a) XOR b.
func (Z2) MulAdd(a, c, b Element) Element { return (c & a) ^ b }

// Zp is the field of integers modulo an odd prime p.
// Inverses are precomputed once; all other operations are plain
// modular arithmetic on uint64 intermediates.
type Zp struct {
	p   uint32
	inv []Element
}

// NewZp builds the arithmetic for an odd prime p.
func NewZp(p uint32) (*Zp, error) {
	if !isPrime(p) {
		return nil, &ErrNotPrime{Characteristic: p}
	}

	f := &Zp{p: p, inv: make([]Element, p)}

	// inv[a] via exponentiation: a^(p-2) mod p. Built once, read-only after.
	for a := uint32(1); a < p; a++ {
		f.inv[a] = powMod(a, p-2, p)
	}

	return f, nil
}

// Characteristic returns p.
func (f *Zp) Characteristic() uint32 { return f.p }

// Normalize maps v to its representative in {0, ..., p-1}.
func (f *Zp) Normalize(v int64) Element {
	m := v % int64(f.p)
	if m < 0 {
		m += int64(f.p)
	}
	return Element(m)
}

// Add returns (a + b) mod p.
func (f *Zp) Add(a, b Element) Element {
	s := a + b
	if s >= f.p {
		s -= f.p
	}
	return s
}

// Sub returns (a - b) mod p.
func (f *Zp) Sub(a, b Element) Element {
	if a >= b {
		return a - b
	}
	return a + f.p - b
}

// Neg returns (-a) mod p.
func (f *Zp) Neg(a Element) Element {
	if a == 0 {
		return 0
	}
	return f.p - a
}

// Mul returns (a * b) mod p.
func (f *Zp) Mul(a, b Element) Element {
	return Element(uint64(a) * uint64(b) % uint64(f.p))
}

// Inv returns the cached inverse of a. Inverting zero is an error.
func (f *Zp) Inv(a Element) (Element, error) {
	if a == 0 {
		return 0, ErrZeroInverse
	}
	return f.inv[a], nil
}

// MulAdd returns (c*a + b) mod p.
func (f *Zp) MulAdd(a, c, b Element) Element {
	return Element((uint64(c)*uint64(a) + uint64(b)) % uint64(f.p))
}

func powMod(base, exp, mod uint32) uint32 {
	result := uint64(1)
	b := uint64(base) % uint64(mod)
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result * b % uint64(mod)
		}
		b = b * b % uint64(mod)
	}
	return uint32(result)
}

func isPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint32(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
