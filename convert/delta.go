package convert

import (
	"fmt"

	"logproof-fixtures/backend"
	"logproof-fixtures/zq"
)

// BFVDelta returns Δ = floor(q/t) in n limbs, where q is the ciphertext
// coefficient modulus given as a ring value and t the plaintext modulus.
//
// The division is exact integer division; Z_q division is not involved. A
// zero t fails with zq.ErrZeroModulus before dividing, and a quotient that
// needs more than n limbs fails with zq.ErrLimbOverflow rather than being
// truncated.
func BFVDelta(q zq.Elem, t uint64, n int) (zq.Uint, error) {
	return BFVDeltaUint(q.Uint(), t, n)
}

// BFVDeltaUint is BFVDelta for a q that need not be reduced modulo anything,
// such as the modulus of a zq.Ring itself.
func BFVDeltaUint(q zq.Uint, t uint64, n int) (zq.Uint, error) {
	if t == 0 {
		return zq.Uint{}, fmt.Errorf("plaintext modulus: %w", zq.ErrZeroModulus)
	}
	quo, _, err := q.DivRemWord(t)
	if err != nil {
		return zq.Uint{}, err
	}
	delta, err := quo.Resize(n)
	if err != nil {
		return zq.Uint{}, fmt.Errorf("delta %s into %d limbs: %w", quo, n, err)
	}
	return delta, nil
}

// BFVDeltaFromModuli computes Δ for the coefficient modulus q = Π moduli,
// which must be representable in r.
func BFVDeltaFromModuli(r *zq.Ring, moduli []backend.Modulus, t uint64, n int) (zq.Uint, error) {
	q, err := r.FromBig(backend.ModulusProduct(moduli))
	if err != nil {
		return zq.Uint{}, fmt.Errorf("coefficient modulus: %w", err)
	}
	return BFVDelta(q, t, n)
}
