package convert

import (
	"fmt"
	"time"

	"logproof-fixtures/backend"
	"logproof-fixtures/internal/logging"
	"logproof-fixtures/poly"
	"logproof-fixtures/prof"
	"logproof-fixtures/zq"
)

// ToPolynomial rebuilds every polynomial of arr from its multiprecision view,
// with no assumption on coefficient size.
//
// Each coefficient spans CoeffModulusSize words, of which the first
// r.Limbs() are kept. The backend pads with zero words; a nonzero word in the
// discarded tail fails with zq.ErrLimbOverflow. A coefficient that is not a
// residue of r fails with zq.ErrOutOfRange. Either failure aborts the whole
// conversion.
func ToPolynomial[E comparable](r poly.Ring[E], arr *backend.PolynomialArray) ([]poly.Polynomial[E], error) {
	defer prof.Track(time.Now(), "convert.ToPolynomial")
	if arr == nil {
		return nil, fmt.Errorf("nil polynomial array: %w", zq.ErrMalformedBuffer)
	}
	n := r.Limbs()
	if n < 1 || n > zq.MaxLimbs {
		return nil, fmt.Errorf("ring limb count %d: %w", n, zq.ErrMalformedBuffer)
	}
	words, err := arr.Multiprecision()
	if err != nil {
		return nil, err
	}
	chunk := arr.CoeffModulusSize()
	degree := arr.PolyModulusDegree()

	values := make([]zq.Uint, len(words)/chunk)
	for c := range values {
		u, err := limbsFromChunk(words[c*chunk:(c+1)*chunk], n)
		if err != nil {
			return nil, fmt.Errorf("polynomial %d coefficient %d: %w", c/degree, c%degree, err)
		}
		values[c] = u
	}

	zero := zq.NewUint(n)
	out := make([]poly.Polynomial[E], arr.NumPolynomials())
	for i := range out {
		coeffs := poly.StripTrailing(values[i*degree:(i+1)*degree], zero)
		elems := make([]E, len(coeffs))
		for j, u := range coeffs {
			e, err := r.FromUint(u)
			if err != nil {
				return nil, fmt.Errorf("polynomial %d coefficient %d: %w", i, j, err)
			}
			elems[j] = e
		}
		out[i] = poly.Polynomial[E]{Coeffs: elems}
	}
	logging.Logger().Debug().
		Int("polynomials", len(out)).
		Int("degree", degree).
		Int("chunk", chunk).
		Int("limbs", n).
		Msg("rebuilt multiprecision polynomials")
	return out, nil
}

// limbsFromChunk keeps the first n words of chunk, zero-extending short chunks.
func limbsFromChunk(chunk []uint64, n int) (zq.Uint, error) {
	for k := n; k < len(chunk); k++ {
		if chunk[k] != 0 {
			return zq.Uint{}, fmt.Errorf("discarded word %d of %d is nonzero: %w", k, len(chunk), zq.ErrLimbOverflow)
		}
	}
	limbs := make([]uint64, n)
	copy(limbs, chunk)
	return zq.UintFromWords(limbs)
}
