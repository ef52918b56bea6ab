// Package poly holds ring-generic polynomials and matrices of them.
package poly

import (
	"slices"

	"logproof-fixtures/zq"
)

// Ring is the capability set a coefficient type needs: an additive identity,
// a total map from small integers and a fallible map from fixed-limb integers.
type Ring[E comparable] interface {
	Limbs() int
	Zero() E
	FromInt64(v int64) E
	FromUint(u zq.Uint) (E, error)
}

// Polynomial stores coefficients by ascending degree. A normalized polynomial
// has no trailing zero coefficient; the zero polynomial has no coefficients.
type Polynomial[E comparable] struct {
	Coeffs []E
}

// Make builds a normalized polynomial from signed coefficients.
func Make[E comparable](r Ring[E], coeffs []int64) Polynomial[E] {
	coeffs = StripTrailing(coeffs, 0)
	out := make([]E, len(coeffs))
	for i, c := range coeffs {
		out[i] = r.FromInt64(c)
	}
	return Polynomial[E]{Coeffs: out}
}

// Normalize drops trailing coefficients equal to zero.
func (p Polynomial[E]) Normalize(zero E) Polynomial[E] {
	return Polynomial[E]{Coeffs: StripTrailing(p.Coeffs, zero)}
}

// Degree returns the index of the last coefficient, or -1 for no coefficients.
func (p Polynomial[E]) Degree() int { return len(p.Coeffs) - 1 }

func (p Polynomial[E]) Equal(q Polynomial[E]) bool {
	return slices.Equal(p.Coeffs, q.Coeffs)
}

// Coeff returns the coefficient of X^i, or zero past the stored length.
func (p Polynomial[E]) Coeff(i int, zero E) E {
	if i < 0 || i >= len(p.Coeffs) {
		return zero
	}
	return p.Coeffs[i]
}

// Clone returns a polynomial that does not share storage with p.
func (p Polynomial[E]) Clone() Polynomial[E] {
	return Polynomial[E]{Coeffs: slices.Clone(p.Coeffs)}
}
