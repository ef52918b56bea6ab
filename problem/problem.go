// Package problem holds lattice problem instances A·S = T in Z_q[X]/f used to
// exercise knowledge proofs before they are made zero knowledge.
package problem

import (
	"errors"
	"fmt"
	"math/big"

	"logproof-fixtures/poly"
)

var (
	ErrDimension   = errors.New("problem: dimension mismatch")
	ErrBound       = errors.New("problem: coefficient exceeds bound")
	ErrUnsupported = errors.New("problem: unsupported ring for relation check")
	ErrRelation    = errors.New("problem: A·S != T")
)

// Bounds lists, per coefficient degree, the largest magnitude allowed for the
// matching polynomial of S.
type Bounds []uint64

// LatticeProblem is a problem of the form A·S = T in Z_q[X]/f. Any limb size
// is allowed for the coefficient ring.
type LatticeProblem[E comparable] struct {
	// Public A.
	A poly.Matrix[poly.Polynomial[E]]

	// Private message and encryption components S.
	S poly.Matrix[poly.Polynomial[E]]

	// Result of A·S.
	T poly.Matrix[poly.Polynomial[E]]

	// Polynomial divisor.
	F poly.Polynomial[E]

	// Bounds on the entries of S, same shape as S.
	B poly.Matrix[Bounds]
}

// Validate checks that the shapes of A, S, T and B are consistent.
func (p *LatticeProblem[E]) Validate() error {
	if p.A.Cols() != p.S.Rows() {
		return fmt.Errorf("A is %dx%d, S is %dx%d: %w", p.A.Rows(), p.A.Cols(), p.S.Rows(), p.S.Cols(), ErrDimension)
	}
	if p.T.Rows() != p.A.Rows() || p.T.Cols() != p.S.Cols() {
		return fmt.Errorf("T is %dx%d, want %dx%d: %w", p.T.Rows(), p.T.Cols(), p.A.Rows(), p.S.Cols(), ErrDimension)
	}
	if p.B.Rows() != p.S.Rows() || p.B.Cols() != p.S.Cols() {
		return fmt.Errorf("B is %dx%d, S is %dx%d: %w", p.B.Rows(), p.B.Cols(), p.S.Rows(), p.S.Cols(), ErrDimension)
	}
	if len(p.F.Coeffs) < 2 {
		return fmt.Errorf("divisor f has degree %d: %w", p.F.Degree(), ErrDimension)
	}
	return nil
}

// Centerer maps ring elements to their centered integer representatives.
type Centerer[E comparable] interface {
	Centered(e E) *big.Int
}

// CheckBounds asserts every coefficient of every entry of S lies in
// [-bound, bound] for the bound of its degree. Coefficients past the end of
// a Bounds list must be zero.
func (p *LatticeProblem[E]) CheckBounds(c Centerer[E]) error {
	if sr, sc := p.S.Shape(); p.B.Rows() != sr || p.B.Cols() != sc {
		br, bc := p.B.Shape()
		return fmt.Errorf("B is %dx%d, S is %dx%d: %w", br, bc, sr, sc, ErrDimension)
	}
	for i := 0; i < p.S.Rows(); i++ {
		for j := 0; j < p.S.Cols(); j++ {
			s, b := p.S.At(i, j), p.B.At(i, j)
			for k, coeff := range s.Coeffs {
				v := c.Centered(coeff)
				var bound uint64
				if k < len(b) {
					bound = b[k]
				}
				if v.CmpAbs(new(big.Int).SetUint64(bound)) > 0 {
					return fmt.Errorf("S[%d][%d] coefficient %d is %s, bound %d: %w", i, j, k, v, bound, ErrBound)
				}
			}
		}
	}
	return nil
}
