package problem

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v4/ring"

	"logproof-fixtures/poly"
	"logproof-fixtures/zq"
)

// lattigoMatrix is a row-major matrix of coefficient-domain lattigo polynomials.
type lattigoMatrix [][]*ring.Poly

// CheckRelation recomputes A·S in Z_q[X]/(X^N+1) with the NTT of rq and
// compares it with T. rq must have the single modulus q of zr, and F must be
// X^N + 1.
func CheckRelation(rq *ring.Ring, zr *zq.Ring, p *LatticeProblem[zq.Elem]) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := checkCompatible(rq, zr); err != nil {
		return err
	}
	n := rq.NewPoly().N()
	if !p.F.Equal(cyclotomic(zr, n)) {
		return fmt.Errorf("f is not X^%d+1: %w", n, ErrUnsupported)
	}
	A, err := toLattigoMatrix(rq, p.A)
	if err != nil {
		return fmt.Errorf("A: %w", err)
	}
	S, err := toLattigoMatrix(rq, p.S)
	if err != nil {
		return fmt.Errorf("S: %w", err)
	}
	T, err := toLattigoMatrix(rq, p.T)
	if err != nil {
		return fmt.Errorf("T: %w", err)
	}
	AS, err := mulMatrix(rq, A, S)
	if err != nil {
		return err
	}
	for i := range AS {
		for j := range AS[i] {
			if !rq.Equal(AS[i][j], T[i][j]) {
				return fmt.Errorf("row %d col %d: %w", i, j, ErrRelation)
			}
		}
	}
	return nil
}

func checkCompatible(rq *ring.Ring, zr *zq.Ring) error {
	if rq == nil || zr == nil {
		return fmt.Errorf("nil ring: %w", ErrUnsupported)
	}
	if len(rq.Modulus) != 1 {
		return fmt.Errorf("lattigo ring has %d moduli, want 1: %w", len(rq.Modulus), ErrUnsupported)
	}
	q := zr.Modulus()
	if !q.IsUint64() || q.Uint64() != rq.Modulus[0] {
		return fmt.Errorf("moduli differ (%s vs %d): %w", q, rq.Modulus[0], ErrUnsupported)
	}
	return nil
}

// cyclotomic returns X^n + 1 over zr.
func cyclotomic(zr *zq.Ring, n int) poly.Polynomial[zq.Elem] {
	coeffs := make([]int64, n+1)
	coeffs[0], coeffs[n] = 1, 1
	return poly.Make[zq.Elem](zr, coeffs)
}

func toLattigo(rq *ring.Ring, p poly.Polynomial[zq.Elem]) (*ring.Poly, error) {
	out := rq.NewPoly()
	if len(p.Coeffs) > out.N() {
		return nil, fmt.Errorf("degree %d exceeds ring degree %d: %w", p.Degree(), out.N(), ErrDimension)
	}
	for j, c := range p.Coeffs {
		out.Coeffs[0][j] = c.Uint().Word(0)
	}
	return out, nil
}

func toLattigoMatrix(rq *ring.Ring, m poly.Matrix[poly.Polynomial[zq.Elem]]) (lattigoMatrix, error) {
	out := make(lattigoMatrix, m.Rows())
	for i := range out {
		out[i] = make([]*ring.Poly, m.Cols())
		for j := range out[i] {
			lp, err := toLattigo(rq, m.At(i, j))
			if err != nil {
				return nil, fmt.Errorf("entry (%d,%d): %w", i, j, err)
			}
			out[i][j] = lp
		}
	}
	return out, nil
}

// mulMatrix computes A·S in coefficient domain. Inputs are left untouched.
func mulMatrix(rq *ring.Ring, A, S lattigoMatrix) (lattigoMatrix, error) {
	if len(A) == 0 || len(S) == 0 {
		return nil, fmt.Errorf("empty matrix: %w", ErrDimension)
	}
	inner := len(A[0])
	if inner != len(S) {
		return nil, fmt.Errorf("A has %d cols, S has %d rows: %w", inner, len(S), ErrDimension)
	}
	cols := len(S[0])
	sNTT := make(lattigoMatrix, len(S))
	for k := range S {
		if len(S[k]) != cols {
			return nil, fmt.Errorf("ragged S at row %d: %w", k, ErrDimension)
		}
		sNTT[k] = make([]*ring.Poly, cols)
		for j := range S[k] {
			sNTT[k][j] = toNTT(rq, S[k][j])
		}
	}
	out := make(lattigoMatrix, len(A))
	tmp := rq.NewPoly()
	for i := range A {
		if len(A[i]) != inner {
			return nil, fmt.Errorf("ragged A at row %d: %w", i, ErrDimension)
		}
		aNTT := make([]*ring.Poly, inner)
		for k := range A[i] {
			aNTT[k] = toNTT(rq, A[i][k])
		}
		out[i] = make([]*ring.Poly, cols)
		for j := 0; j < cols; j++ {
			acc := rq.NewPoly()
			for k := 0; k < inner; k++ {
				rq.MulCoeffsMontgomery(aNTT[k], sNTT[k][j], tmp)
				rq.Add(acc, tmp, acc)
			}
			rq.InvNTT(acc, acc)
			rq.InvMForm(acc, acc)
			out[i][j] = acc
		}
	}
	return out, nil
}

func toNTT(rq *ring.Ring, p *ring.Poly) *ring.Poly {
	out := p.CopyNew()
	rq.MForm(out, out)
	rq.NTT(out, out)
	return out
}
