package problem

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v4/ring"
	"github.com/tuneinsight/lattigo/v4/utils"

	"logproof-fixtures/backend"
	"logproof-fixtures/convert"
	"logproof-fixtures/internal/logging"
	"logproof-fixtures/poly"
	"logproof-fixtures/zq"
)

// Generate builds a rows×cols problem A·s = t over rq with a secret column s
// whose coefficients lie in [-bound, bound]. Sampling is deterministic in
// seed. The sampled lattigo polynomials are exported as backend buffers and
// read back through the converters, so the returned problem is exactly what a
// caller decoding the same buffers would see.
func Generate(rq *ring.Ring, rows, cols int, bound int64, seed []byte) (*LatticeProblem[zq.Elem], *zq.Ring, error) {
	if rows <= 0 || cols <= 0 {
		return nil, nil, fmt.Errorf("shape %dx%d: %w", rows, cols, ErrDimension)
	}
	if bound < 0 {
		return nil, nil, fmt.Errorf("negative bound %d", bound)
	}
	if rq == nil || len(rq.Modulus) != 1 {
		return nil, nil, fmt.Errorf("want a single-modulus ring: %w", ErrUnsupported)
	}
	zr, err := zq.NewRing(backend.ModulusProduct(backend.Moduli(rq.Modulus...)), 1)
	if err != nil {
		return nil, nil, err
	}
	if 2*uint64(bound) >= rq.Modulus[0] {
		return nil, nil, fmt.Errorf("bound %d is not small modulo %d: %w", bound, rq.Modulus[0], zq.ErrNotSmall)
	}
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, nil, fmt.Errorf("prng: %w", err)
	}

	us := ring.NewUniformSampler(prng, rq)
	A := make(lattigoMatrix, rows)
	flatA := make([]*ring.Poly, 0, rows*cols)
	for i := range A {
		A[i] = make([]*ring.Poly, cols)
		for j := range A[i] {
			A[i][j] = rq.NewPoly()
			us.Read(A[i][j])
			flatA = append(flatA, A[i][j])
		}
	}
	S := make(lattigoMatrix, cols)
	flatS := make([]*ring.Poly, cols)
	for k := range S {
		s := rq.NewPoly()
		if err := fillBounded(rq, prng, s, bound); err != nil {
			return nil, nil, err
		}
		S[k] = []*ring.Poly{s}
		flatS[k] = s
	}
	T, err := mulMatrix(rq, A, S)
	if err != nil {
		return nil, nil, err
	}
	flatT := make([]*ring.Poly, rows)
	for i := range T {
		flatT[i] = T[i][0]
	}

	p := &LatticeProblem[zq.Elem]{}
	if p.A, err = importMP(rq, zr, flatA, rows, cols); err != nil {
		return nil, nil, fmt.Errorf("A: %w", err)
	}
	if p.T, err = importMP(rq, zr, flatT, rows, 1); err != nil {
		return nil, nil, fmt.Errorf("T: %w", err)
	}
	if p.S, err = importSmall(rq, zr, flatS); err != nil {
		return nil, nil, fmt.Errorf("S: %w", err)
	}
	n := rq.NewPoly().N()
	p.F = cyclotomic(zr, n)
	p.B = poly.NewMatrix[Bounds](cols, 1)
	for k := 0; k < cols; k++ {
		b := make(Bounds, n)
		for d := range b {
			b[d] = uint64(bound)
		}
		p.B.Set(k, 0, b)
	}
	logging.Logger().Debug().
		Int("rows", rows).
		Int("cols", cols).
		Int("degree", n).
		Uint64("q", rq.Modulus[0]).
		Int64("bound", bound).
		Msg("generated lattice problem")
	return p, zr, nil
}

func importMP(rq *ring.Ring, zr *zq.Ring, polys []*ring.Poly, rows, cols int) (poly.Matrix[poly.Polynomial[zq.Elem]], error) {
	arr, _, err := backend.FromLattigo(rq, polys...)
	if err != nil {
		return poly.Matrix[poly.Polynomial[zq.Elem]]{}, err
	}
	ps, err := convert.ToPolynomial[zq.Elem](zr, arr)
	if err != nil {
		return poly.Matrix[poly.Polynomial[zq.Elem]]{}, err
	}
	m := poly.NewMatrix[poly.Polynomial[zq.Elem]](rows, cols)
	for idx, p := range ps {
		m.Set(idx/cols, idx%cols, p)
	}
	return m, nil
}

func importSmall(rq *ring.Ring, zr *zq.Ring, polys []*ring.Poly) (poly.Matrix[poly.Polynomial[zq.Elem]], error) {
	arr, moduli, err := backend.FromLattigo(rq, polys...)
	if err != nil {
		return poly.Matrix[poly.Polynomial[zq.Elem]]{}, err
	}
	ps, err := convert.ToPolynomialBySmallCoeffs[zq.Elem](zr, moduli, arr)
	if err != nil {
		return poly.Matrix[poly.Polynomial[zq.Elem]]{}, err
	}
	return poly.ColumnVector(ps), nil
}

// fillBounded fills out with coefficients drawn uniformly from [-bound, bound]
// by rejection sampling on 64-bit words, then embeds them modulo every limb.
func fillBounded(r *ring.Ring, prng io.Reader, out *ring.Poly, bound int64) error {
	span := uint64(2*bound + 1)
	threshold := (^uint64(0) / span) * span
	buf := make([]byte, 8)
	for i := range out.Coeffs[0] {
		var word uint64
		for {
			if _, err := io.ReadFull(prng, buf); err != nil {
				return fmt.Errorf("prng read: %w", err)
			}
			word = binary.LittleEndian.Uint64(buf)
			if word < threshold {
				break
			}
		}
		sample := int64(word%span) - bound
		for level := range out.Coeffs {
			out.Coeffs[level][i] = convert.DecenterWord(sample, r.Modulus[level])
		}
	}
	return nil
}
