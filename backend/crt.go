package backend

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/ring"

	"logproof-fixtures/zq"
)

// FromRNS builds a polynomial array from an RNS buffer laid out
// [polynomial][limb][coefficient] and derives the multiprecision view by CRT.
func FromRNS(moduli []Modulus, numPolys, degree int, words []uint64) (*PolynomialArray, error) {
	limbs := len(moduli)
	if limbs == 0 || limbs > zq.MaxLimbs {
		return nil, fmt.Errorf("%d moduli: %w", limbs, zq.ErrMalformedBuffer)
	}
	if len(words) != numPolys*degree*limbs {
		return nil, fmt.Errorf("rns buffer has %d words, want %d: %w", len(words), numPolys*degree*limbs, zq.ErrMalformedBuffer)
	}
	mods := make([]*big.Int, limbs)
	for k, m := range moduli {
		switch m.Value() {
		case 0:
			return nil, fmt.Errorf("modulus %d: %w", k, zq.ErrZeroModulus)
		case 1:
			return nil, fmt.Errorf("modulus %d is 1: %w", k, zq.ErrMalformedBuffer)
		}
		mods[k] = new(big.Int).SetUint64(m.Value())
		for l := 0; l < k; l++ {
			if new(big.Int).GCD(nil, nil, mods[l], mods[k]).Cmp(big.NewInt(1)) != 0 {
				return nil, fmt.Errorf("moduli %d and %d are not coprime: %w", l, k, zq.ErrMalformedBuffer)
			}
		}
	}
	mp := make([]uint64, len(words))
	residues := make([]*big.Int, limbs)
	for i := 0; i < numPolys; i++ {
		for j := 0; j < degree; j++ {
			for k := 0; k < limbs; k++ {
				w := words[(i*limbs+k)*degree+j]
				if w >= moduli[k].Value() {
					return nil, fmt.Errorf("poly %d coeff %d limb %d: word %d >= %d: %w", i, j, k, w, moduli[k].Value(), zq.ErrOutOfRange)
				}
				residues[k] = new(big.Int).SetUint64(w)
			}
			x, err := zq.UintFromBig(Recompose(residues, mods), limbs)
			if err != nil {
				return nil, err
			}
			copy(mp[(i*degree+j)*limbs:], x.Words())
		}
	}
	return NewPolynomialArray(numPolys, degree, limbs, words, mp)
}

// FromLattigo exports coefficient-domain lattigo polynomials (not NTT, not
// Montgomery) at the full level of rq.
func FromLattigo(rq *ring.Ring, polys ...*ring.Poly) (*PolynomialArray, []Modulus, error) {
	if rq == nil {
		return nil, nil, fmt.Errorf("nil ring")
	}
	moduli := Moduli(rq.Modulus...)
	if len(polys) == 0 || polys[0] == nil || len(polys[0].Coeffs) == 0 {
		return nil, nil, fmt.Errorf("no polynomials: %w", zq.ErrMalformedBuffer)
	}
	limbs := len(moduli)
	degree := len(polys[0].Coeffs[0])
	words := make([]uint64, 0, len(polys)*limbs*degree)
	for i, p := range polys {
		if p == nil || len(p.Coeffs) < limbs {
			return nil, nil, fmt.Errorf("poly %d: want %d levels: %w", i, limbs, zq.ErrMalformedBuffer)
		}
		for k := 0; k < limbs; k++ {
			if len(p.Coeffs[k]) != degree {
				return nil, nil, fmt.Errorf("poly %d level %d has %d coefficients, want %d: %w", i, k, len(p.Coeffs[k]), degree, zq.ErrMalformedBuffer)
			}
			words = append(words, p.Coeffs[k]...)
		}
	}
	arr, err := FromRNS(moduli, len(polys), degree, words)
	if err != nil {
		return nil, nil, err
	}
	return arr, moduli, nil
}

// Recompose performs Garner recomposition of residues given pairwise coprime
// moduli. The result lies in [0, Π moduli).
func Recompose(residues []*big.Int, moduli []*big.Int) *big.Int {
	x := new(big.Int).Set(residues[0])
	M := new(big.Int).Set(moduli[0])
	tmp := new(big.Int)
	for i := 1; i < len(residues); i++ {
		t := new(big.Int).Sub(residues[i], x)
		t.Mod(t, moduli[i])
		inv := new(big.Int).ModInverse(M, moduli[i])
		t.Mul(t, inv)
		t.Mod(t, moduli[i])
		tmp.Mul(M, t)
		x.Add(x, tmp)
		M.Mul(M, moduli[i])
	}
	return x
}
