// Package backend describes the buffers an HE backend hands to the fixture
// converters: a list of RNS moduli and a polynomial array exposing both an
// RNS view and a multiprecision view of the same coefficients.
package backend

import (
	"fmt"
	"math/big"

	"logproof-fixtures/zq"
)

// Modulus is one RNS modulus of the backend's coefficient modulus chain.
type Modulus interface {
	Value() uint64
}

// SmallModulus is a word-sized modulus.
type SmallModulus uint64

func (m SmallModulus) Value() uint64 { return uint64(m) }

// Moduli wraps raw values as a modulus list.
func Moduli(values ...uint64) []Modulus {
	out := make([]Modulus, len(values))
	for i, v := range values {
		out[i] = SmallModulus(v)
	}
	return out
}

// ModulusValues returns the numeric values of ms.
func ModulusValues(ms []Modulus) []uint64 {
	out := make([]uint64, len(ms))
	for i, m := range ms {
		out[i] = m.Value()
	}
	return out
}

// ModulusProduct returns q = Π m_i.
func ModulusProduct(ms []Modulus) *big.Int {
	q := big.NewInt(1)
	for _, m := range ms {
		q.Mul(q, new(big.Int).SetUint64(m.Value()))
	}
	return q
}

// PolynomialArray is a batch of polynomials in the backend's encodings.
//
// The RNS view is laid out [polynomial][limb][coefficient], one word per
// coefficient per limb. The multiprecision view is laid out
// [polynomial][coefficient][word]: each coefficient takes CoeffModulusSize
// little-endian words.
type PolynomialArray struct {
	numPolys int
	degree   int
	limbs    int
	rns      []uint64
	mp       []uint64
}

// NewPolynomialArray validates the declared shape against the buffers. Either
// view may be nil when the backend does not provide it, but not both.
func NewPolynomialArray(numPolys, degree, limbs int, rns, mp []uint64) (*PolynomialArray, error) {
	if numPolys < 0 || degree <= 0 || limbs <= 0 {
		return nil, fmt.Errorf("shape %d×%d×%d: %w", numPolys, degree, limbs, zq.ErrMalformedBuffer)
	}
	if rns == nil && mp == nil {
		return nil, fmt.Errorf("no encoded view: %w", zq.ErrMalformedBuffer)
	}
	want := numPolys * degree * limbs
	if rns != nil && len(rns) != want {
		return nil, fmt.Errorf("rns view has %d words, want %d: %w", len(rns), want, zq.ErrMalformedBuffer)
	}
	if mp != nil && len(mp) != want {
		return nil, fmt.Errorf("multiprecision view has %d words, want %d: %w", len(mp), want, zq.ErrMalformedBuffer)
	}
	return &PolynomialArray{numPolys: numPolys, degree: degree, limbs: limbs, rns: rns, mp: mp}, nil
}

func (a *PolynomialArray) NumPolynomials() int { return a.numPolys }

func (a *PolynomialArray) PolyModulusDegree() int { return a.degree }

// CoeffModulusSize is the number of RNS limbs, which is also the number of
// words per coefficient in the multiprecision view.
func (a *PolynomialArray) CoeffModulusSize() int { return a.limbs }

// RNS returns the RNS view. The slice is shared with the array.
func (a *PolynomialArray) RNS() ([]uint64, error) {
	if a.rns == nil {
		return nil, fmt.Errorf("rns view unavailable: %w", zq.ErrMalformedBuffer)
	}
	return a.rns, nil
}

// Multiprecision returns the multiprecision view. The slice is shared with the array.
func (a *PolynomialArray) Multiprecision() ([]uint64, error) {
	if a.mp == nil {
		return nil, fmt.Errorf("multiprecision view unavailable: %w", zq.ErrMalformedBuffer)
	}
	return a.mp, nil
}

// RNSIndex returns the offset of coefficient j of polynomial i in limb k.
func (a *PolynomialArray) RNSIndex(i, k, j int) int {
	return (i*a.limbs+k)*a.degree + j
}
