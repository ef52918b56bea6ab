// Package convert turns HE backend buffers into ring polynomials and derives
// the BFV scaling factor.
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

// CenterWord maps a residue c in [0, m) to its representative in (-m/2, m/2].
// c >= m is a caller error and yields a meaningless result.
func CenterWord(c, m uint64) int64 {
	if c > m/2 {
		// m-c < m/2 < 2^63, so the negation cannot overflow.
		return -int64(m - c)
	}
	return int64(c)
}

// DecenterWord maps a signed value to its residue in [0, m).
func DecenterWord(d int64, m uint64) uint64 {
	if d >= 0 {
		return uint64(d) % m
	}
	neg := (uint64(-(d + 1)) + 1) % m
	if neg == 0 {
		return 0
	}
	return m - neg
}

// ToSmallInt decodes every polynomial of arr into signed coefficients,
// assuming each coefficient has magnitude below half of moduli[0].
//
// Only the first limb is decoded. Every further limb for which a modulus is
// given is checked against the decoded value, so a coefficient that is not
// actually small fails with zq.ErrNotSmall instead of decoding to a wrong
// integer.
func ToSmallInt(moduli []backend.Modulus, arr *backend.PolynomialArray) ([][]int64, error) {
	defer prof.Track(time.Now(), "convert.ToSmallInt")
	if arr == nil {
		return nil, fmt.Errorf("nil polynomial array: %w", zq.ErrMalformedBuffer)
	}
	if len(moduli) == 0 {
		return nil, fmt.Errorf("empty modulus list: %w", zq.ErrMalformedBuffer)
	}
	limbs := arr.CoeffModulusSize()
	if len(moduli) > limbs {
		return nil, fmt.Errorf("%d moduli for %d limbs: %w", len(moduli), limbs, zq.ErrMalformedBuffer)
	}
	m := moduli[0].Value()
	if m == 0 {
		return nil, fmt.Errorf("first modulus: %w", zq.ErrZeroModulus)
	}
	rns, err := arr.RNS()
	if err != nil {
		return nil, err
	}
	degree := arr.PolyModulusDegree()

	result := make([][]int64, arr.NumPolynomials())
	for i := range result {
		row := make([]int64, degree)
		for j := range row {
			c := rns[arr.RNSIndex(i, 0, j)]
			if c >= m {
				return nil, fmt.Errorf("polynomial %d coefficient %d: word %d >= modulus %d: %w", i, j, c, m, zq.ErrNotSmall)
			}
			d := CenterWord(c, m)
			for k := 1; k < len(moduli); k++ {
				mk := moduli[k].Value()
				if mk == 0 {
					return nil, fmt.Errorf("modulus %d: %w", k, zq.ErrZeroModulus)
				}
				if got, want := rns[arr.RNSIndex(i, k, j)], DecenterWord(d, mk); got != want {
					return nil, fmt.Errorf("polynomial %d coefficient %d: limb %d holds %d, small value %d implies %d: %w",
						i, j, k, got, d, want, zq.ErrNotSmall)
				}
			}
			row[j] = d
		}
		result[i] = row
	}
	logging.Logger().Debug().
		Int("polynomials", len(result)).
		Int("degree", degree).
		Int("limbs", limbs).
		Uint64("modulus", m).
		Msg("decoded small RNS coefficients")
	return result, nil
}

// ToSmallCoeffs is ToSmallInt with each polynomial's trailing zero
// coefficients removed.
func ToSmallCoeffs(moduli []backend.Modulus, arr *backend.PolynomialArray) ([][]int64, error) {
	rows, err := ToSmallInt(moduli, arr)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i] = poly.StripTrailing(rows[i], 0)
	}
	return rows, nil
}

// ToPolynomialBySmallCoeffs decodes small coefficients and embeds them into r.
func ToPolynomialBySmallCoeffs[E comparable](r poly.Ring[E], moduli []backend.Modulus, arr *backend.PolynomialArray) ([]poly.Polynomial[E], error) {
	rows, err := ToSmallCoeffs(moduli, arr)
	if err != nil {
		return nil, err
	}
	out := make([]poly.Polynomial[E], len(rows))
	for i, row := range rows {
		out[i] = poly.Make(r, row)
	}
	return out, nil
}
