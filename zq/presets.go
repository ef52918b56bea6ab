package zq

import (
	"fmt"
	"math/big"
)

// RistrettoOrder is the prime order of the Ristretto255 group,
// 2^252 + 27742317777372353535851937790883648493.
const RistrettoOrder = "7237005577332262213973186563042994240857116359379907606001950938285454250989"

// Ristretto returns Z_l for the Ristretto255 group order using four limbs.
func Ristretto() *Ring {
	l, ok := new(big.Int).SetString(RistrettoOrder, 10)
	if !ok {
		panic("zq: bad Ristretto order constant")
	}
	r, err := NewRing(l, 4)
	if err != nil {
		panic(err)
	}
	return r
}

// Preset returns a named ring. Known names are "ristretto" and "ristretto255".
func Preset(name string) (*Ring, error) {
	switch name {
	case "ristretto", "ristretto255":
		return Ristretto(), nil
	default:
		return nil, fmt.Errorf("zq: unknown ring preset %q", name)
	}
}

// RingFromDecimal parses q in base 10 (or with a 0x prefix) and builds Z_q in n limbs.
func RingFromDecimal(q string, n int) (*Ring, error) {
	x, ok := new(big.Int).SetString(q, 0)
	if !ok {
		return nil, fmt.Errorf("zq: invalid modulus %q", q)
	}
	return NewRing(x, n)
}
