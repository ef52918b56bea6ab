package zq

import (
	"errors"
	"fmt"
	"math/big"
)

// Ring is Z_q for a modulus q stored in a fixed number of limbs.
type Ring struct {
	q    Uint
	qBig *big.Int
	half *big.Int
	n    int
}

// Elem is a canonical residue in [0, q) of the ring it was built from.
type Elem struct {
	v Uint
}

// NewRing returns Z_q with elements stored in n limbs.
func NewRing(q *big.Int, n int) (*Ring, error) {
	if q == nil || q.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.New("zq: modulus must be at least 2")
	}
	qu, err := UintFromBig(q, n)
	if err != nil {
		return nil, fmt.Errorf("zq: modulus %s: %w", q, err)
	}
	qBig := new(big.Int).Set(q)
	return &Ring{q: qu, qBig: qBig, half: new(big.Int).Rsh(qBig, 1), n: n}, nil
}

// Limbs returns the fixed limb count of ring elements.
func (r *Ring) Limbs() int { return r.n }

// Modulus returns a copy of q.
func (r *Ring) Modulus() *big.Int { return new(big.Int).Set(r.qBig) }

// ModulusUint returns q as a Uint of the ring's width.
func (r *Ring) ModulusUint() Uint { return r.q }

func (r *Ring) Zero() Elem { return Elem{v: NewUint(r.n)} }

// FromUint interprets u as a residue. Values >= q fail with ErrOutOfRange;
// they are never reduced silently.
func (r *Ring) FromUint(u Uint) (Elem, error) {
	if u.Cmp(r.q) >= 0 {
		return Elem{}, fmt.Errorf("%s >= %s: %w", u, r.qBig, ErrOutOfRange)
	}
	v, err := u.Resize(r.n)
	if err != nil {
		return Elem{}, err
	}
	return Elem{v: v}, nil
}

// FromBig interprets x as a residue in [0, q).
func (r *Ring) FromBig(x *big.Int) (Elem, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(r.qBig) >= 0 {
		return Elem{}, fmt.Errorf("%v not in [0,%s): %w", x, r.qBig, ErrOutOfRange)
	}
	v, err := UintFromBig(x, r.n)
	if err != nil {
		return Elem{}, err
	}
	return Elem{v: v}, nil
}

// FromInt64 maps a signed integer to its residue modulo q. It never fails.
func (r *Ring) FromInt64(x int64) Elem {
	return r.reduce(big.NewInt(x))
}

func (r *Ring) reduce(x *big.Int) Elem {
	m := new(big.Int).Mod(x, r.qBig)
	v, err := UintFromBig(m, r.n)
	if err != nil {
		// m < q and q fits in n limbs.
		panic(err)
	}
	return Elem{v: v}
}

// Centered returns the representative of e in (-q/2, q/2].
func (r *Ring) Centered(e Elem) *big.Int {
	x := e.v.Big()
	if x.Cmp(r.half) > 0 {
		x.Sub(x, r.qBig)
	}
	return x
}

// Uint returns the residue as a fixed-limb integer.
func (e Elem) Uint() Uint { return e.v }

// Big returns the residue as a big integer in [0, q).
func (e Elem) Big() *big.Int { return e.v.Big() }

func (e Elem) IsZero() bool { return e.v.IsZero() }

func (e Elem) String() string { return e.v.String() }
