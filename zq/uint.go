package zq

import (
	"fmt"
	"math/big"
	"math/bits"
)

// MaxLimbs is the widest Uint supported (512 bits).
const MaxLimbs = 8

// Uint is an unsigned integer stored as little-endian 64-bit limbs. The limb
// count is fixed when the value is created and takes part in equality, so two
// Uints compare equal with == only when both width and words match.
type Uint struct {
	w [MaxLimbs]uint64
	n int
}

// NewUint returns the zero value of width n. It panics if n is not in [1, MaxLimbs].
func NewUint(n int) Uint {
	if n < 1 || n > MaxLimbs {
		panic(fmt.Sprintf("zq.NewUint: limb count %d outside [1,%d]", n, MaxLimbs))
	}
	return Uint{n: n}
}

// UintFromUint64 returns v as a Uint of width n.
func UintFromUint64(v uint64, n int) Uint {
	u := NewUint(n)
	u.w[0] = v
	return u
}

// UintFromWords copies words (least significant first) into a Uint whose
// width is len(words).
func UintFromWords(words []uint64) (Uint, error) {
	if len(words) == 0 || len(words) > MaxLimbs {
		return Uint{}, fmt.Errorf("%d words: %w", len(words), ErrLimbOverflow)
	}
	u := Uint{n: len(words)}
	copy(u.w[:], words)
	return u, nil
}

// UintFromBig converts a non-negative big integer into a Uint of width n.
func UintFromBig(x *big.Int, n int) (Uint, error) {
	if x == nil || x.Sign() < 0 {
		return Uint{}, fmt.Errorf("negative or nil integer: %w", ErrOutOfRange)
	}
	if n < 1 || n > MaxLimbs {
		return Uint{}, fmt.Errorf("width %d: %w", n, ErrLimbOverflow)
	}
	if x.BitLen() > 64*n {
		return Uint{}, fmt.Errorf("%d bits into %d limbs: %w", x.BitLen(), n, ErrLimbOverflow)
	}
	u := Uint{n: n}
	tmp := new(big.Int).Set(x)
	mask := new(big.Int).SetUint64(^uint64(0))
	limb := new(big.Int)
	for i := 0; i < n && tmp.Sign() > 0; i++ {
		u.w[i] = limb.And(tmp, mask).Uint64()
		tmp.Rsh(tmp, 64)
	}
	return u, nil
}

// Limbs returns the width of u in 64-bit words.
func (u Uint) Limbs() int { return u.n }

// Word returns limb i, or zero past the width of u.
func (u Uint) Word(i int) uint64 {
	if i < 0 || i >= u.n {
		return 0
	}
	return u.w[i]
}

// Words returns a copy of the limbs, least significant first.
func (u Uint) Words() []uint64 {
	out := make([]uint64, u.n)
	copy(out, u.w[:u.n])
	return out
}

func (u Uint) IsZero() bool {
	for i := 0; i < u.n; i++ {
		if u.w[i] != 0 {
			return false
		}
	}
	return true
}

// BitLen returns the length of u in bits; zero has length 0.
func (u Uint) BitLen() int {
	for i := u.n - 1; i >= 0; i-- {
		if u.w[i] != 0 {
			return 64*i + bits.Len64(u.w[i])
		}
	}
	return 0
}

// Cmp compares the numeric values of u and v regardless of their widths.
func (u Uint) Cmp(v Uint) int {
	n := u.n
	if v.n > n {
		n = v.n
	}
	for i := n - 1; i >= 0; i-- {
		a, b := u.Word(i), v.Word(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Big returns u as a big integer.
func (u Uint) Big() *big.Int {
	x := new(big.Int)
	for i := u.n - 1; i >= 0; i-- {
		x.Lsh(x, 64)
		x.Or(x, new(big.Int).SetUint64(u.w[i]))
	}
	return x
}

// Resize returns u with width n. Narrowing fails with ErrLimbOverflow when a
// dropped limb is nonzero.
func (u Uint) Resize(n int) (Uint, error) {
	if n < 1 || n > MaxLimbs {
		return Uint{}, fmt.Errorf("width %d: %w", n, ErrLimbOverflow)
	}
	for i := n; i < u.n; i++ {
		if u.w[i] != 0 {
			return Uint{}, fmt.Errorf("limb %d of %d is nonzero, target width %d: %w", i, u.n, n, ErrLimbOverflow)
		}
	}
	out := Uint{n: n}
	copy(out.w[:n], u.w[:min(n, u.n)])
	return out, nil
}

// DivRemWord returns floor(u/d) with the width of u, and u mod d.
func (u Uint) DivRemWord(d uint64) (Uint, uint64, error) {
	if d == 0 {
		return Uint{}, 0, ErrZeroModulus
	}
	q := Uint{n: u.n}
	var rem uint64
	for i := u.n - 1; i >= 0; i-- {
		// rem < d, so Div64 cannot overflow.
		q.w[i], rem = bits.Div64(rem, u.w[i], d)
	}
	return q, rem, nil
}

func (u Uint) String() string {
	return u.Big().String()
}
