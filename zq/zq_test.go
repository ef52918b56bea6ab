package zq

import (
	"errors"
	"math/big"
	"testing"
)

func TestUintBigRoundTrip(t *testing.T) {
	x, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10) // 2^128-1
	u, err := UintFromBig(x, 3)
	if err != nil {
		t.Fatalf("UintFromBig: %v", err)
	}
	if u.Limbs() != 3 || u.Word(0) != ^uint64(0) || u.Word(1) != ^uint64(0) || u.Word(2) != 0 {
		t.Fatalf("unexpected words %v", u.Words())
	}
	if u.Big().Cmp(x) != 0 {
		t.Fatalf("Big()=%s want %s", u.Big(), x)
	}
	if u.BitLen() != 128 {
		t.Fatalf("BitLen=%d want 128", u.BitLen())
	}
	if _, err := UintFromBig(x, 1); !errors.Is(err, ErrLimbOverflow) {
		t.Fatalf("expected ErrLimbOverflow, got %v", err)
	}
}

func TestUintEqualityIncludesWidth(t *testing.T) {
	a := UintFromUint64(5, 2)
	b := UintFromUint64(5, 2)
	c := UintFromUint64(5, 3)
	if a != b {
		t.Fatalf("same width and value must be ==")
	}
	if a == c {
		t.Fatalf("different widths must not be ==")
	}
	if a.Cmp(c) != 0 {
		t.Fatalf("Cmp must ignore width")
	}
	if NewUint(4) != (Uint{n: 4}) || !NewUint(4).IsZero() {
		t.Fatalf("NewUint must be zero")
	}
}

func TestUintResize(t *testing.T) {
	u, _ := UintFromWords([]uint64{7, 0, 0, 0})
	v, err := u.Resize(2)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if v.Limbs() != 2 || v.Word(0) != 7 {
		t.Fatalf("bad resize %v", v.Words())
	}
	w, _ := UintFromWords([]uint64{7, 0, 1})
	if _, err := w.Resize(2); !errors.Is(err, ErrLimbOverflow) {
		t.Fatalf("expected ErrLimbOverflow, got %v", err)
	}
	wide, err := v.Resize(5)
	if err != nil || wide.Limbs() != 5 || wide.Cmp(v) != 0 {
		t.Fatalf("widening failed: %v", err)
	}
}

func TestUintDivRemWord(t *testing.T) {
	u := UintFromUint64(100, 1)
	q, r, err := u.DivRemWord(7)
	if err != nil {
		t.Fatalf("DivRemWord: %v", err)
	}
	if q.Word(0) != 14 || r != 2 {
		t.Fatalf("100/7 = %d r %d", q.Word(0), r)
	}
	if _, _, err := u.DivRemWord(0); !errors.Is(err, ErrZeroModulus) {
		t.Fatalf("expected ErrZeroModulus, got %v", err)
	}

	x, _ := new(big.Int).SetString("123456789012345678901234567890123456789", 10)
	big3, _ := UintFromBig(x, 3)
	q3, r3, err := big3.DivRemWord(1000003)
	if err != nil {
		t.Fatal(err)
	}
	wantQ, wantR := new(big.Int).QuoRem(x, big.NewInt(1000003), new(big.Int))
	if q3.Big().Cmp(wantQ) != 0 || r3 != wantR.Uint64() {
		t.Fatalf("multi-limb division mismatch: %s r %d", q3, r3)
	}
}

func TestRingFromUintRejectsOutOfRange(t *testing.T) {
	r, err := NewRing(big.NewInt(97), 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.FromUint(UintFromUint64(96, 1)); err != nil {
		t.Fatalf("96 must be valid: %v", err)
	}
	for _, v := range []uint64{97, 1000} {
		if _, err := r.FromUint(UintFromUint64(v, 1)); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%d: expected ErrOutOfRange, got %v", v, err)
		}
	}
	// Wider inputs are accepted when their value is a residue.
	e, err := r.FromUint(UintFromUint64(3, 4))
	if err != nil || e.Uint().Limbs() != 1 {
		t.Fatalf("wide input: %v", err)
	}
}

func TestRingFromInt64Centered(t *testing.T) {
	r, _ := NewRing(big.NewInt(97), 1)
	for _, v := range []int64{-48, -1, 0, 1, 48} {
		e := r.FromInt64(v)
		if got := r.Centered(e).Int64(); got != v {
			t.Fatalf("Centered(FromInt64(%d))=%d", v, got)
		}
	}
	if r.FromInt64(-1).Big().Int64() != 96 {
		t.Fatalf("-1 must map to q-1")
	}
	if r.FromInt64(0) != r.Zero() {
		t.Fatalf("0 must map to Zero()")
	}
}

func TestRistrettoPreset(t *testing.T) {
	r := Ristretto()
	if r.Limbs() != 4 {
		t.Fatalf("limbs=%d", r.Limbs())
	}
	if r.Modulus().BitLen() != 253 {
		t.Fatalf("bitlen=%d want 253", r.Modulus().BitLen())
	}
	if _, err := r.FromUint(r.ModulusUint()); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("q itself must be out of range")
	}
	if _, err := Preset("nope"); err == nil {
		t.Fatalf("unknown preset must fail")
	}
}
