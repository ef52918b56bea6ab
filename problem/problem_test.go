package problem

import (
	"errors"
	"math/big"
	"testing"

	"github.com/tuneinsight/lattigo/v4/ring"

	"logproof-fixtures/poly"
	"logproof-fixtures/zq"
)

func testRing(t *testing.T) *ring.Ring {
	t.Helper()
	rq, err := ring.NewRing(16, []uint64{12289})
	if err != nil {
		t.Fatalf("ring.NewRing: %v", err)
	}
	return rq
}

func TestGenerateSatisfiesRelation(t *testing.T) {
	rq := testRing(t)
	p, zr, err := Generate(rq, 2, 3, 4, []byte("fixture-seed"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := p.CheckBounds(zr); err != nil {
		t.Fatalf("CheckBounds: %v", err)
	}
	if err := CheckRelation(rq, zr, p); err != nil {
		t.Fatalf("CheckRelation: %v", err)
	}
	if p.S.Rows() != 3 || p.S.Cols() != 1 || p.T.Rows() != 2 {
		t.Fatalf("unexpected shapes S %dx%d T %dx%d", p.S.Rows(), p.S.Cols(), p.T.Rows(), p.T.Cols())
	}
	if p.F.Degree() != 16 {
		t.Fatalf("f degree %d, want 16", p.F.Degree())
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	rq := testRing(t)
	p1, _, err := Generate(rq, 1, 2, 3, []byte("seed"))
	if err != nil {
		t.Fatal(err)
	}
	p2, _, err := Generate(rq, 1, 2, 3, []byte("seed"))
	if err != nil {
		t.Fatal(err)
	}
	p3, _, err := Generate(rq, 1, 2, 3, []byte("other"))
	if err != nil {
		t.Fatal(err)
	}
	if Digest(p1) != Digest(p2) {
		t.Fatalf("same seed must give the same digest")
	}
	if Digest(p1) == Digest(p3) {
		t.Fatalf("different seeds must give different digests")
	}
}

func TestCheckRelationDetectsTampering(t *testing.T) {
	rq := testRing(t)
	p, zr, err := Generate(rq, 2, 2, 2, []byte("tamper"))
	if err != nil {
		t.Fatal(err)
	}
	orig := p.T.At(1, 0)
	tampered := orig.Clone()
	tampered.Coeffs[0] = zr.FromInt64(zr.Centered(tampered.Coeffs[0]).Int64() + 1)
	p.T.Set(1, 0, tampered.Normalize(zr.Zero()))
	if err := CheckRelation(rq, zr, p); !errors.Is(err, ErrRelation) {
		t.Fatalf("expected ErrRelation, got %v", err)
	}
	if Digest(p) == [32]byte{} {
		t.Fatalf("digest must not be zero")
	}
}

func TestCheckRelationReducesModuloCyclotomic(t *testing.T) {
	rq := testRing(t)
	zr, _ := zq.NewRing(big.NewInt(12289), 1)
	x := poly.Make[zq.Elem](zr, []int64{0, 1})
	x15 := make([]int64, 16)
	x15[15] = 1

	p := &LatticeProblem[zq.Elem]{
		A: poly.ColumnVector([]poly.Polynomial[zq.Elem]{x}),
		S: poly.ColumnVector([]poly.Polynomial[zq.Elem]{poly.Make[zq.Elem](zr, x15)}),
		T: poly.ColumnVector([]poly.Polynomial[zq.Elem]{poly.Make[zq.Elem](zr, []int64{-1})}),
		F: cyclotomic(zr, 16),
		B: poly.ColumnVector([]Bounds{make(Bounds, 16)}),
	}
	// X · X^15 = X^16 = -1 mod X^16+1
	if err := CheckRelation(rq, zr, p); err != nil {
		t.Fatalf("CheckRelation: %v", err)
	}

	p.F = poly.Make[zq.Elem](zr, []int64{1, 0, 1})
	if err := CheckRelation(rq, zr, p); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for f != X^N+1, got %v", err)
	}

	other, _ := zq.NewRing(big.NewInt(97), 1)
	if err := CheckRelation(rq, other, p); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for mismatched moduli, got %v", err)
	}
}

func TestCheckBounds(t *testing.T) {
	zr, _ := zq.NewRing(big.NewInt(97), 1)
	p := &LatticeProblem[zq.Elem]{
		S: poly.ColumnVector([]poly.Polynomial[zq.Elem]{poly.Make[zq.Elem](zr, []int64{3, -2, 1})}),
		B: poly.ColumnVector([]Bounds{{3, 2, 1}}),
	}
	if err := p.CheckBounds(zr); err != nil {
		t.Fatalf("within bounds: %v", err)
	}
	p.B.Set(0, 0, Bounds{3, 1, 1})
	if err := p.CheckBounds(zr); !errors.Is(err, ErrBound) {
		t.Fatalf("expected ErrBound, got %v", err)
	}
	p.B.Set(0, 0, Bounds{3, 2})
	if err := p.CheckBounds(zr); !errors.Is(err, ErrBound) {
		t.Fatalf("coefficient past bounds must fail, got %v", err)
	}
}

func TestValidateShapes(t *testing.T) {
	zr, _ := zq.NewRing(big.NewInt(97), 1)
	f := cyclotomic(zr, 4)
	p := &LatticeProblem[zq.Elem]{
		A: poly.NewMatrix[poly.Polynomial[zq.Elem]](2, 3),
		S: poly.NewMatrix[poly.Polynomial[zq.Elem]](3, 1),
		T: poly.NewMatrix[poly.Polynomial[zq.Elem]](2, 1),
		F: f,
		B: poly.NewMatrix[Bounds](3, 1),
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	p.B = poly.NewMatrix[Bounds](2, 1)
	if err := p.Validate(); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected ErrDimension for B, got %v", err)
	}
	p.B = poly.NewMatrix[Bounds](3, 1)
	p.T = poly.NewMatrix[poly.Polynomial[zq.Elem]](3, 1)
	if err := p.Validate(); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected ErrDimension for T, got %v", err)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	rq := testRing(t)
	if _, _, err := Generate(rq, 0, 1, 1, nil); !errors.Is(err, ErrDimension) {
		t.Fatalf("empty shape: %v", err)
	}
	if _, _, err := Generate(rq, 1, 1, 7000, nil); !errors.Is(err, zq.ErrNotSmall) {
		t.Fatalf("large bound: %v", err)
	}
	multi, err := ring.NewRing(16, []uint64{12289, 40961})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Generate(multi, 1, 1, 1, nil); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("multi-modulus ring: %v", err)
	}
}

func TestCheckBoundsRejectsMismatchedShape(t *testing.T) {
	zr, _ := zq.NewRing(big.NewInt(97), 1)
	s := poly.Make[zq.Elem](zr, []int64{1})
	p := &LatticeProblem[zq.Elem]{
		S: poly.ColumnVector([]poly.Polynomial[zq.Elem]{s, s}),
		B: poly.ColumnVector([]Bounds{{1}}),
	}
	if err := p.CheckBounds(zr); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected ErrDimension, got %v", err)
	}
}
