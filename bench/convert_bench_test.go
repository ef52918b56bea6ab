package bench

import (
	"testing"

	"github.com/tuneinsight/lattigo/v4/ring"

	"logproof-fixtures/backend"
	"logproof-fixtures/convert"
	"logproof-fixtures/problem"
	"logproof-fixtures/zq"
)

func smallArray(b *testing.B, numPolys, degree int) (*backend.PolynomialArray, []backend.Modulus) {
	b.Helper()
	moduli := backend.Moduli(12289, 40961)
	words := make([]uint64, numPolys*len(moduli)*degree)
	for i := 0; i < numPolys; i++ {
		for j := 0; j < degree; j++ {
			d := int64(j%7) - 3
			for k, m := range moduli {
				words[(i*len(moduli)+k)*degree+j] = convert.DecenterWord(d, m.Value())
			}
		}
	}
	arr, err := backend.FromRNS(moduli, numPolys, degree, words)
	if err != nil {
		b.Fatal(err)
	}
	return arr, moduli
}

func BenchmarkToSmallInt(b *testing.B) {
	arr, moduli := smallArray(b, 4, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := convert.ToSmallInt(moduli, arr); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkToPolynomialRistretto(b *testing.B) {
	arr, _ := smallArray(b, 4, 1024)
	r := zq.Ristretto()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := convert.ToPolynomial[zq.Elem](r, arr); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateAndCheck(b *testing.B) {
	rq, err := ring.NewRing(256, []uint64{12289})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, zr, err := problem.Generate(rq, 2, 3, 2, []byte("bench"))
		if err != nil {
			b.Fatal(err)
		}
		if err := problem.CheckRelation(rq, zr, p); err != nil {
			b.Fatal(err)
		}
	}
}
