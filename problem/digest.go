package problem

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"

	"logproof-fixtures/poly"
	"logproof-fixtures/zq"
)

const digestLabel = "logproof-fixtures/problem/v1"

// Digest returns a SHAKE-256 fingerprint of every component of p, so two
// fixtures can be compared without walking their coefficients.
func Digest(p *LatticeProblem[zq.Elem]) [32]byte {
	h := sha3.NewShake256()
	h.Write([]byte(digestLabel))
	writePolyMatrix(h, p.A)
	writePolyMatrix(h, p.S)
	writePolyMatrix(h, p.T)
	writePoly(h, p.F)
	writeUint(h, uint64(p.B.Rows()))
	writeUint(h, uint64(p.B.Cols()))
	for i := 0; i < p.B.Rows(); i++ {
		for j := 0; j < p.B.Cols(); j++ {
			b := p.B.At(i, j)
			writeUint(h, uint64(len(b)))
			for _, v := range b {
				writeUint(h, v)
			}
		}
	}
	var out [32]byte
	h.Read(out[:])
	return out
}

func writeUint(w io.Writer, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.Write(buf[:])
}

func writePoly(w io.Writer, p poly.Polynomial[zq.Elem]) {
	writeUint(w, uint64(len(p.Coeffs)))
	for _, c := range p.Coeffs {
		u := c.Uint()
		writeUint(w, uint64(u.Limbs()))
		for _, word := range u.Words() {
			writeUint(w, word)
		}
	}
}

func writePolyMatrix(w io.Writer, m poly.Matrix[poly.Polynomial[zq.Elem]]) {
	writeUint(w, uint64(m.Rows()))
	writeUint(w, uint64(m.Cols()))
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			writePoly(w, m.At(i, j))
		}
	}
}
