package backend

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dump is the on-disk form of a polynomial array and its modulus chain.
// Either encoded view may be omitted; an omitted multiprecision view is
// rebuilt from the RNS view on load.
type Dump struct {
	Moduli            []uint64 `json:"moduli"`
	NumPolynomials    int      `json:"num_polynomials"`
	PolyModulusDegree int      `json:"poly_modulus_degree"`
	CoeffModulusSize  int      `json:"coeff_modulus_size,omitempty"`
	RNS               []uint64 `json:"rns,omitempty"`
	Multiprecision    []uint64 `json:"multiprecision,omitempty"`
}

// ToDump captures arr and its moduli.
func ToDump(arr *PolynomialArray, moduli []Modulus) Dump {
	return Dump{
		Moduli:            ModulusValues(moduli),
		NumPolynomials:    arr.numPolys,
		PolyModulusDegree: arr.degree,
		CoeffModulusSize:  arr.limbs,
		RNS:               arr.rns,
		Multiprecision:    arr.mp,
	}
}

// Array rebuilds the polynomial array described by d.
func (d Dump) Array() (*PolynomialArray, []Modulus, error) {
	moduli := Moduli(d.Moduli...)
	limbs := d.CoeffModulusSize
	if limbs == 0 {
		limbs = len(d.Moduli)
	}
	if d.Multiprecision == nil && d.RNS != nil {
		if limbs != len(moduli) {
			return nil, nil, fmt.Errorf("coeff_modulus_size=%d but %d moduli", limbs, len(moduli))
		}
		arr, err := FromRNS(moduli, d.NumPolynomials, d.PolyModulusDegree, d.RNS)
		return arr, moduli, err
	}
	arr, err := NewPolynomialArray(d.NumPolynomials, d.PolyModulusDegree, limbs, d.RNS, d.Multiprecision)
	return arr, moduli, err
}

// Load reads a JSON dump from path.
func Load(path string) (*PolynomialArray, []Modulus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var d Dump
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return d.Array()
}

// Save writes arr and moduli to path as indented JSON.
func Save(path string, arr *PolynomialArray, moduli []Modulus) error {
	raw, err := json.MarshalIndent(ToDump(arr, moduli), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
