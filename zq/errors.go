package zq

import "errors"

var (
	// ErrOutOfRange reports an integer that is not a valid residue of the ring modulus.
	ErrOutOfRange = errors.New("zq: value out of range for modulus")

	// ErrZeroModulus reports a division or reduction by a zero modulus.
	ErrZeroModulus = errors.New("zq: zero modulus")

	// ErrLimbOverflow reports a value that does not fit the requested limb count.
	ErrLimbOverflow = errors.New("zq: value does not fit in limb count")

	// ErrNotSmall reports an RNS coefficient that is not small with respect to
	// the moduli it is encoded under.
	ErrNotSmall = errors.New("zq: coefficient is not small")

	// ErrMalformedBuffer reports backend buffers whose length or declared shape
	// is inconsistent.
	ErrMalformedBuffer = errors.New("zq: malformed buffer")
)

// IsPreconditionViolation reports whether err stems from a caller contract
// violation rather than from an out-of-range value.
func IsPreconditionViolation(err error) bool {
	return errors.Is(err, ErrNotSmall) || errors.Is(err, ErrLimbOverflow) || errors.Is(err, ErrMalformedBuffer)
}
