package pq

// The SMPTE ST 2084 "PQ" transfer function, mapping normalized code
// values [0,1] to absolute luminance in candela/m^2 (nits). See
// https://en.wikipedia.org/wiki/Perceptual_quantizer

import(
	"fmt"
	"math"
)

const(
	m1 = 2610.0 / 16384.0
	m2 = 2523.0 / 32.0
	c1 = 3424.0 / 4096.0
	c2 = 2413.0 / 128.0
	c3 = 2392.0 / 128.0

	// PeakNits is the absolute luminance a code value of 1.0 decodes to.
	PeakNits = 10000.0
)

// DomainError means a caller handed us a value outside the function's
// domain. Callers who expect noisy data should Clamp01() first, rather
// than let NaNs propagate into the pixel pipeline.
type DomainError struct {
	Op    string
	Value float64
}

func (e DomainError)Error() string {
	return fmt.Sprintf("pq.%s: value %g outside domain", e.Op, e.Value)
}

// Decode is the PQ EOTF: normalized code value -> nits.
func Decode(code float64) (float64, error) {
	if code < 0.0 || code > 1.0 {
		return 0, DomainError{"Decode", code}
	}

	p   := math.Pow(code, 1.0/m2)
	num := p - c1
	if num < 0.0 {
		num = 0.0
	}
	den := c2 - c3*p

	return PeakNits * math.Pow(num/den, 1.0/m1), nil
}

// Encode is the PQ inverse EOTF: nits -> normalized code value. Input
// above PeakNits is clamped before inversion.
func Encode(nits float64) (float64, error) {
	if nits < 0.0 {
		return 0, DomainError{"Encode", nits}
	}
	if nits > PeakNits {
		nits = PeakNits
	}

	y := math.Pow(nits/PeakNits, m1)

	return math.Pow((c1 + c2*y) / (1.0 + c3*y), m2), nil
}

func Clamp01(v float64) float64 {
	if v < 0.0 { return 0.0 }
	if v > 1.0 { return 1.0 }
	return v
}
