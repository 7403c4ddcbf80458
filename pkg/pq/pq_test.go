package pq

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints(t *testing.T) {
	lo, err := Decode(0.0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, lo)

	hi, err := Decode(1.0)
	assert.NoError(t, err)
	assert.InDelta(t, PeakNits, hi, 1e-6)
}

func TestRoundTrip(t *testing.T) {
	for code:=0.001; code<=1.0; code+=0.001 {
		nits, err := Decode(code)
		assert.NoError(t, err)

		back, err := Encode(nits)
		assert.NoError(t, err)
		assert.InDelta(t, code, back, code*1e-4, "code %f", code)
	}
}

func TestMonotonic(t *testing.T) {
	prev := -1.0
	for code:=0.0; code<=1.0; code+=0.0005 {
		nits, err := Decode(code)
		assert.NoError(t, err)
		assert.Greater(t, nits, prev, "decode not increasing at %f", code)
		prev = nits
	}
}

func TestDomainErrors(t *testing.T) {
	_, err := Decode(-0.1)
	assert.IsType(t, DomainError{}, err)

	_, err = Decode(1.1)
	assert.IsType(t, DomainError{}, err)

	_, err = Encode(-5.0)
	assert.IsType(t, DomainError{}, err)

	// Over-peak input clamps, it does not error
	code, err := Encode(20000.0)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, code, 1e-9)
}

func TestNoNaNs(t *testing.T) {
	for code:=0.0; code<=1.0; code+=0.01 {
		nits, _ := Decode(Clamp01(code))
		assert.False(t, math.IsNaN(nits))
	}
}
