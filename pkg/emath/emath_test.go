package emath

import(
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGammaRoundTrip(t *testing.T) {
	for f:=0.0; f<=1.0; f+=0.01 {
		assert.InDelta(t, f, GammaContract_F64(GammaExpand_F64(f)), 1e-9)
	}
}

func TestDot(t *testing.T) {
	luma := Vec3{0.2126, 0.7152, 0.0722}
	assert.InDelta(t, 1.0, luma.Dot(Vec3{1, 1, 1}), 1e-9)
	assert.InDelta(t, 0.7152, luma.Dot(Vec3{0, 1, 0}), 1e-9)
}

func TestDownSample(t *testing.T) {
	g := NewFloatGrid(4, 4)
	for y:=0; y<4; y++ {
		for x:=0; x<4; x++ {
			g.Set(x, y, float64(y*4+x))
		}
	}

	h := g.DownSample(2)
	assert.Equal(t, 2, h.Dx())
	assert.Equal(t, 2, h.Dy())
	assert.Equal(t, (0.0+1.0+4.0+5.0)/4.0, h.Get(0, 0))
	assert.Equal(t, (10.0+11.0+14.0+15.0)/4.0, h.Get(1, 1))

	// n=1 is a plain copy
	c := g.DownSample(1)
	assert.Equal(t, g.Get(3, 3), c.Get(3, 3))
}
