package gainmap

import(
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPreview(t *testing.T) {
	gm := &GainMapBuffer{W: 16, H: 8, Factor: 1, Pix: make([]uint8, 128)}
	for i := range gm.Pix {
		gm.Pix[i] = uint8(i)
	}
	md := HeadroomMetadata{MaxGainRatio: 4.0, StopsLog2: 2.0}

	img := RenderPreview(gm, md, false, 0)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())

	img = RenderPreview(gm, md, true, 0)
	assert.Equal(t, 16, img.Bounds().Dx())

	// resized down to the max width, aspect preserved
	img = RenderPreview(gm, md, false, 8)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}
