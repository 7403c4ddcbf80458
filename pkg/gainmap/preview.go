package gainmap

// Renders the gain map as a PNG for eyeballing - either plain
// grayscale (the encoded samples as-is), or a false-color ramp that
// makes faint gain structure much easier to see.

import(
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

var(
	rampCold = colorful.Color{R: 0.05, G: 0.05, B: 0.25}
	rampHot  = colorful.Color{R: 1.00, G: 0.90, B: 0.10}
)

func RenderPreview(gm *GainMapBuffer, md HeadroomMetadata, falseColor bool, maxWidth int) image.Image {
	var img image.Image

	if falseColor {
		rgba := image.NewRGBA(image.Rect(0, 0, gm.W, gm.H))
		for y:=0; y<gm.H; y++ {
			for x:=0; x<gm.W; x++ {
				t := float64(gm.Pix[y*gm.W+x]) / 255.0
				c := rampCold.BlendLuv(rampHot, t).Clamped()
				r, g, b := c.RGB255()
				i := rgba.PixOffset(x, y)
				rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2], rgba.Pix[i+3] = r, g, b, 0xFF
			}
		}
		img = rgba
	} else {
		img = gm.Gray()
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(fmt.Sprintf("%.2f stops (%.2fx)", md.StopsLog2, md.MaxGainRatio), 10, 16)
	img = dc.Image()

	if maxWidth > 0 && gm.W > maxWidth {
		img = resize.Resize(uint(maxWidth), 0, img, resize.Bilinear)
	}

	return img
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
