package gainmap

// The gain map itself: the per-pixel HDR/SDR luminance ratio, log2
// normalized against the configured ceiling, gamma shaped, and stored
// as 8-bit samples at 1/factor of the base resolution.

import(
	"image"
	"math"
)

const ratioEpsilon = 1e-6 // floor on SDR luma before dividing

type GainMapBuffer struct {
	W, H   int
	Factor int       // spatial downsample factor relative to the base
	Pix    []uint8   // gamma-shaped encoded samples, row major

	ratios []float64 // pre-encoding clamped ratios, for stats/preview
}

func (gm *GainMapBuffer)Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, gm.W, gm.H))
	copy(img.Pix, gm.Pix)
	return img
}

// Ratios returns the clamped per-sample gain ratios, in the same row
// major order as Pix.
func (gm *GainMapBuffer)Ratios() []float64 { return gm.ratios }

type Computer struct {
	MaxBoost      float64 // ceiling on the encodable ratio; log2 of this spans the normalized range
	EncodingGamma float64
}

// Compute derives the gain map for an HDR/SDR pair. Each output
// sample is the ratio of the block-averaged lumas of the
// corresponding factor x factor block (factor 1 degenerates to
// per-pixel sampling). The returned float is the true maximum ratio
// observed, before clamping - that is what headroom metadata is
// built from.
func (gc Computer)Compute(hdr, sdr *LinearImage, factor int) (*GainMapBuffer, float64, error) {
	if hdr.W != sdr.W || hdr.H != sdr.H {
		return nil, 0, ShapeMismatchError{
			Stage: "gainmap",
			WantW: hdr.W, WantH: hdr.H,
			GotW: sdr.W, GotH: sdr.H,
		}
	}
	if factor < 1 {
		factor = 1
	}
	if hdr.W % factor != 0 || hdr.H % factor != 0 {
		return nil, 0, ShapeMismatchError{
			Stage: "gainmap downsample",
			WantW: factor, WantH: factor,
			GotW: hdr.W, GotH: hdr.H,
		}
	}

	hg, sg := hdr.lumaGrid(), sdr.lumaGrid()
	hdrLuma := hg.DownSample(factor)
	sdrLuma := sg.DownSample(factor)

	w, h := hdrLuma.Dx(), hdrLuma.Dy()
	gm := GainMapBuffer{
		W: w, H: h,
		Factor: factor,
		Pix:    make([]uint8, w*h),
		ratios: make([]float64, w*h),
	}

	logMaxBoost := math.Log2(gc.MaxBoost)
	rawMax := 0.0

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			s := sdrLuma.Get(x, y)
			if s < ratioEpsilon {
				s = ratioEpsilon
			}
			ratio := hdrLuma.Get(x, y) / s

			if ratio > rawMax {
				rawMax = ratio        // commutative reduction, no order dependence
			}

			if ratio < 1.0 {
				ratio = 1.0
			}
			if ratio > gc.MaxBoost {
				ratio = gc.MaxBoost
			}

			normalized := 0.0
			if logMaxBoost > 0 {
				normalized = math.Log2(ratio) / logMaxBoost
			}
			encoded := math.Pow(normalized, gc.EncodingGamma) * 255.0

			i := y*w + x
			gm.ratios[i] = ratio
			gm.Pix[i] = uint8(encoded + 0.5)
		}
	}

	return &gm, rawMax, nil
}
