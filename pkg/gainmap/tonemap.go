package gainmap

import(
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/gainmap-hdr/pkg/cube"
	"github.com/abworrall/gainmap-hdr/pkg/emath"
	"github.com/abworrall/gainmap-hdr/pkg/pq"
)

var(
	Tonemappers = []string{"lut", "reinhard", "drago03", "durand", "icam06", "linear", "reinhard05"}
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

// A ToneMapper derives the SDR rendition from the HDR linear image.
// Map is pure - it never mutates its input - and the output is again
// in absolute nits, so the gain ratio math downstream compares like
// with like.
type ToneMapper interface {
	Name() string
	Map(hdr *LinearImage) (*LinearImage, error)
}

// LutToneMapper re-encodes the HDR image to normalized PQ codes,
// pushes each triple through a 3D LUT whose input space is PQ and
// whose output is SDR gamma, then linearizes that sRGB output back
// into nits.
type LutToneMapper struct {
	Lut       *cube.Lut3D
	WhiteNits float64
}

func (tm LutToneMapper)Name() string { return "lut" }

func (tm LutToneMapper)Map(hdr *LinearImage) (*LinearImage, error) {
	sdr := NewLinearImage(hdr.W, hdr.H)

	for y:=0; y<hdr.H; y++ {
		for x:=0; x<hdr.W; x++ {
			nits := hdr.At(x, y)

			code := emath.Vec3{}
			for c:=0; c<3; c++ {
				n := nits[c]
				if n < 0.0 {
					n = 0.0
				}
				v, err := pq.Encode(n)
				if err != nil {
					return nil, err
				}
				code[c] = v
			}

			srgb := tm.Lut.Apply(code)
			srgb.FloorAt(0.0)
			srgb.CeilingAt(1.0)

			lin := emath.GammaContract_sRGB(srgb)
			sdr.SetAt(x, y, emath.Vec3{
				lin[0] * tm.WhiteNits,
				lin[1] * tm.WhiteNits,
				lin[2] * tm.WhiteNits,
			})
		}
	}

	return sdr, nil
}

// ReinhardToneMapper is the LUT-less fallback: scale to SDR white,
// then the classic x/(1+x) shoulder.
type ReinhardToneMapper struct {
	WhiteNits float64
}

func (tm ReinhardToneMapper)Name() string { return "reinhard" }

func (tm ReinhardToneMapper)Map(hdr *LinearImage) (*LinearImage, error) {
	sdr := NewLinearImage(hdr.W, hdr.H)

	for y:=0; y<hdr.H; y++ {
		for x:=0; x<hdr.W; x++ {
			nits := hdr.At(x, y)
			out := emath.Vec3{}
			for c:=0; c<3; c++ {
				v := nits[c] / tm.WhiteNits
				if v < 0.0 {
					v = 0.0
				}
				out[c] = (v / (1.0 + v)) * tm.WhiteNits
			}
			sdr.SetAt(x, y, out)
		}
	}

	return sdr, nil
}

// NativeToneMapper delegates to one of the mdouchement/hdr operators.
// We only trust it as far as we can validate it: the rendition must
// come back with the same dimensions as the input.
type NativeToneMapper struct {
	Op        string
	WhiteNits float64
}

func (tm NativeToneMapper)Name() string { return tm.Op }

func (tm NativeToneMapper)Map(hdr *LinearImage) (*LinearImage, error) {
	op, err := tm.setup(hdrAdapter{li: hdr, white: tm.WhiteNits})
	if err != nil {
		return nil, err
	}

	log.Printf("Tonemapping: %s", tm.Op)
	rendered := op.Perform()

	b := rendered.Bounds()
	if b.Dx() != hdr.W || b.Dy() != hdr.H {
		return nil, ShapeMismatchError{
			Stage: fmt.Sprintf("tonemap %s", tm.Op),
			WantW: hdr.W, WantH: hdr.H,
			GotW: b.Dx(), GotH: b.Dy(),
		}
	}

	// The operator hands back a gamma-encoded LDR image; linearize it
	// for the ratio math.
	sdr := NewLinearImage(hdr.W, hdr.H)
	for y:=0; y<hdr.H; y++ {
		for x:=0; x<hdr.W; x++ {
			r, g, bb, _ := rendered.At(x + b.Min.X, y + b.Min.Y).RGBA()
			srgb := emath.Vec3{float64(r)/65535.0, float64(g)/65535.0, float64(bb)/65535.0}
			lin := emath.GammaContract_sRGB(srgb)
			sdr.SetAt(x, y, emath.Vec3{
				lin[0] * tm.WhiteNits,
				lin[1] * tm.WhiteNits,
				lin[2] * tm.WhiteNits,
			})
		}
	}

	return sdr, nil
}

// Tweak the tmo parameters for photographic sources. By default they
// tend to overexpose small bright areas - specular highlights, the
// exact content a gain map exists to preserve.
func (tm NativeToneMapper)setup(m hdrAdapter) (tmo.ToneMappingOperator, error) {
	switch tm.Op {
	case "drago03":
		op := tmo.NewDefaultDrago03(m)
		op.Bias = 1.0
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(m), nil

	case "icam06":
		op := tmo.NewDefaultICam06(m)
		op.MaxClipping = 0.99999
		return op, nil

	case "linear":
		return tmo.NewLinear(m), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(m)
		op.Light = 0.005
		return op, nil
	}

	return nil, fmt.Errorf("native ToneMapper %q not recognized, wanted %s", tm.Op, ListTonemappers())
}

// hdrAdapter exposes a LinearImage as an hdr.Image, with values
// relative to SDR white (1.0 == diffuse white), which is what the tmo
// operators expect.
type hdrAdapter struct {
	li    *LinearImage
	white float64
}

func (a hdrAdapter)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (a hdrAdapter)Bounds() image.Rectangle       { return image.Rect(0, 0, a.li.W, a.li.H) }
func (a hdrAdapter)At(x, y int) color.Color       { return a.HDRAt(x, y) }
func (a hdrAdapter)Size() int                     { return a.li.W * a.li.H }

func (a hdrAdapter)HDRAt(x, y int) hdrcolor.Color {
	v := a.li.At(x, y)
	return hdrcolor.RGB{R: v[0] / a.white, G: v[1] / a.white, B: v[2] / a.white}
}
