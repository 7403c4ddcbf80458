package gainmap

// RasterImage is the flat-buffer image representation handed across
// pipeline stages; just samples, no color management.

import(
	"fmt"
	"image"
	"image/color"
	"math"
)

type SampleType int

const(
	SampleUint8 SampleType = iota
	SampleUint16
	SampleFloat32
)

func (t SampleType)Bytes() int {
	switch t {
	case SampleUint8:   return 1
	case SampleUint16:  return 2
	case SampleFloat32: return 4
	}
	return 0
}

func (t SampleType)String() string {
	switch t {
	case SampleUint8:   return "uint8"
	case SampleUint16:  return "uint16"
	case SampleFloat32: return "float32"
	}
	return "unknown"
}

// RasterImage holds W*H*Channels samples, row major, x varying
// fastest. Integer samples are normalized on access, so Sample()
// always returns a value in [0,1] (float32 samples are assumed to be
// stored normalized already).
type RasterImage struct {
	W, H     int
	Channels int        // 3 or 4
	Type     SampleType
	Pix      []byte
}

func NewRasterImage(w, h, channels int, t SampleType) *RasterImage {
	return &RasterImage{
		W:        w,
		H:        h,
		Channels: channels,
		Type:     t,
		Pix:      make([]byte, w*h*channels*t.Bytes()),
	}
}

func (r *RasterImage)String() string {
	return fmt.Sprintf("raster[%dx%d, %d chan, %s]", r.W, r.H, r.Channels, r.Type)
}

func (r *RasterImage)Validate() error {
	if r.Channels != 3 && r.Channels != 4 {
		return ConsistencyError{fmt.Sprintf("raster has %d channels, want 3 or 4", r.Channels)}
	}
	if want := r.W * r.H * r.Channels * r.Type.Bytes(); len(r.Pix) != want {
		return ConsistencyError{fmt.Sprintf("raster buffer is %d bytes, want %d", len(r.Pix), want)}
	}
	return nil
}

func (r *RasterImage)offset(x, y, c int) int {
	return ((y*r.W + x)*r.Channels + c) * r.Type.Bytes()
}

func (r *RasterImage)Sample(x, y, c int) float64 {
	i := r.offset(x, y, c)
	switch r.Type {
	case SampleUint8:
		return float64(r.Pix[i]) / 255.0
	case SampleUint16:
		return float64(uint16(r.Pix[i]) | uint16(r.Pix[i+1])<<8) / 65535.0
	case SampleFloat32:
		bits := uint32(r.Pix[i]) | uint32(r.Pix[i+1])<<8 | uint32(r.Pix[i+2])<<16 | uint32(r.Pix[i+3])<<24
		return float64(math.Float32frombits(bits))
	}
	return 0
}

func (r *RasterImage)SetSample(x, y, c int, v float64) {
	i := r.offset(x, y, c)
	switch r.Type {
	case SampleUint8:
		r.Pix[i] = uint8(clamp01(v)*255.0 + 0.5)
	case SampleUint16:
		u := uint16(clamp01(v)*65535.0 + 0.5)
		r.Pix[i] = byte(u)
		r.Pix[i+1] = byte(u >> 8)
	case SampleFloat32:
		bits := math.Float32bits(float32(v))
		r.Pix[i] = byte(bits)
		r.Pix[i+1] = byte(bits >> 8)
		r.Pix[i+2] = byte(bits >> 16)
		r.Pix[i+3] = byte(bits >> 24)
	}
}

// NewRasterFromImage flattens a decoded image into a 16-bit RGB
// raster. Alpha is dropped; it carries no luminance.
func NewRasterFromImage(img image.Image) *RasterImage {
	b := img.Bounds()
	r := NewRasterImage(b.Dx(), b.Dy(), 3, SampleUint16)

	for y:=0; y<r.H; y++ {
		for x:=0; x<r.W; x++ {
			c := color.NRGBA64Model.Convert(img.At(x + b.Min.X, y + b.Min.Y)).(color.NRGBA64)
			r.SetSample(x, y, 0, float64(c.R)/65535.0)
			r.SetSample(x, y, 1, float64(c.G)/65535.0)
			r.SetSample(x, y, 2, float64(c.B)/65535.0)
		}
	}

	return r
}

// ToImage re-wraps an 8-bit RGB raster for the stdlib encoders.
func (r *RasterImage)ToImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for y:=0; y<r.H; y++ {
		for x:=0; x<r.W; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(r.Sample(x, y, 0)*255.0 + 0.5),
				G: uint8(r.Sample(x, y, 1)*255.0 + 0.5),
				B: uint8(r.Sample(x, y, 2)*255.0 + 0.5),
				A: 0xFF,
			})
		}
	}
	return img
}

func clamp01(v float64) float64 {
	if v < 0.0 { return 0.0 }
	if v > 1.0 { return 1.0 }
	return v
}
