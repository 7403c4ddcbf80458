package gainmap

// LinearImage is an RGB image in absolute linear light (nits per
// channel). This is the representation all the ratio math runs on -
// never mix gamma-encoded samples into it.

import(
	"github.com/abworrall/gainmap-hdr/pkg/emath"
	"github.com/abworrall/gainmap-hdr/pkg/pq"
)

// Rec.709/sRGB luma weights, applied to linear triples.
var LumaWeights = emath.Vec3{0.2126, 0.7152, 0.0722}

type LinearImage struct {
	W, H int
	Pix  []float64 // RGB triples, row major
}

func NewLinearImage(w, h int) *LinearImage {
	return &LinearImage{W: w, H: h, Pix: make([]float64, w*h*3)}
}

func (li *LinearImage)At(x, y int) emath.Vec3 {
	i := (y*li.W + x) * 3
	return emath.Vec3{li.Pix[i], li.Pix[i+1], li.Pix[i+2]}
}

func (li *LinearImage)SetAt(x, y int, v emath.Vec3) {
	i := (y*li.W + x) * 3
	li.Pix[i], li.Pix[i+1], li.Pix[i+2] = v[0], v[1], v[2]
}

func (li *LinearImage)Luma(x, y int) float64 {
	return LumaWeights.Dot(li.At(x, y))
}

// LinearizePQ decodes a PQ-encoded raster into absolute nits. Sample
// noise just below zero is clamped rather than surfaced as a
// DomainError - the error path is for genuinely out-of-range inputs,
// which Clamp01 makes unreachable here.
func LinearizePQ(r *RasterImage) (*LinearImage, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	li := NewLinearImage(r.W, r.H)
	for y:=0; y<r.H; y++ {
		for x:=0; x<r.W; x++ {
			v := emath.Vec3{}
			for c:=0; c<3; c++ {
				nits, err := pq.Decode(pq.Clamp01(r.Sample(x, y, c)))
				if err != nil {
					return nil, err
				}
				v[c] = nits
			}
			li.SetAt(x, y, v)
		}
	}

	return li, nil
}

// lumaGrid pulls the weighted luminance of every pixel into a
// FloatGrid, ready for block downsampling.
func (li *LinearImage)lumaGrid() emath.FloatGrid {
	g := emath.NewFloatGrid(li.W, li.H)
	for y:=0; y<li.H; y++ {
		for x:=0; x<li.W; x++ {
			g.Set(x, y, li.Luma(x, y))
		}
	}
	return g
}
