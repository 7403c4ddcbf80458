package emath

import(
	"fmt"
	"math"
)

// A FloatGrid is a grid of floats, with some operations
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int                 { return len(fg.values) / fg.stride }

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// DownSample returns a grid 1/n the size on each axis, each output
// value the average of the corresponding nxn block. The grid
// dimensions must be exact multiples of n.
func (g1 *FloatGrid)DownSample(n int) FloatGrid {
	if n <= 1 {
		return *g1.Copy()
	}
	width := g1.Dx() / n
	height := g1.Dy() / n
	g2 := NewFloatGrid(width, height)

	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			p := 0.0
			for dy:=0; dy<n; dy++ {
				for dx:=0; dx<n; dx++ {
					p += g1.Get(n*x+dx, n*y+dy)
				}
			}
			g2.Set(x, y, p/float64(n*n))
		}
	}

	return g2
}

func (fg *FloatGrid)Max() float64 {
	max := -1.0 * math.MaxFloat64
	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
	}
	return max
}

func (fg *FloatGrid)Stats() string {
	min := math.MaxFloat64
	max := -1.0  * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}
