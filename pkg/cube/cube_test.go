package cube

import(
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/gainmap-hdr/pkg/emath"
)

// identityCube builds an NxNxN cube whose output at every lattice
// point equals its input coordinate.
func identityCube(n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# test lut\nTITLE \"identity\"\nLUT_3D_SIZE %d\n", n)
	for b:=0; b<n; b++ {
		for g:=0; g<n; g++ {
			for r:=0; r<n; r++ {
				fmt.Fprintf(&sb, "%f %f %f\n",
					float64(r)/float64(n-1), float64(g)/float64(n-1), float64(b)/float64(n-1))
			}
		}
	}
	return sb.String()
}

func TestLoadIdentity(t *testing.T) {
	l, err := Load(strings.NewReader(identityCube(2)))
	assert.NoError(t, err)
	assert.Equal(t, 2, l.N)
	assert.Equal(t, emath.Vec3{0, 0, 0}, l.DomainMin)
	assert.Equal(t, emath.Vec3{1, 1, 1}, l.DomainMax)
}

func TestApplyIdentityMidpoint(t *testing.T) {
	l, err := Load(strings.NewReader(identityCube(2)))
	assert.NoError(t, err)

	out := l.Apply(emath.Vec3{0.5, 0.5, 0.5})
	assert.InDelta(t, 0.5, out[0], 1e-12)
	assert.InDelta(t, 0.5, out[1], 1e-12)
	assert.InDelta(t, 0.5, out[2], 1e-12)
}

func TestApplyAtLatticePointsIsExact(t *testing.T) {
	n := 5
	l, err := Load(strings.NewReader(identityCube(n)))
	assert.NoError(t, err)

	for b:=0; b<n; b++ {
		for g:=0; g<n; g++ {
			for r:=0; r<n; r++ {
				in := emath.Vec3{
					float64(r)/float64(n-1), float64(g)/float64(n-1), float64(b)/float64(n-1),
				}
				out := l.Apply(in)
				assert.InDelta(t, in[0], out[0], 1e-12)
				assert.InDelta(t, in[1], out[1], 1e-12)
				assert.InDelta(t, in[2], out[2], 1e-12)
			}
		}
	}
}

// With an axis-aligned-linear table, the midpoint of two adjacent
// lattice points must interpolate to their arithmetic mean.
func TestApplyMidpointIsMean(t *testing.T) {
	n := 5
	l, err := Load(strings.NewReader(identityCube(n)))
	assert.NoError(t, err)

	step := 1.0 / float64(n-1)
	a := l.Apply(emath.Vec3{0, 0, 0})
	b := l.Apply(emath.Vec3{step, 0, 0})
	mid := l.Apply(emath.Vec3{step/2, 0, 0})
	assert.InDelta(t, (a[0]+b[0])/2, mid[0], 1e-12)
}

func TestApplyClampsOutOfDomain(t *testing.T) {
	l, err := Load(strings.NewReader(identityCube(3)))
	assert.NoError(t, err)

	out := l.Apply(emath.Vec3{-0.5, 1.5, 0.5})
	assert.InDelta(t, 0.0, out[0], 1e-12)
	assert.InDelta(t, 1.0, out[1], 1e-12)
	assert.InDelta(t, 0.5, out[2], 1e-12)
}

func TestFormatErrors(t *testing.T) {
	cases := map[string]string{
		"no header":   "0.0 0.0 0.0\n",
		"missing size": "TITLE \"x\"\n",
		"bad size":    "LUT_3D_SIZE zero\n",
		"1d lut":      "LUT_1D_SIZE 1024\n",
		"short rows":  "LUT_3D_SIZE 2\n0 0 0\n1 1 1\n",
		"bad row":     "LUT_3D_SIZE 2\n0 0 fish\n",
	}
	for name, body := range cases {
		_, err := Load(strings.NewReader(body))
		assert.Error(t, err, name)
		assert.IsType(t, FormatError{}, err, name)
	}
}

func TestDomainRescale(t *testing.T) {
	body := "LUT_3D_SIZE 2\nDOMAIN_MIN 0.0 0.0 0.0\nDOMAIN_MAX 2.0 2.0 2.0\n" +
		"0 0 0\n1 0 0\n0 1 0\n1 1 0\n0 0 1\n1 0 1\n0 1 1\n1 1 1\n"
	l, err := Load(strings.NewReader(body))
	assert.NoError(t, err)

	out := l.Apply(emath.Vec3{1.0, 1.0, 1.0}) // center of a [0,2] domain
	assert.InDelta(t, 0.5, out[0], 1e-12)
	assert.InDelta(t, 0.5, out[1], 1e-12)
	assert.InDelta(t, 0.5, out[2], 1e-12)
}
