package cube

// Loads Adobe/Resolve style ".cube" 3D LUT files, and evaluates them
// with trilinear interpolation. The file is a header (LUT_3D_SIZE,
// optional DOMAIN_MIN/DOMAIN_MAX) followed by N^3 RGB rows, with the
// red axis varying fastest.
//
// A loaded Lut3D is read-only, so it can be shared across goroutines
// without locking.

import(
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/abworrall/gainmap-hdr/pkg/emath"
)

type FormatError struct {
	Line int    // 1-based line number, 0 if not line-specific
	Msg  string
}

func (e FormatError)Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cube: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("cube: %s", e.Msg)
}

type Lut3D struct {
	N                    int         // grid size per axis
	DomainMin, DomainMax emath.Vec3

	vals               []float64     // N^3 * 3, red fastest
}

func (l *Lut3D)String() string {
	return fmt.Sprintf("lut3d[%dx%dx%d, domain %v-%v]", l.N, l.N, l.N, l.DomainMin, l.DomainMax)
}

// at returns the stored output triple at lattice point (r,g,b).
func (l *Lut3D)at(r, g, b int) emath.Vec3 {
	i := ((b*l.N + g)*l.N + r) * 3
	return emath.Vec3{l.vals[i], l.vals[i+1], l.vals[i+2]}
}

func LoadFile(filename string) (*Lut3D, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cube open+r '%s': %w", filename, err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Lut3D, error) {
	l := Lut3D{
		DomainMin: emath.Vec3{0, 0, 0},
		DomainMax: emath.Vec3{1, 1, 1},
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "TITLE"):
			continue

		case strings.HasPrefix(line, "LUT_1D_SIZE"):
			return nil, FormatError{lineNum, "1D LUTs not supported"}

		case strings.HasPrefix(line, "LUT_3D_SIZE"):
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, FormatError{lineNum, "malformed LUT_3D_SIZE"}
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 2 {
				return nil, FormatError{lineNum, fmt.Sprintf("bad LUT_3D_SIZE '%s'", fields[1])}
			}
			l.N = n
			l.vals = make([]float64, 0, n*n*n*3)

		case strings.HasPrefix(line, "DOMAIN_MIN"):
			v, err := parseTriple(line[len("DOMAIN_MIN"):])
			if err != nil {
				return nil, FormatError{lineNum, "malformed DOMAIN_MIN"}
			}
			l.DomainMin = v

		case strings.HasPrefix(line, "DOMAIN_MAX"):
			v, err := parseTriple(line[len("DOMAIN_MAX"):])
			if err != nil {
				return nil, FormatError{lineNum, "malformed DOMAIN_MAX"}
			}
			l.DomainMax = v

		default:
			if l.N == 0 {
				return nil, FormatError{lineNum, "data row before LUT_3D_SIZE"}
			}
			v, err := parseTriple(line)
			if err != nil {
				return nil, FormatError{lineNum, fmt.Sprintf("bad data row '%s'", line)}
			}
			l.vals = append(l.vals, v[0], v[1], v[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cube read: %w", err)
	}

	if l.N == 0 {
		return nil, FormatError{0, "LUT_3D_SIZE not found"}
	}
	if got, want := len(l.vals)/3, l.N*l.N*l.N; got != want {
		return nil, FormatError{0, fmt.Sprintf("row count mismatch: want %d, got %d", want, got)}
	}

	return &l, nil
}

func parseTriple(s string) (emath.Vec3, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return emath.Vec3{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	v := emath.Vec3{}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return emath.Vec3{}, err
		}
		v[i] = x
	}
	return v, nil
}

// Apply evaluates the LUT at `in`, trilinearly interpolating between
// the 8 surrounding lattice points. Inputs outside the domain are
// clamped to the boundary - no extrapolation.
func (l *Lut3D)Apply(in emath.Vec3) emath.Vec3 {
	var  i0, i1 [3]int
	var  frac   [3]float64

	for c:=0; c<3; c++ {
		t := 0.0
		if span := l.DomainMax[c] - l.DomainMin[c]; span > 0 {
			t = (in[c] - l.DomainMin[c]) / span
		}
		if t < 0.0 { t = 0.0 }
		if t > 1.0 { t = 1.0 }

		g := t * float64(l.N-1)          // position in grid-cell coords
		i0[c] = int(math.Floor(g))
		if i0[c] > l.N-2 {
			i0[c] = l.N-2                  // so i1 stays on the lattice
		}
		i1[c] = i0[c] + 1
		frac[c] = g - float64(i0[c])
	}

	out := emath.Vec3{}
	for corner:=0; corner<8; corner++ {
		r, g, b := i0[0], i0[1], i0[2]
		w := 1.0
		if corner&1 != 0 { r = i1[0]; w *= frac[0] } else { w *= 1.0 - frac[0] }
		if corner&2 != 0 { g = i1[1]; w *= frac[1] } else { w *= 1.0 - frac[1] }
		if corner&4 != 0 { b = i1[2]; w *= frac[2] } else { w *= 1.0 - frac[2] }
		if w == 0.0 {
			continue
		}
		p := l.at(r, g, b)
		out[0] += w * p[0]
		out[1] += w * p[1]
		out[2] += w * p[2]
	}

	return out
}
