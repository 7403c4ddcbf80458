package gainmap

import(
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPackageInputs() (*RasterImage, *GainMapBuffer, HeadroomMetadata) {
	base := NewRasterImage(8, 8, 3, SampleUint8)
	gm := &GainMapBuffer{W: 4, H: 4, Factor: 2, Pix: make([]uint8, 16)}
	md := HeadroomMetadata{MaxGainRatio: 4.0, StopsLog2: 2.0, EncodingGamma: 1.0}
	return base, gm, md
}

func TestTagIdentifiers(t *testing.T) {
	// Fixed by the consumer; a renumber would break decoding silently.
	assert.Equal(t, 33, TagHeadroom)
	assert.Equal(t, 48, TagGainOffset)
}

func TestPackageStopsUnit(t *testing.T) {
	base, gm, md := testPackageInputs()
	pkg, err := Packager{TagUnit: TagUnitStops, GainOffset: 0.0}.Package(base, gm, md)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, pkg.Tags.Headroom)
	assert.Equal(t, 0.0, pkg.Tags.GainOffset)
	assert.Equal(t, TagUnitStops, pkg.Tags.Unit)
}

func TestPackageRatioUnit(t *testing.T) {
	base, gm, md := testPackageInputs()
	pkg, err := Packager{TagUnit: TagUnitRatio, GainOffset: 0.5}.Package(base, gm, md)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, pkg.Tags.Headroom)
	assert.Equal(t, 0.5, pkg.Tags.GainOffset)
}

func TestPackageRejectsBadDownsample(t *testing.T) {
	base, _, md := testPackageInputs()
	gm := &GainMapBuffer{W: 3, H: 3, Factor: 2, Pix: make([]uint8, 9)}
	_, err := Packager{TagUnit: TagUnitStops}.Package(base, gm, md)
	assert.IsType(t, ConsistencyError{}, err)
}

func TestPackageRejectsSubUnityRatio(t *testing.T) {
	base, gm, md := testPackageInputs()
	md.MaxGainRatio = 0.9
	_, err := Packager{TagUnit: TagUnitStops}.Package(base, gm, md)
	assert.IsType(t, ConsistencyError{}, err)
}

func TestPackageRejectsUnknownUnit(t *testing.T) {
	base, gm, md := testPackageInputs()
	_, err := Packager{TagUnit: TagUnit("candela")}.Package(base, gm, md)
	assert.IsType(t, ConsistencyError{}, err)
}
