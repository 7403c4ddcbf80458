package gainmap

// Pure data assembly of the unit the container writer consumes. No
// I/O happens here.

import "fmt"

// The proprietary metadata block tag identifiers the consumer keys
// on. These are fixed by the consumer; do not renumber.
const(
	TagHeadroom   = 33 // headroom, as ratio or log2 stops per TagUnit
	TagGainOffset = 48 // gain offset, conventionally 0.0
)

// TagUnit states what unit tag 33 carries. Observed decoders disagree
// (one revision wants log2 stops, another the linear ratio), so this
// is an explicit configuration choice rather than a guess.
type TagUnit string

const(
	TagUnitStops TagUnit = "stops"
	TagUnitRatio TagUnit = "ratio"
)

type MakerTags struct {
	Headroom   float64 // tag 33, expressed in Unit
	GainOffset float64 // tag 48
	Unit       TagUnit
}

type AuxiliaryPackage struct {
	Base     *RasterImage
	GainMap  *GainMapBuffer
	Metadata HeadroomMetadata
	Tags     MakerTags
}

type Packager struct {
	TagUnit    TagUnit
	GainOffset float64
}

func (p Packager)Package(base *RasterImage, gm *GainMapBuffer, md HeadroomMetadata) (*AuxiliaryPackage, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if gm.Factor < 1 || base.W != gm.W * gm.Factor || base.H != gm.H * gm.Factor {
		return nil, ConsistencyError{fmt.Sprintf(
			"gain map %dx%d (factor %d) is not an exact downsample of base %dx%d",
			gm.W, gm.H, gm.Factor, base.W, base.H)}
	}
	if md.MaxGainRatio < 1.0 {
		return nil, ConsistencyError{fmt.Sprintf("maxGainRatio %g < 1.0", md.MaxGainRatio)}
	}

	headroom := 0.0
	switch p.TagUnit {
	case TagUnitStops:
		headroom = md.StopsLog2
	case TagUnitRatio:
		headroom = md.MaxGainRatio
	default:
		return nil, ConsistencyError{fmt.Sprintf("unknown headroom tag unit '%s'", p.TagUnit)}
	}

	return &AuxiliaryPackage{
		Base:     base,
		GainMap:  gm,
		Metadata: md,
		Tags: MakerTags{
			Headroom:   headroom,
			GainOffset: p.GainOffset,
			Unit:       p.TagUnit,
		},
	}, nil
}
