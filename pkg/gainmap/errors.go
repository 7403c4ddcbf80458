package gainmap

import "fmt"

// Every pipeline stage fails loudly with one of these; nothing ever
// substitutes a default for an inconsistency, since that would
// corrupt the metadata a downstream decoder relies on.

// ShapeMismatchError means two images that must share a geometric
// relationship don't.
type ShapeMismatchError struct {
	Stage        string
	WantW, WantH int
	GotW,  GotH  int
}

func (e ShapeMismatchError)Error() string {
	return fmt.Sprintf("%s: dimensions %dx%d incompatible with %dx%d",
		e.Stage, e.GotW, e.GotH, e.WantW, e.WantH)
}

// InvalidRatioError means a computed HDR/SDR ratio came out below the
// mathematical floor of 1.0 - an upstream defect, not expected data.
type InvalidRatioError struct {
	Ratio float64
}

func (e InvalidRatioError)Error() string {
	return fmt.Sprintf("gain ratio %g below 1.0 floor; upstream computation defect", e.Ratio)
}

// ConsistencyError is a packaging-time invariant violation.
type ConsistencyError struct {
	Msg string
}

func (e ConsistencyError)Error() string {
	return fmt.Sprintf("package inconsistency: %s", e.Msg)
}
