package gainmap

// Reduces the gain map to the global scalars a consumer needs to
// reconstruct absolute brightness from the SDR base.

import(
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type HeadroomMetadata struct {
	MaxGainRatio  float64 // linear ratio, >= 1.0
	StopsLog2     float64 // == log2(MaxGainRatio)
	EncodingGamma float64 // copied verbatim from the encoder config
	Offset        float64 // copied verbatim from the encoder config
}

type Estimator struct {
	EncodingGamma float64
	Offset        float64
	Tolerance     float64 // how far below 1.0 a raw ratio may sit before it's a bug
}

// Estimate turns the raw maximum ratio into headroom metadata. A
// ratio below the 1.0 floor (beyond tolerance) is reported as an
// upstream defect, never silently clamped - clamping here would
// paper over a pipeline bug while emitting self-consistent-looking
// metadata.
func (e Estimator)Estimate(rawMaxRatio float64) (HeadroomMetadata, error) {
	tol := e.Tolerance
	if tol == 0 {
		tol = 1e-6
	}
	if rawMaxRatio < 1.0 - tol {
		return HeadroomMetadata{}, InvalidRatioError{Ratio: rawMaxRatio}
	}

	ratio := rawMaxRatio
	if ratio < 1.0 {
		ratio = 1.0
	}

	return HeadroomMetadata{
		MaxGainRatio:  ratio,
		StopsLog2:     math.Log2(ratio),
		EncodingGamma: e.EncodingGamma,
		Offset:        e.Offset,
	}, nil
}

type GainStats struct {
	P50, P99, Max float64
}

// ComputeGainStats summarizes the per-sample ratio distribution, for
// logging and for judging whether the configured MaxBoost ceiling is
// actually being hit.
func ComputeGainStats(ratios []float64) GainStats {
	if len(ratios) == 0 {
		return GainStats{}
	}

	sorted := make([]float64, len(ratios))
	copy(sorted, ratios)
	sort.Float64s(sorted)

	return GainStats{
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P99: stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max: sorted[len(sorted)-1],
	}
}
