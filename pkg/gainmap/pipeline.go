package gainmap

// The per-image pipeline: PQ raster -> linear HDR -> SDR rendition ->
// gain map -> headroom -> package. Each stage is a pure function over
// immutable inputs; per-image state never escapes this file.

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/skypies/util/histogram"

	"github.com/abworrall/gainmap-hdr/pkg/emath"
)

type Result struct {
	Filename string
	Output   string
	Metadata HeadroomMetadata
	Stats    GainStats
}

// ConvertFile runs the whole pipeline for one input image.
func (cv *Converter)ConvertFile(filename string) (*AuxiliaryPackage, Result, error) {
	res := Result{Filename: filename}

	raster, err := loadRaster(filename)
	if err != nil {
		return nil, res, err
	}

	hdrLin, err := LinearizePQ(raster)
	if err != nil {
		return nil, res, fmt.Errorf("linearize '%s': %w", filename, err)
	}

	if cv.Verbosity > 1 {
		dumpRGBE(hdrLin, cv.SDRWhiteNits, outName(cv.OutputDir, filename, ".hdr"))
	}

	tm, err := cv.Config.GetToneMapper(cv.Lut)
	if err != nil {
		return nil, res, err
	}

	log.Printf("Tonemapping %s via '%s'", filename, tm.Name())
	sdrLin, err := tm.Map(hdrLin)
	if err != nil {
		return nil, res, fmt.Errorf("tonemap '%s': %w", filename, err)
	}

	gc := Computer{MaxBoost: cv.MaxBoost, EncodingGamma: cv.EncodingGamma}
	gm, rawMax, err := gc.Compute(hdrLin, sdrLin, cv.DownsampleFactor)
	if err != nil {
		return nil, res, fmt.Errorf("gainmap '%s': %w", filename, err)
	}

	est := Estimator{EncodingGamma: cv.EncodingGamma, Offset: cv.GainOffset}
	md, err := est.Estimate(rawMax)
	if err != nil {
		return nil, res, fmt.Errorf("headroom '%s': %w", filename, err)
	}

	res.Metadata = md
	res.Stats = ComputeGainStats(gm.Ratios())
	log.Printf("Headroom for %s: %.2fx (%.2f stops), gain p50=%.2f p99=%.2f",
		filename, md.MaxGainRatio, md.StopsLog2, res.Stats.P50, res.Stats.P99)

	if cv.Verbosity > 0 {
		logGainDistribution(gm)
	}

	base := baseRaster(sdrLin, cv.SDRWhiteNits)

	pkg, err := Packager{
		TagUnit:    TagUnit(cv.HeadroomTagUnit),
		GainOffset: cv.GainOffset,
	}.Package(base, gm, md)
	if err != nil {
		return nil, res, fmt.Errorf("package '%s': %w", filename, err)
	}

	if cv.WritePreview {
		preview := RenderPreview(gm, md, cv.FalseColorPreview, cv.PreviewMaxWidth)
		pf := outName(cv.OutputDir, filename, "_gainmap.png")
		if err := WritePNG(preview, pf); err != nil {
			log.Printf("preview for %s: %v", filename, err) // preview is best-effort
		}
	}

	return pkg, res, nil
}

// baseRaster compands the SDR linear rendition back to an 8-bit sRGB
// image - the primary image of the output container.
func baseRaster(sdr *LinearImage, whiteNits float64) *RasterImage {
	r := NewRasterImage(sdr.W, sdr.H, 3, SampleUint8)
	for y:=0; y<sdr.H; y++ {
		for x:=0; x<sdr.W; x++ {
			v := sdr.At(x, y)
			for c:=0; c<3; c++ {
				r.SetSample(x, y, c, emath.GammaExpand_F64(clamp01(v[c] / whiteNits)))
			}
		}
	}
	return r
}

func logGainDistribution(gm *GainMapBuffer) {
	h := histogram.Histogram{NumBuckets: 32, ValMin: 0, ValMax: 256}
	for _, v := range gm.Pix {
		h.Add(histogram.ScalarVal(int(v)))
	}
	log.Printf("Encoded gain distribution: %v", h)
}

func dumpRGBE(li *LinearImage, whiteNits float64, filename string) {
	if writer, err := os.Create(filename); err != nil {
		log.Printf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := rgbe.Encode(writer, hdrAdapter{li: li, white: whiteNits}); err != nil {
			log.Printf("encoding RGBE file '%s': %v\n", filename, err)
		}
	}
}

// outName maps an input path to a sibling name in the output dir.
func outName(outDir, filename, suffix string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+suffix)
}
