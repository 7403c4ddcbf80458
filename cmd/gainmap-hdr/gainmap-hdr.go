package main

import(
	"flag"
	"log"
	"os"

	"github.com/abworrall/gainmap-hdr/pkg/gainmap"
)

var(
	fVerbosity int
	fTonemapper string
	fDownsample int
	fMaxBoost float64
	fEncodingGamma float64
	fGainOffset float64
	fTagUnit string
	fOutputDir string
	fWorkers int
	fPreview bool
	fFalseColor bool
	fSkipContainer bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")

	flag.StringVar(&fTonemapper, "tonemapper", "", "how to derive the SDR base: "+gainmap.ListTonemappers())
	flag.IntVar(&fDownsample, "downsample", 0, "gain map resolution = base / this")
	flag.Float64Var(&fMaxBoost, "maxboost", 0, "ceiling on the encodable HDR/SDR ratio")
	flag.Float64Var(&fEncodingGamma, "gamma", 0, "gamma shaping for encoded gain samples")
	flag.Float64Var(&fGainOffset, "gainoffset", 0, "value for the gain offset tag (48)")
	flag.StringVar(&fTagUnit, "tagunit", "", "unit for the headroom tag (33): stops or ratio")
	flag.StringVar(&fOutputDir, "out", "", "output directory")
	flag.IntVar(&fWorkers, "workers", 0, "parallel image pipelines (0: one per CPU)")
	flag.BoolVar(&fPreview, "preview", false, "also write a gain map preview PNG per image")
	flag.BoolVar(&fFalseColor, "falsecolor", false, "render previews in false color")
	flag.BoolVar(&fSkipContainer, "skipcontainer", false, "run the pipeline but don't invoke heif-enc")
	flag.Parse()

	log.Printf("gainmap-hdr starting\n")
}

func main() {
	cv := gainmap.NewConverter()

	// Args can mix images, dirs, a .yaml config, and a .cube LUT
	if err := cv.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	// Flags override whatever the config file said
	if fVerbosity != 0      { cv.Config.Verbosity = fVerbosity }
	if fTonemapper != ""    { cv.Config.Tonemapper = fTonemapper }
	if fDownsample != 0     { cv.Config.DownsampleFactor = fDownsample }
	if fMaxBoost != 0       { cv.Config.MaxBoost = fMaxBoost }
	if fEncodingGamma != 0  { cv.Config.EncodingGamma = fEncodingGamma }
	if fGainOffset != 0     { cv.Config.GainOffset = fGainOffset }
	if fTagUnit != ""       { cv.Config.HeadroomTagUnit = fTagUnit }
	if fOutputDir != ""     { cv.Config.OutputDir = fOutputDir }
	if fWorkers != 0        { cv.Config.Workers = fWorkers }
	if fPreview             { cv.Config.WritePreview = true }
	if fFalseColor          { cv.Config.FalseColorPreview = true }

	if cv.Lut != nil && cv.Config.Tonemapper == "" {
		cv.Config.Tonemapper = "lut"
	}

	if err := cv.Config.FinalizeConfiguration(); err != nil {
		log.Fatal(err)
	}
	if err := cv.ResolveLut(); err != nil {
		log.Fatal(err)
	}

	if cv.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cv.Config.AsYaml())
	}

	if len(cv.Files) == 0 {
		log.Fatal("no input images given")
	}

	if err := os.MkdirAll(cv.Config.OutputDir, 0755); err != nil {
		log.Fatal(err)
	}

	var writer gainmap.ContainerWriter
	if !fSkipContainer {
		writer = gainmap.NewHeifEncWriter()
	}

	br := cv.RunBatch(writer)

	log.Printf("Done: %d converted, %d failed", len(br.Results), len(br.Errs))
	if len(br.Results) == 0 && len(br.Errs) > 0 {
		os.Exit(1)
	}
}
