package gainmap

import(
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/gainmap-hdr/pkg/cube"
)

/* Example config file ...

verbosity: 1
lutfile: ACES20_P3D65PQ1000D60_to_sRGBPW.cube
tonemapper: lut
sdrwhitenits: 203
maxboost: 16
encodinggamma: 1.0
gainoffset: 0.0
headroomtagunit: stops
downsamplefactor: 2
workers: 4
outputdir: converted_gainmap
writepreview: true

*/

type Config struct {
	Verbosity           int

	LutFile             string  // a .cube file; required by the "lut" tonemapper
	Tonemapper          string

	SDRWhiteNits        float64 // absolute luminance of SDR diffuse white
	MaxBoost            float64 // ceiling on the encodable HDR/SDR ratio
	EncodingGamma       float64 // gamma shaping applied to the normalized gain
	GainOffset          float64 // reproduced verbatim into tag 48
	HeadroomTagUnit     string  // "stops" or "ratio" - what tag 33 carries
	DownsampleFactor    int     // gain map resolution = base / this

	Workers             int     // parallel image pipelines; 0 means one per CPU
	OutputDir           string

	WritePreview        bool
	FalseColorPreview   bool
	PreviewMaxWidth     int
}

func NewConfig() Config {
	return Config{
		Tonemapper:       "reinhard",
		SDRWhiteNits:     203.0,
		MaxBoost:         16.0,
		EncodingGamma:    1.0,
		GainOffset:       0.0,
		HeadroomTagUnit:  string(TagUnitStops),
		DownsampleFactor: 1,
		OutputDir:        "converted_gainmap",
		PreviewMaxWidth:  1024,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func LoadConfiguration(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("config read '%s': %w", filename, err)
	}
	return newConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// FinalizeConfiguration does sanity checks and fills in defaults.
func (c *Config)FinalizeConfiguration() error {
	if c.Tonemapper == "" {
		c.Tonemapper = "reinhard"
	}
	if !knownTonemapper(c.Tonemapper) {
		return fmt.Errorf("no Tonemapper strategy named '%s', wanted %s", c.Tonemapper, ListTonemappers())
	}
	if c.SDRWhiteNits <= 0 {
		return fmt.Errorf("sdrwhitenits must be positive, have %f", c.SDRWhiteNits)
	}
	if c.MaxBoost <= 1.0 {
		return fmt.Errorf("maxboost must exceed 1.0, have %f", c.MaxBoost)
	}
	if c.EncodingGamma <= 0 {
		return fmt.Errorf("encodinggamma must be positive, have %f", c.EncodingGamma)
	}
	if c.DownsampleFactor < 1 {
		return fmt.Errorf("downsamplefactor must be >= 1, have %d", c.DownsampleFactor)
	}
	switch TagUnit(c.HeadroomTagUnit) {
	case TagUnitStops, TagUnitRatio:
	default:
		return fmt.Errorf("headroomtagunit must be 'stops' or 'ratio', have '%s'", c.HeadroomTagUnit)
	}
	return nil
}

// GetToneMapper resolves the configured strategy name. The lut is
// only consulted by the "lut" strategy; everyone else ignores it.
func (c Config)GetToneMapper(lut *cube.Lut3D) (ToneMapper, error) {
	switch c.Tonemapper {
	case "lut":
		if lut == nil {
			return nil, fmt.Errorf("tonemapper 'lut' selected but no LUT loaded")
		}
		return LutToneMapper{Lut: lut, WhiteNits: c.SDRWhiteNits}, nil

	case "reinhard":
		return ReinhardToneMapper{WhiteNits: c.SDRWhiteNits}, nil

	case "drago03", "durand", "icam06", "linear", "reinhard05":
		return NativeToneMapper{Op: c.Tonemapper, WhiteNits: c.SDRWhiteNits}, nil
	}

	return nil, fmt.Errorf("no Tonemapper strategy named '%s', wanted %s", c.Tonemapper, ListTonemappers())
}

func knownTonemapper(name string) bool {
	for _, t := range Tonemappers {
		if t == name {
			return true
		}
	}
	return false
}
