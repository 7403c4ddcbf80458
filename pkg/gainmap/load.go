package gainmap

import(
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"

	_ "github.com/mdouchement/tiff" // registers a deep-TIFF aware decoder

	"github.com/abworrall/gainmap-hdr/pkg/cube"
)

// Converter is the per-run bundle: configuration, the (optionally)
// loaded LUT, and the images queued for conversion. The Lut3D is
// read-only once loaded, so batch workers share it freely.
type Converter struct {
	Config
	Lut   *cube.Lut3D
	Files []string
}

func NewConverter() Converter {
	return Converter{Config: NewConfig()}
}

// ResolveLut loads the configured LUT file, unless a .cube was
// already given as a command line arg.
func (cv *Converter)ResolveLut() error {
	if cv.Lut != nil || cv.LutFile == "" {
		return nil
	}
	lut, err := cube.LoadFile(cv.LutFile)
	if err != nil {
		return fmt.Errorf("Loading %s as 3D LUT failed: %v", cv.LutFile, err)
	}
	cv.Lut = lut
	log.Printf("Loaded %s from %s\n", lut, cv.LutFile)
	return nil
}

func (cv *Converter)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := cv.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default: // is a file, load it
			if err := cv.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (cv *Converter)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".tif", ".tiff", ".png", ".jpg", ".jpeg":
		cv.Files = append(cv.Files, filename)
		if cv.Verbosity > 0 {
			logExif(filename)
		}

	case ".cube":
		lut, err := cube.LoadFile(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as 3D LUT failed: %v", filename, err)
		}
		cv.Lut = lut
		log.Printf("Loaded %s from %s\n", lut, filename)

	case ".yaml":
		cfg, err := LoadConfiguration(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		cv.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

// loadRaster decodes an input image into a 16-bit raster of PQ code
// values. Color space handling happens upstream of this tool - the
// contract is that inputs arrive PQ encoded.
func loadRaster(filename string) (*RasterImage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer f.Close()

	img, kind, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	r := NewRasterFromImage(img)
	log.Printf("Loaded %s (%s) as %s", filename, kind, r)

	return r, nil
}

// logExif dumps a few source tags for diagnostics. PQ masters often
// carry no EXIF at all, so failure here is unremarkable.
func logExif(filename string) {
	f, err := os.Open(filename)
	if err != nil {
		return
	}
	defer f.Close()

	ex, err := exif.Decode(f)
	if err != nil {
		return
	}

	for _, name := range []exif.FieldName{exif.Make, exif.Model, exif.BitsPerSample} {
		if tag, err := ex.Get(name); err == nil {
			log.Printf("  exif %s: %s", name, tag)
		}
	}
}
