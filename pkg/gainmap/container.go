package gainmap

// The container writer collaborator. Everything above this line is
// pure computation; this is where an AuxiliaryPackage finally becomes
// a file, by shelling out to heif-enc and exiftool.

import(
	"fmt"
	"image/jpeg"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

const(
	// The auxiliary image label Apple's decoder looks for.
	AppleGainMapURN = "urn:com:apple:photo:2020:aux:hdrgainmap"

	// Version value for the HDRGainMapVersion XMP/maker tags.
	GainMapVersion = 65536
)

type ContainerWriter interface {
	Write(pkg *AuxiliaryPackage, filename string) error
}

// HeifEncWriter multiplexes base + gain map into a HEIC via heif-enc,
// then injects the maker tags via exiftool.
type HeifEncWriter struct {
	HeifEnc  string // path to heif-enc binary
	ExifTool string // path to exiftool binary
	Quality  int    // base image JPEG quality
}

func NewHeifEncWriter() HeifEncWriter {
	return HeifEncWriter{HeifEnc: "heif-enc", ExifTool: "exiftool", Quality: 95}
}

func (w HeifEncWriter)Write(pkg *AuxiliaryPackage, filename string) error {
	tmpdir, err := os.MkdirTemp("", "gainmap")
	if err != nil {
		return fmt.Errorf("container tmpdir: %w", err)
	}
	defer os.RemoveAll(tmpdir)

	baseFile := filepath.Join(tmpdir, "base.jpg")
	gainFile := filepath.Join(tmpdir, "gain.png")

	if f, err := os.Create(baseFile); err != nil {
		return fmt.Errorf("container open+w '%s': %w", baseFile, err)
	} else {
		err = jpeg.Encode(f, pkg.Base.ToImage(), &jpeg.Options{Quality: w.Quality})
		f.Close()
		if err != nil {
			return fmt.Errorf("container base jpeg: %w", err)
		}
	}

	if err := WritePNG(pkg.GainMap.Gray(), gainFile); err != nil {
		return fmt.Errorf("container gain png: %w", err)
	}

	cmd := exec.Command(w.HeifEnc,
		"-o", filename,
		baseFile,
		fmt.Sprintf("--aux-image=%s,%s", AppleGainMapURN, gainFile),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("heif-enc '%s': %v\n%s", filename, err, out)
	}

	// Tag injection failure is logged, not fatal - the container is
	// valid, it just won't trigger HDR rendering on the consumer.
	cmd = exec.Command(w.ExifTool,
		"-overwrite_original",
		fmt.Sprintf("-XMP:HDRGainMapVersion=%d", GainMapVersion),
		fmt.Sprintf("-Apple:HDRGainMapVersion=%d", GainMapVersion),
		fmt.Sprintf("-Apple:HDRHeadroom=%.4f", pkg.Metadata.StopsLog2),
		fmt.Sprintf("-Apple:HDRGainMapMax=%.4f", pkg.Metadata.MaxGainRatio),
		fmt.Sprintf("-MakerApple:%d=%.4f", TagHeadroom, pkg.Tags.Headroom),
		fmt.Sprintf("-MakerApple:%d=%.4f", TagGainOffset, pkg.Tags.GainOffset),
		filename,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("exiftool on '%s' failed (tags not written): %v\n%s", filename, err, out)
	}

	return nil
}
