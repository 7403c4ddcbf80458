package gainmap

import(
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y:=0; y<8; y++ {
		for x:=0; x<8; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	filename := filepath.Join(dir, name)
	assert.NoError(t, WritePNG(img, filename))
	return filename
}

func TestBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()

	good1 := writeTestPNG(t, dir, "a.png")
	good2 := writeTestPNG(t, dir, "b.png")
	bad := filepath.Join(dir, "c.png")
	assert.NoError(t, os.WriteFile(bad, []byte("not a png"), 0644))

	cv := NewConverter()
	cv.Files = []string{good1, bad, good2}
	cv.Config.Workers = 2
	assert.NoError(t, cv.Config.FinalizeConfiguration())

	br := cv.RunBatch(nil)

	assert.Len(t, br.Results, 2)
	assert.Len(t, br.Errs, 1)
	assert.Contains(t, br.Errs, bad)
	for _, res := range br.Results {
		assert.GreaterOrEqual(t, res.Metadata.MaxGainRatio, 1.0)
	}
}

func TestLoadFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png")
	writeTestPNG(t, dir, "b.png")
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	cv := NewConverter()
	assert.NoError(t, cv.LoadFilesAndDirs(dir))
	assert.Len(t, cv.Files, 2)

	assert.Error(t, cv.LoadFilesAndDirs(filepath.Join(dir, "nosuch.png")))
}
