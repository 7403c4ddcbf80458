package gainmap

// Batch conversion. Each image's pipeline is independent, so this is
// a plain worker pool: N pipelines in flight, each with its own
// buffers, sharing only the read-only Lut3D. One image failing must
// not disturb the others' results, so errors are collected per file
// and summarized at the end.

import(
	"log"
	"runtime"
	"sync"

	"github.com/codahale/hdrhistogram"
)

type BatchResult struct {
	Results []Result
	Errs    map[string]error
}

func (cv *Converter)RunBatch(writer ContainerWriter) BatchResult {
	workers := cv.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(cv.Files) {
		workers = len(cv.Files)
	}

	log.Printf("Converting %d images with %d workers", len(cv.Files), workers)

	br := BatchResult{Errs: map[string]error{}}

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan string)

	for i:=0; i<workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for filename := range jobs {
				pkg, res, err := cv.ConvertFile(filename)

				if err == nil && writer != nil {
					res.Output = outName(cv.OutputDir, filename, ".heic")
					err = writer.Write(pkg, res.Output)
				}

				mu.Lock()
				if err != nil {
					log.Printf("FAILED %s: %v", filename, err)
					br.Errs[filename] = err
				} else {
					br.Results = append(br.Results, res)
				}
				mu.Unlock()
			}
		}()
	}

	for _, f := range cv.Files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	if len(br.Results) > 1 {
		logBatchHeadroom(br.Results)
	}

	return br
}

// logBatchHeadroom is the explicit post-batch reduction: headroom
// stops across all converted images, in millistops.
func logBatchHeadroom(results []Result) {
	h := hdrhistogram.New(0, 20000, 3)
	for _, r := range results {
		h.RecordValue(int64(r.Metadata.StopsLog2 * 1000.0))
	}
	log.Printf("Batch headroom (stops): p50=%.2f p99=%.2f max=%.2f",
		float64(h.ValueAtQuantile(50))/1000.0,
		float64(h.ValueAtQuantile(99))/1000.0,
		float64(h.Max())/1000.0)
}
