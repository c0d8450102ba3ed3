package worker

import (
	"context"
	"fmt"
	"sort"

	"github.com/ppiankov/qticonv/internal/extract"
)

// DocumentReader reads one source document
type DocumentReader interface {
	ReadFile(path string) (*extract.DocumentResult, error)
}

// ReadJob reads a single document
type ReadJob struct {
	Index   int
	Path    string
	Reader  DocumentReader
	Limiter *Limiter
}

// Execute executes the read job
func (j *ReadJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Path); err != nil {
			return &ReadResult{Index: j.Index, Path: j.Path, Error: fmt.Errorf("wait: %w", err)}
		}
	}

	doc, err := j.Reader.ReadFile(j.Path)
	return &ReadResult{
		Index:    j.Index,
		Path:     j.Path,
		Document: doc,
		Error:    err,
	}
}

// ReadResult is the outcome of reading one document
type ReadResult struct {
	Index    int
	Path     string
	Document *extract.DocumentResult
	Error    error
}

// GetError returns the error from the read result
func (r *ReadResult) GetError() error {
	return r.Error
}

// BatchReader reads many documents concurrently. Each document is read in
// isolation, so a failure only loses that document's contribution.
type BatchReader struct {
	reader      DocumentReader
	concurrency int
	limiter     *Limiter
}

// NewBatchReader creates a new batch reader
func NewBatchReader(reader DocumentReader, concurrency int, readsPerSecond float64, burst int) *BatchReader {
	return &BatchReader{
		reader:      reader,
		concurrency: concurrency,
		limiter:     NewLimiter(readsPerSecond, burst),
	}
}

// ReadAll reads every path and returns one result per path, in the order
// the paths were given
func (b *BatchReader) ReadAll(ctx context.Context, paths []string) []*ReadResult {
	if len(paths) == 0 {
		return []*ReadResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Collect concurrently so a full results buffer never blocks submission
	collected := make(chan []Result, 1)
	go func() {
		var results []Result
		for r := range pool.Results() {
			results = append(results, r)
		}
		collected <- results
	}()

	for i, path := range paths {
		job := &ReadJob{
			Index:   i,
			Path:    path,
			Reader:  b.reader,
			Limiter: b.limiter,
		}
		if err := pool.Submit(job); err != nil {
			break
		}
	}
	pool.Close()

	results := <-collected

	readResults := make([]*ReadResult, 0, len(paths))
	seen := make(map[int]bool, len(results))
	for _, r := range results {
		rr := r.(*ReadResult)
		seen[rr.Index] = true
		readResults = append(readResults, rr)
	}

	// Anything not executed was cancelled
	for i, path := range paths {
		if !seen[i] {
			readResults = append(readResults, &ReadResult{Index: i, Path: path, Error: fmt.Errorf("read cancelled: %w", context.Cause(ctx))})
		}
	}

	sort.Slice(readResults, func(i, j int) bool {
		return readResults[i].Index < readResults[j].Index
	})
	return readResults
}
