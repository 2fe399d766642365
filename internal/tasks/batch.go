package tasks

import (
	"context"
	"fmt"
)

// DefaultChunkSize bounds one bulk request when the caller doesn't override it.
const DefaultChunkSize = 50

// Result aggregates the outcome of a chunked bulk operation. Numeric fields
// sum the successful chunks' results; Errors collects both per-item error
// strings returned by the backend and errors synthesized for chunks whose
// dispatch itself failed.
type Result struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// merge folds a successful chunk result into the aggregate.
func (r *Result) merge(chunk Result) {
	r.Total += chunk.Total
	r.Succeeded += chunk.Succeeded
	r.Skipped += chunk.Skipped
	r.Errors = append(r.Errors, chunk.Errors...)
}

// ChunkFunc applies one remote bulk call to a chunk of items.
type ChunkFunc[T any] func(ctx context.Context, chunk []T) (Result, error)

// RunBatch applies op over items in consecutive chunks of at most chunkSize
// elements, strictly one chunk at a time: chunk k+1 is not dispatched until
// chunk k's call has returned. Sequential dispatch bounds load on the backend
// and keeps processing order deterministic.
//
// A failed dispatch does not abort the run: a synthesized error naming the
// affected item range is recorded and the next chunk proceeds. Progress
// advances by the chunk's length whether it succeeded or not, so the final
// update always reports (len(items), len(items)). RunBatch itself never
// fails; everything a caller needs to know is in the returned aggregate.
func RunBatch[T any](ctx context.Context, items []T, chunkSize int, op ChunkFunc[T], phase Phase, prog chan<- ProgressUpdate) Result {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var aggregate Result
	total := len(items)
	processed := 0

	for start := 0; start < total; start += chunkSize {
		end := start + chunkSize
		if end > total {
			end = total
		}
		chunk := items[start:end]

		res, err := op(ctx, chunk)
		if err != nil {
			aggregate.Errors = append(aggregate.Errors,
				fmt.Sprintf("items %d-%d: %v", start+1, end, err))
		} else {
			aggregate.merge(res)
		}

		processed += len(chunk)
		sendProgress(prog, chunkUpdate(phase, processed, total))
	}

	return aggregate
}

// ChunkCount returns ceil(n / chunkSize), the number of calls RunBatch makes
// for n items.
func ChunkCount(n, chunkSize int) int {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if n <= 0 {
		return 0
	}
	return (n + chunkSize - 1) / chunkSize
}
