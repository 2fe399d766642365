package tasks

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"vtriage/internal/models"
	"vtriage/internal/services"
	"vtriage/internal/shared"
)

// EngineOpts contains configuration for bulk triage operations.
type EngineOpts struct {
	ChunkSize int     // Items per bulk request (default: DefaultChunkSize)
	RateLimit float64 // Requests per second (default: 5)
}

// TriageEngine applies bulk state transitions and imports against the triage
// backend, chunking large inputs through [RunBatch] and pacing requests with
// a rate limiter.
type TriageEngine struct {
	svc       services.Service
	limiter   *rate.Limiter
	chunkSize int
}

// NewTriageEngine creates a TriageEngine over the given backend service.
func NewTriageEngine(svc services.Service, opts EngineOpts) *TriageEngine {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &TriageEngine{
		svc:       svc,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		chunkSize: opts.ChunkSize,
	}
}

// ChunkSize returns the configured chunk bound.
func (e *TriageEngine) ChunkSize() int { return e.chunkSize }

// BulkSave transitions the given video ids to saved.
func (e *TriageEngine) BulkSave(ctx context.Context, ids []string, prog chan<- ProgressUpdate) (Result, error) {
	if e.svc == nil {
		return Result{}, fmt.Errorf("%w: triage service not initialized", shared.ErrServiceUnavailable)
	}
	return e.bulkTransition(ctx, ids, BulkSave, e.svc.BulkSave, prog), nil
}

// BulkDiscard transitions the given video ids to discarded.
func (e *TriageEngine) BulkDiscard(ctx context.Context, ids []string, prog chan<- ProgressUpdate) (Result, error) {
	if e.svc == nil {
		return Result{}, fmt.Errorf("%w: triage service not initialized", shared.ErrServiceUnavailable)
	}
	return e.bulkTransition(ctx, ids, BulkDiscard, e.svc.BulkDiscard, prog), nil
}

// ImportVideoURLs imports a pasted list of YouTube URLs as saved videos.
func (e *TriageEngine) ImportVideoURLs(ctx context.Context, urls []string, prog chan<- ProgressUpdate) (Result, error) {
	if e.svc == nil {
		return Result{}, fmt.Errorf("%w: triage service not initialized", shared.ErrServiceUnavailable)
	}

	op := func(ctx context.Context, chunk []string) (Result, error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return Result{}, err
		}
		res, err := e.svc.ImportVideoURLs(ctx, chunk)
		if err != nil {
			return Result{}, err
		}
		return fromImportResult(*res), nil
	}

	return dispatch(ctx, urls, e.chunkSize, ImportURLs, op, prog), nil
}

// ImportChannels imports channels from an export document.
func (e *TriageEngine) ImportChannels(ctx context.Context, channels []models.ChannelExport, prog chan<- ProgressUpdate) (Result, error) {
	if e.svc == nil {
		return Result{}, fmt.Errorf("%w: triage service not initialized", shared.ErrServiceUnavailable)
	}

	op := func(ctx context.Context, chunk []models.ChannelExport) (Result, error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return Result{}, err
		}
		res, err := e.svc.ImportChannels(ctx, chunk)
		if err != nil {
			return Result{}, err
		}
		return fromImportResult(*res), nil
	}

	return dispatch(ctx, channels, e.chunkSize, ImportChannels, op, prog), nil
}

// bulkTransition runs one of the backend's bulk status endpoints over ids.
// The backend reports only the videos it actually updated; ids it didn't
// recognize count as skipped.
func (e *TriageEngine) bulkTransition(
	ctx context.Context,
	ids []string,
	phase Phase,
	call func(context.Context, []string) ([]models.Video, error),
	prog chan<- ProgressUpdate,
) Result {
	op := func(ctx context.Context, chunk []string) (Result, error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return Result{}, err
		}
		videos, err := call(ctx, chunk)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Total:     len(chunk),
			Succeeded: len(videos),
			Skipped:   len(chunk) - len(videos),
		}, nil
	}

	return dispatch(ctx, ids, e.chunkSize, phase, op, prog)
}

// dispatch routes an input through RunBatch, or straight to op when the
// whole input fits in one chunk and needs no partitioning.
func dispatch[T any](ctx context.Context, items []T, chunkSize int, phase Phase, op ChunkFunc[T], prog chan<- ProgressUpdate) Result {
	if len(items) == 0 {
		return Result{}
	}
	if len(items) > chunkSize {
		return RunBatch(ctx, items, chunkSize, op, phase, prog)
	}

	res, err := op(ctx, items)
	if err != nil {
		res = Result{Errors: []string{fmt.Sprintf("items 1-%d: %v", len(items), err)}}
	}
	sendProgress(prog, chunkUpdate(phase, len(items), len(items)))
	return res
}

func fromImportResult(r models.ImportResult) Result {
	return Result{
		Total:     r.Total,
		Succeeded: r.Imported,
		Skipped:   r.Skipped,
		Errors:    r.Errors,
	}
}
