package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/slotparse/internal/extract"
	"github.com/ppiankov/slotparse/internal/model"
)

// Processor answers a single request
type Processor interface {
	Process(ctx context.Context, req model.Request) model.Response
}

// ParseJob is one request of a batch
type ParseJob struct {
	Index     int
	Request   model.Request
	Processor Processor
	Limiter   *Limiter
}

// Execute waits for the language's rate limit, then processes the request
func (j *ParseJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Request.Lang); err != nil {
			return &ParseResult{Index: j.Index, Response: canceled(j.Request, err)}
		}
	}
	return &ParseResult{Index: j.Index, Response: j.Processor.Process(ctx, j.Request)}
}

// ParseResult pairs a response with the input position of its request
type ParseResult struct {
	Index    int
	Response model.Response
}

func (r *ParseResult) Err() error {
	if r.Response.Error != nil {
		return errors.New(r.Response.Error.Message)
	}
	return nil
}

func canceled(req model.Request, err error) model.Response {
	return model.Response{
		ID:    req.ID,
		Lang:  req.Lang,
		Query: req.Query,
		Error: &model.ErrorInfo{Type: model.ErrorCanceled, Message: err.Error()},
	}
}

// BatchProcessor answers many requests concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. requestsPerSecond applies per
// language; 0 disables rate limiting.
func NewBatchProcessor(processor Processor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// Process answers every request. Responses come back in input order; requests
// the context cut off get a canceled error.
func (b *BatchProcessor) Process(ctx context.Context, requests []model.Request) []model.Response {
	if len(requests) == 0 {
		return []model.Response{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for i, req := range requests {
			job := &ParseJob{
				Index:     i,
				Request:   req,
				Processor: b.processor,
				Limiter:   b.limiter,
			}
			if err := pool.Submit(job); err != nil {
				break
			}
		}
		pool.Close()
	}()

	var results []*ParseResult
	for r := range pool.Results() {
		results = append(results, r.(*ParseResult))
	}

	responses := make([]model.Response, len(requests))
	done := make([]bool, len(requests))
	for _, r := range results {
		responses[r.Index] = r.Response
		done[r.Index] = true
	}
	for i, ok := range done {
		if !ok {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			responses[i] = canceled(requests[i], err)
		}
	}
	return responses
}

// ProcessFile reads requests from a file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]model.Response, error) {
	requests, err := extract.ReadQueriesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return b.Process(ctx, requests), nil
}
