// Package batchapi exposes the translation orchestrator as a JSON batch
// API. It backs the Lambda entry point in cmd/lambda.
package batchapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cadtext/cadtext/terms"
	"github.com/cadtext/cadtext/translate"
)

// MaxJobs caps the jobs accepted in one request.
const MaxJobs = 5000

// Request is the input of a batch translation.
type Request struct {
	Jobs          []JobRequest `json:"jobs"`
	MaxConcurrent int          `json:"maxConcurrent,omitempty"`
}

// JobRequest is one fragment to translate.
type JobRequest struct {
	ID         string `json:"id,omitempty"`
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// Response is the output of a batch translation.
type Response struct {
	Results []JobResponse `json:"results"`
	Changed int           `json:"changed"`
	Total   int           `json:"total"`
	Error   string        `json:"error,omitempty"`
}

// JobResponse is the outcome of one job. TranslatedText is the original
// text when the job could not be translated.
type JobResponse struct {
	ID             string `json:"id"`
	TranslatedText string `json:"translatedText"`
	Changed        bool   `json:"changed"`
	Error          string `json:"error,omitempty"`
}

// Options configures a Handler.
type Options struct {
	// MaxConcurrent is the default and upper bound for Request.MaxConcurrent.
	MaxConcurrent int
	// Glossary enables the terminology pre-pass.
	Glossary *terms.Glossary
	// OnLog emits log messages.
	OnLog func(format string, args ...any)
}

// Handler serves batch requests with one engine.
type Handler struct {
	engine translate.Engine
	opts   Options
}

// NewHandler creates a Handler.
func NewHandler(engine translate.Engine, opts Options) *Handler {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = translate.DefaultMaxConcurrent
	}
	return &Handler{engine: engine, opts: opts}
}

// Handle processes a batch request. Validation problems are reported in
// Response.Error rather than as a Go error, so the caller always gets a
// well-formed body.
func (h *Handler) Handle(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return &Response{Results: []JobResponse{}, Error: err.Error()}, nil
	}

	// Empty input - return immediately
	if len(req.Jobs) == 0 {
		return &Response{Results: []JobResponse{}}, nil
	}

	jobs := make([]translate.Job, len(req.Jobs))
	for i, j := range req.Jobs {
		id := j.ID
		if id == "" {
			id = uuid.NewString()
		}
		jobs[i] = translate.Job{ID: id, Text: j.Text, SourceLang: j.SourceLang, TargetLang: j.TargetLang}
	}

	tr := translate.New(h.engine, translate.Options{
		MaxConcurrent: h.concurrency(req.MaxConcurrent),
		Glossary:      h.opts.Glossary,
		OnLog:         h.opts.OnLog,
	})
	results := tr.TranslateBatch(ctx, jobs)

	resp := &Response{Results: make([]JobResponse, len(results))}
	for i, r := range results {
		jr := JobResponse{ID: r.ID, TranslatedText: r.Text, Changed: r.Changed}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		resp.Results[i] = jr
	}
	s := translate.Summarize(results)
	resp.Changed = s.Changed
	resp.Total = s.Total
	return resp, nil
}

func (h *Handler) concurrency(requested int) int {
	if requested <= 0 || requested > h.opts.MaxConcurrent {
		return h.opts.MaxConcurrent
	}
	return requested
}

// validateRequest checks the request is valid.
func validateRequest(req Request) error {
	if req.Jobs == nil {
		return fmt.Errorf("jobs is required")
	}
	if len(req.Jobs) > MaxJobs {
		return fmt.Errorf("too many jobs: %d (max %d)", len(req.Jobs), MaxJobs)
	}
	if req.MaxConcurrent < 0 {
		return fmt.Errorf("maxConcurrent must not be negative")
	}
	for i, j := range req.Jobs {
		if strings.TrimSpace(j.TargetLang) == "" {
			return fmt.Errorf("jobs[%d]: targetLang is required", i)
		}
		if strings.EqualFold(strings.TrimSpace(j.TargetLang), "auto") {
			return fmt.Errorf("jobs[%d]: targetLang cannot be auto", i)
		}
	}
	return nil
}
