// Package translate runs batches of CAD text fragments through a machine
// translation engine.
//
// Each job is masked (see package mask) so MText control sequences never
// reach the engine, optionally pre-processed with a terminology glossary,
// translated under a concurrency limit and unmasked again. A failing job
// keeps its original text and never affects the rest of the batch.
package translate

import (
	"context"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cadtext/cadtext/mask"
	"github.com/cadtext/cadtext/terms"
)

// DefaultMaxConcurrent is the number of jobs translated at once unless
// Options.MaxConcurrent says otherwise.
const DefaultMaxConcurrent = 8

// Engine translates one masked string. sl may be "auto".
type Engine interface {
	Translate(ctx context.Context, text, sl, tl string) (string, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, text, sl, tl string) (string, error)

// Translate calls f.
func (f EngineFunc) Translate(ctx context.Context, text, sl, tl string) (string, error) {
	return f(ctx, text, sl, tl)
}

// Memory remembers earlier translations of identical fragments.
type Memory interface {
	Lookup(text, sl, tl string) (string, bool)
	Store(text, sl, tl, translated string)
}

// ---------------------------------------------------------------------------
// Jobs and results
// ---------------------------------------------------------------------------

// Job is one fragment to translate.
type Job struct {
	ID         string
	Text       string
	SourceLang string
	TargetLang string
}

// Result is the outcome of a Job.
type Result struct {
	ID       string
	Original string
	// Text is the translation, or Original when nothing could be done.
	Text string
	// Changed is true when Text differs from Original.
	Changed bool
	// Skipped is true when the job needed no engine call: blank text or
	// nothing but control sequences.
	Skipped bool
	// Cached is true when Text came from the translation memory.
	Cached bool
	// Err holds the engine failure, if any. Text is Original then.
	Err error
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total   int
	Changed int
	Skipped int
	Cached  int
	Failed  int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Skipped:
			s.Skipped++
		}
		if r.Changed {
			s.Changed++
		}
		if r.Cached {
			s.Cached++
		}
	}
	return s
}

// ---------------------------------------------------------------------------
// Translator options
// ---------------------------------------------------------------------------

// Options controls a Translator.
type Options struct {
	// MaxConcurrent is the number of jobs in flight (default 8).
	MaxConcurrent int
	// Glossary, when set, substitutes known terms before translation.
	Glossary *terms.Glossary
	// Memory, when set, is consulted before and updated after each job.
	Memory Memory
	// OnProgress is called after each job with the number of finished jobs.
	OnProgress func(done, total int)
	// OnLog emits log messages during translation.
	OnLog func(format string, args ...any)
	// OnError emits error messages during translation.
	OnError func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveMaxConcurrent() int {
	if o.MaxConcurrent > 0 {
		return o.MaxConcurrent
	}
	return DefaultMaxConcurrent
}

// ---------------------------------------------------------------------------
// Translator
// ---------------------------------------------------------------------------

// Translator runs jobs against an Engine. It is safe for concurrent use.
type Translator struct {
	engine Engine
	opts   Options
}

// New returns a Translator using engine.
func New(engine Engine, opts Options) *Translator {
	return &Translator{engine: engine, opts: opts}
}

// TranslateBatch translates jobs concurrently. The returned slice is
// index-aligned with jobs. Per-job failures are reported in Result.Err; the
// batch itself never fails. Jobs not started before ctx is done keep their
// original text and carry ctx's error.
func (t *Translator) TranslateBatch(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(t.opts.effectiveMaxConcurrent())

	var done atomic.Int64
	total := len(jobs)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = unchanged(job, false)
				results[i].Err = err
			} else {
				results[i] = t.translate(ctx, job)
			}
			if t.opts.OnProgress != nil {
				t.opts.OnProgress(int(done.Add(1)), total)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Translate runs a single job.
func (t *Translator) Translate(ctx context.Context, job Job) Result {
	return t.translate(ctx, job)
}

func unchanged(job Job, skipped bool) Result {
	return Result{ID: job.ID, Original: job.Text, Text: job.Text, Skipped: skipped}
}

func (t *Translator) translate(ctx context.Context, job Job) Result {
	if strings.TrimSpace(job.Text) == "" {
		return unchanged(job, true)
	}

	if t.opts.Memory != nil {
		if text, ok := t.opts.Memory.Lookup(job.Text, job.SourceLang, job.TargetLang); ok {
			return Result{
				ID:       job.ID,
				Original: job.Text,
				Text:     text,
				Changed:  text != job.Text,
				Cached:   true,
			}
		}
	}

	text := job.Text
	if t.opts.Glossary != nil {
		text = t.opts.Glossary.Apply(text, job.SourceLang, job.TargetLang)
	}

	masked := mask.Mask(text)
	if masked.FullyMasked() {
		return unchanged(job, true)
	}

	out, err := t.engine.Translate(ctx, masked.Body, job.SourceLang, job.TargetLang)
	if err != nil {
		t.opts.logError("job %s: %v", jobLabel(job), err)
		res := unchanged(job, false)
		res.Err = err
		return res
	}

	final := masked.Unmask(out)
	if t.opts.Memory != nil {
		t.opts.Memory.Store(job.Text, job.SourceLang, job.TargetLang, final)
	}
	t.opts.log("job %s: %q -> %q", jobLabel(job), job.Text, final)
	return Result{
		ID:       job.ID,
		Original: job.Text,
		Text:     final,
		Changed:  final != job.Text,
	}
}

func jobLabel(job Job) string {
	if job.ID != "" {
		return job.ID
	}
	return truncate(job.Text, 40)
}

// truncate shortens a string for log output.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
