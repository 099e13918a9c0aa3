package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/dusk-indust/frontgen/internal/metrics"
)

// DefaultTimeout bounds a single generation call when none is configured.
const DefaultTimeout = 60 * time.Second

var fencePattern = regexp.MustCompile("(?s)^\\s*```[A-Za-z0-9_+-]*\\s*\\n(.*?)\\n?```\\s*$")

// Adapter turns a Backend's raw answers into Outcomes. A nil Adapter or one
// without a backend reports every call as Unavailable.
type Adapter struct {
	backend Backend
	timeout time.Duration
	budget  *Budget
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithTimeout bounds each call. Zero keeps DefaultTimeout.
func WithTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithBudget truncates prompts that exceed the token budget.
func WithBudget(b *Budget) AdapterOption {
	return func(a *Adapter) { a.budget = b }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics records call latency by outcome.
func WithMetrics(m *metrics.Metrics) AdapterOption {
	return func(a *Adapter) { a.metrics = m }
}

// NewAdapter wraps backend. backend may be nil.
func NewAdapter(backend Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		backend: backend,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configured reports whether a backend is present.
func (a *Adapter) Configured() bool {
	return a != nil && a.backend != nil
}

// Generate calls the backend under the configured timeout and classifies
// the answer. It never returns an error.
func (a *Adapter) Generate(ctx context.Context, req Request) Outcome {
	if !a.Configured() {
		return Unavailable(ErrNotConfigured)
	}
	if a.budget != nil {
		req.Prompt = a.budget.Fit(req.Prompt)
	}

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.call(cctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("generation timed out after %s: %w", a.timeout, err)
		}
		a.logger.Debug("generation unavailable", "specialization", req.Specialization, "err", err, "elapsed", time.Since(start))
		a.metrics.ObserveGeneration(StatusUnavailable.String(), time.Since(start))
		return Unavailable(err)
	}
	out := Classify(text, req.Format)
	a.metrics.ObserveGeneration(out.Status.String(), time.Since(start))
	return out
}

// call shields the caller from panicking backends.
func (a *Adapter) call(ctx context.Context, req Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation backend panicked: %v", r)
		}
	}()
	return a.backend.Generate(ctx, req)
}

// Classify turns raw backend text into an Outcome. Markdown fences are
// stripped; JSON answers are repaired when possible and rejected otherwise.
func Classify(text string, format Format) Outcome {
	body := StripFences(text)
	if strings.TrimSpace(body) == "" {
		return Malformed(errors.New("empty response"))
	}
	if format != FormatJSON {
		return Success(body)
	}
	if json.Valid([]byte(body)) {
		return Success(body)
	}
	repaired, err := jsonrepair.JSONRepair(body)
	if err != nil || !json.Valid([]byte(repaired)) {
		return Malformed(fmt.Errorf("response is not valid JSON: %w", errOrInvalid(err)))
	}
	return Success(repaired)
}

// StripFences removes a single surrounding markdown code fence.
func StripFences(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

func errOrInvalid(err error) error {
	if err != nil {
		return err
	}
	return errors.New("repair produced invalid JSON")
}
