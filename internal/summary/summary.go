// Package summary produces a short, human-readable commentary on a group's spending.
//
// The commentary comes from an external text generator and is strictly best
// effort: Summarize always returns a string, falling back to a fixed message
// when the generator is missing, failing or silent.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/dutchpay/internal/models"
)

// Fallback messages returned instead of a generated summary.
const (
	FallbackNotConfigured = "API key not configured."
	FallbackFailed        = "Analysis failed. Please try again later."
	FallbackEmpty         = "Could not complete the analysis."
)

// Fallback reasons reported to the OnFallback hook.
const (
	ReasonNotConfigured = "not_configured"
	ReasonError         = "error"
	ReasonEmpty         = "empty"
)

const defaultTimeout = 15 * time.Second

// CurrencyUnit is the unit written after prices in the digest.
const CurrencyUnit = "won"

// Summarizer turns the ledger contents into commentary text. It never fails.
type Summarizer interface {
	Summarize(ctx context.Context, items []models.ExpenseItem, participants []models.Participant) string
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service implements Summarizer on top of a Generator guarded by a circuit breaker.
type Service struct {
	gen        Generator
	breaker    *gobreaker.CircuitBreaker
	timeout    time.Duration
	onFallback func(reason string)
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each generator call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithFallbackHook registers a callback invoked with the reason for every fallback.
func WithFallbackHook(fn func(reason string)) Option {
	return func(s *Service) { s.onFallback = fn }
}

// WithBreakerSettings replaces the default circuit breaker settings.
// Caller cancellations are not counted as failures unless st.IsSuccessful is set.
func WithBreakerSettings(st gobreaker.Settings) Option {
	if st.IsSuccessful == nil {
		st.IsSuccessful = isSuccessful
	}
	return func(s *Service) { s.breaker = gobreaker.NewCircuitBreaker(st) }
}

// errCallerGone marks a generator error caused by the caller's context ending.
var errCallerGone = errors.New("caller went away")

// isSuccessful keeps caller cancellations from tripping the breaker.
func isSuccessful(err error) bool {
	return err == nil || errors.Is(err, errCallerGone)
}

// New creates a Service. gen may be nil, in which case every call returns
// FallbackNotConfigured.
func New(gen Generator, opts ...Option) *Service {
	s := &Service{
		gen:     gen,
		timeout: defaultTimeout,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "summary-generator",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: isSuccessful,
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns generated commentary or one of the fallback messages.
func (s *Service) Summarize(ctx context.Context, items []models.ExpenseItem, participants []models.Participant) (text string) {
	if s.gen == nil {
		s.fallback(ReasonNotConfigured)
		return FallbackNotConfigured
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Summary generator panicked", "panic", r)
			s.fallback(ReasonError)
			text = FallbackFailed
		}
	}()

	prompt := BuildPrompt(Digest(items, participants))

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.breaker.Execute(func() (interface{}, error) {
		text, err := s.gen.Generate(callCtx, prompt)
		if err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled)) {
			return nil, fmt.Errorf("%w: %w", errCallerGone, err)
		}
		return text, err
	})
	if err != nil {
		if errors.Is(err, errCallerGone) {
			slog.Debug("Summary abandoned by caller", "error", err)
		} else if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("Summary generator unavailable", "error", err)
		} else {
			slog.Error("Summary generation failed", "error", err)
		}
		s.fallback(ReasonError)
		return FallbackFailed
	}

	text, _ = out.(string)
	text = strings.TrimSpace(text)
	if text == "" {
		s.fallback(ReasonEmpty)
		return FallbackEmpty
	}
	return text
}

func (s *Service) fallback(reason string) {
	if s.onFallback != nil {
		s.onFallback(reason)
	}
}

// Digest renders the items as plain text, one per line:
//
//	- Pizza: 10,000 won (Shared by: Alice, Bob)
//
// Sharers missing from participants are skipped.
func Digest(items []models.ExpenseItem, participants []models.Participant) string {
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	printer := message.NewPrinter(language.English)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		sharers := make([]string, 0, len(item.SharedBy))
		for _, id := range item.SharedBy {
			if name, ok := names[id]; ok {
				sharers = append(sharers, name)
			}
		}
		lines = append(lines, printer.Sprintf("- %s: %d %s (Shared by: %s)",
			item.Name, item.Price.IntPart(), CurrencyUnit, strings.Join(sharers, ", ")))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt wraps a digest in the instructions sent to the generator.
func BuildPrompt(digest string) string {
	return fmt.Sprintf(`Analyze the following receipt data for a group split.

Data:
%s

Please provide a fun, brief, and witty summary of the spending.
1. Who seems to be the "big spender" or involved in the most expensive items?
2. Any interesting patterns?
3. A joke about the total cost.

Keep it lighthearted and under 300 characters.`, digest)
}
