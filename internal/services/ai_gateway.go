package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/envutil"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/gemini"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/httpx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/promptstyle"
)

type CallOptions struct {
	JSONMode    bool
	Temperature *float64
	// Stage labels logs, spans and metrics.
	Stage string
}

// AIGateway is the single entry point to the generative model. Call retries
// throttled attempts with exponential backoff and fails with an upstream or
// empty-response error.
type AIGateway interface {
	Call(ctx context.Context, prompt string, opts CallOptions) (string, error)
}

type AIGatewayConfig struct {
	Model       string
	MaxRetries  int
	BaseBackoff time.Duration
	// RateLimit is requests per second across all callers; <= 0 disables it.
	RateLimit float64
	Burst     int
	// Sleep waits between attempts. Tests replace it to record backoff.
	Sleep func(ctx context.Context, d time.Duration) error
}

func AIGatewayConfigFromEnv() AIGatewayConfig {
	return AIGatewayConfig{
		Model:       envutil.String("GEMINI_MODEL", "gemini-1.5-flash"),
		MaxRetries:  envutil.Int("AI_MAX_RETRIES", 2),
		BaseBackoff: envutil.Millis("AI_BASE_BACKOFF_MS", time.Second),
		RateLimit:   envutil.Float("AI_RATE_LIMIT_RPS", 0),
		Burst:       envutil.Int("AI_RATE_LIMIT_BURST", 1),
	}
}

type aiGateway struct {
	log     *logger.Logger
	client  gemini.Client
	cfg     AIGatewayConfig
	limiter *rate.Limiter
	metrics *observability.Metrics
}

func NewAIGateway(log *logger.Logger, client gemini.Client, cfg AIGatewayConfig, metrics *observability.Metrics) AIGateway {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = time.Second
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepCtx
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &aiGateway{
		log:     log.With("service", "AIGateway"),
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		metrics: metrics,
	}
}

func (g *aiGateway) Call(ctx context.Context, prompt string, opts CallOptions) (string, error) {
	op := "ai." + strings.TrimSpace(opts.Stage)
	if op == "ai." {
		op = "ai.call"
	}
	if g.client == nil {
		return "", apierr.Upstream(op, errors.New("ai client not configured"))
	}
	mode := "text"
	if opts.JSONMode {
		mode = "json"
	}
	prompt = promptstyle.Apply(prompt, mode)

	ctx, span := observability.Tracer().Start(ctx, "ai_gateway.call")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.stage", opts.Stage),
		attribute.String("ai.model", g.cfg.Model),
		attribute.Bool("ai.json_mode", opts.JSONMode),
	)

	start := time.Now()
	attempts := g.cfg.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}
		raw, err := g.client.GenerateContent(ctx, prompt, gemini.GenerateOptions{
			JSONMode:    opts.JSONMode,
			Temperature: opts.Temperature,
		})
		if err == nil {
			span.SetAttributes(attribute.Int("ai.attempts", attempt+1))
			if strings.TrimSpace(raw) == "" {
				g.finish(span, "empty", start)
				return "", apierr.EmptyResponse(op)
			}
			g.finish(span, "ok", start)
			return raw, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == attempts-1 {
			break
		}
		wait := BackoffFor(g.cfg.BaseBackoff, attempt)
		g.log.Warn("AI request throttled, retrying",
			"stage", opts.Stage,
			"attempt", attempt+1,
			"max_retries", g.cfg.MaxRetries,
			"sleep", wait.String(),
			"error", err.Error(),
		)
		g.metrics.IncAIRetry(g.cfg.Model)
		if serr := g.cfg.Sleep(ctx, wait); serr != nil {
			lastErr = serr
			break
		}
	}

	span.RecordError(lastErr)
	g.finish(span, "error", start)
	return "", apierr.Upstream(op, lastErr)
}

func (g *aiGateway) finish(span trace.Span, outcome string, start time.Time) {
	if outcome == "ok" {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, outcome)
	}
	g.metrics.ObserveAIRequest(g.cfg.Model, outcome, time.Since(start))
}

var retryMarkers = []string{"quota", "429", "rate limit", "resource_exhausted", "too many requests"}

// IsRetryable reports whether err looks like provider throttling. Only
// throttling is retried; every other failure is terminal on first sight.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if httpx.IsRateLimitStatus(httpx.StatusCodeOf(err)) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range retryMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// BackoffFor returns the wait before retry number attempt+1: base, 2*base,
// 4*base, ...
func BackoffFor(base time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return base << uint(attempt)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Validator is implemented by AI response contracts that can reject a
// structurally valid but unusable payload.
type Validator interface {
	Validate() error
}

var fenceRE = regexp.MustCompile("(?s)^\\s*```[a-zA-Z0-9_-]*\\s*\n?(.*?)\\s*```\\s*$")

// StripCodeFences removes a surrounding Markdown code fence when present.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fenceRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ParseJSON decodes raw model output into T. Fenced output is unwrapped, and
// as a last resort the outermost {...} span is tried. Any failure, including a
// failed Validate, is a malformed-response error.
func ParseJSON[T any](raw string) (*T, error) {
	const op = "ai.parse_json"
	body := StripCodeFences(raw)
	if body == "" {
		return nil, apierr.Malformed(op, errors.New("empty payload"))
	}
	out := new(T)
	err := json.Unmarshal([]byte(body), out)
	if err != nil {
		start, end := strings.Index(body, "{"), strings.LastIndex(body, "}")
		if start < 0 || end <= start {
			return nil, apierr.Malformed(op, err)
		}
		out = new(T)
		if err2 := json.Unmarshal([]byte(body[start:end+1]), out); err2 != nil {
			return nil, apierr.Malformed(op, err)
		}
	}
	if v, ok := any(out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, apierr.Malformed(op, fmt.Errorf("invalid payload: %w", err))
		}
	}
	return out, nil
}
