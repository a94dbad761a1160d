// Package parser turns free-form transaction phrases into validated
// transaction drafts using a text-generation service. Structural failures
// (unusable response text) surface as typed errors; field-level anomalies in
// an otherwise well-formed response are silently repaired.
package parser

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nonna-dev/nonna/internal/llm"
	"github.com/nonna-dev/nonna/internal/model"
)

// Config holds parser tuning knobs. Zero values select the defaults.
type Config struct {
	// RequestTimeout bounds a single generation call. Defaults to 30s.
	RequestTimeout time.Duration
	// RateLimit caps outbound generation calls per minute. 0 disables the
	// cap.
	RateLimit int
}

// Parser converts one free-text phrase into a TransactionDraft. It is
// stateless across calls aside from the client handle and rate limiter, so
// concurrent use is safe.
type Parser struct {
	client  llm.Client
	logger  *slog.Logger
	limiter *rateLimiter
	timeout time.Duration
}

// New creates a Parser backed by the given generation client.
func New(client llm.Client, cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rateLimiter
	if cfg.RateLimit > 0 {
		limiter = newRateLimiter(cfg.RateLimit)
	}

	return &Parser{
		client:  client,
		logger:  logger,
		limiter: limiter,
		timeout: timeout,
	}
}

// Parse performs exactly one generation call and returns a fully-repaired
// draft or a typed failure. There is no partial success: a draft's category
// is always a taxonomy member, its type is always expense or income, and its
// amount is always non-negative.
func (p *Parser) Parse(ctx context.Context, text string) (model.TransactionDraft, error) {
	if strings.TrimSpace(text) == "" {
		return model.TransactionDraft{}, ErrEmptyInput
	}

	if p.limiter != nil {
		if err := p.limiter.wait(ctx); err != nil {
			return model.TransactionDraft{}, &ServiceError{Err: err}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.client.ParseTransaction(callCtx, buildPrompt(text))
	if err != nil {
		p.logger.Warn("generation call failed", "error", err)
		return model.TransactionDraft{}, &ServiceError{Err: err}
	}

	cleaned := cleanMarkdownWrapper(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		p.logger.Warn("unparseable generation response", "error", err, "response", raw)
		return model.TransactionDraft{}, &MalformedResponseError{Err: err, Raw: raw}
	}

	draft := repairDraft(payload)
	p.logger.Debug("parsed transaction",
		"description", draft.Description,
		"category", draft.Category,
		"type", draft.Type,
		"amount", draft.Amount)

	return draft, nil
}
