package llm

import (
	"context"
	"time"
)

// Client defines the interface for text-generation providers.
type Client interface {
	// ParseTransaction sends a parsing prompt and returns the model's raw
	// text reply. The reply is expected to be a single JSON object but is
	// returned untouched; normalization belongs to the caller.
	ParseTransaction(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for constructing a provider client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// The system instruction is shared by all providers so that swapping
// providers cannot change the response contract.
const systemPrompt = "You are a financial transaction parser. You MUST respond with ONLY a single valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."
