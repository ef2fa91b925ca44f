package llm

import (
	"context"
)

// TokenFunc receives each text fragment in arrival order while a
// generation stream is running. Returning an error stops the stream.
type TokenFunc func(token string) error

// Option allows for optional parameters like Temperature or Model.
type Option func(*Options)

type Options struct {
	Temperature float64
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend.
type LLMProvider interface {
	// Generate blocks until the model's stream ends and returns the
	// accumulated response text.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateStream invokes onToken for every fragment as it arrives.
	GenerateStream(ctx context.Context, prompt string, onToken TokenFunc, options ...Option) error
}
