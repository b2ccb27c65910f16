package llm

import (
	"context"
	"encoding/json"
)

// GenerationParams tunes a single model invocation.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`

	// ResponseSchema requests structured output when the backend
	// supports it. Backends without schema support ignore it; callers
	// must parse the raw response defensively either way.
	ResponseSchema *ResponseSchema `json:"response_schema,omitempty"`
}

// ResponseSchema describes the JSON shape a scoring call must return.
type ResponseSchema struct {
	// Name identifies the schema (e.g. "submission_score").
	Name string `json:"name"`

	// Definition is the raw JSON schema document.
	Definition json.RawMessage `json:"definition"`

	// Strict enables strict schema enforcement where supported.
	Strict bool `json:"strict"`
}

// Client is the standard interface for any text-scoring model backend.
//
// Implementations must support a per-call temperature override and be
// safe for concurrent use; the sample collector issues several calls
// against the same client at once.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
