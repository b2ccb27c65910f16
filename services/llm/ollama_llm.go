// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient scores submissions through a local Ollama model.
//
// It serves as the independent secondary model for cross-validation:
// a locally hosted model shares no provider infrastructure with the
// primary OpenAI scorer, so agreement between the two is meaningful.
type OllamaClient struct {
	llm   *ollama.LLM
	model string
}

// NewOllamaClient connects to an Ollama server.
//
// Inputs:
//
//	serverURL - Base URL of the Ollama server (e.g. "http://localhost:11434").
//	model - Model name (e.g. "llama3.1:8b").
//
// Outputs:
//
//	*OllamaClient - The configured client.
//	error - Non-nil if the langchaingo backend cannot be constructed.
func NewOllamaClient(serverURL, model string) (*OllamaClient, error) {
	backend, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama backend: %w", err)
	}
	slog.Info("Initializing Ollama scoring client", "model", model, "server", serverURL)
	return &OllamaClient{llm: backend, model: model}, nil
}

// Model returns the configured model name.
func (o *OllamaClient) Model() string { return o.model }

// Generate implements the Client interface.
//
// Ollama has no JSON-schema enforcement; the schema request degrades to
// JSON mode and callers must parse defensively.
func (o *OllamaClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	opts := []llms.CallOption{}
	if params.Temperature != nil {
		opts = append(opts, llms.WithTemperature(float64(*params.Temperature)))
	}
	if params.TopP != nil {
		opts = append(opts, llms.WithTopP(float64(*params.TopP)))
	}
	if params.MaxTokens != nil {
		opts = append(opts, llms.WithMaxTokens(*params.MaxTokens))
	}
	if len(params.Stop) > 0 {
		opts = append(opts, llms.WithStopWords(params.Stop))
	}
	if params.ResponseSchema != nil {
		opts = append(opts, llms.WithJSONMode())
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt, opts...)
	if err != nil {
		slog.Error("Ollama call failed", "model", o.model, "error", err)
		return "", fmt.Errorf("ollama call failed: %w", err)
	}
	return out, nil
}
