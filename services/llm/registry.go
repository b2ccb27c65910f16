// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoClient indicates no client is registered for a model ID.
var ErrNoClient = errors.New("no client registered for model")

// Registry maps model identifiers to scoring clients.
//
// The consistency pipeline resolves the primary and secondary model by
// ID so that the two stay independently configurable.
//
// Thread Safety: safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Register adds or replaces the client for a model ID.
func (r *Registry) Register(modelID string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[modelID] = client
}

// Get resolves a model ID to its client.
//
// Outputs:
//
//	Client - The registered client.
//	error - ErrNoClient (wrapped with the model ID) if none is registered.
func (r *Registry) Get(modelID string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[modelID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoClient, modelID)
	}
	return c, nil
}

// Models returns the registered model IDs.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	return ids
}
