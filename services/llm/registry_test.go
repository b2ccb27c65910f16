// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct{ out string }

func (f *fakeClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	return f.out, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	want := &fakeClient{out: "ok"}
	r.Register("primary", want)

	got, err := r.Get("primary")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Error("Get returned a different client")
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	if !errors.Is(err, ErrNoClient) {
		t.Fatalf("expected ErrNoClient, got %v", err)
	}
}

func TestRegistry_Models(t *testing.T) {
	r := NewRegistry()
	r.Register("a", &fakeClient{})
	r.Register("b", &fakeClient{})
	if len(r.Models()) != 2 {
		t.Errorf("expected 2 models, got %d", len(r.Models()))
	}
}
