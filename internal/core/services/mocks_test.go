package services

import (
	"context"
	"sync"
	"time"
)

// mockRegistryAPI is a hand-written fake of driven.RegistryAPI.
type mockRegistryAPI struct {
	GetFunc  func(ctx context.Context, path string) (any, error)
	PostFunc func(ctx context.Context, path string, body any) (map[string]any, error)

	mu    sync.Mutex
	gets  []string
	posts []string
}

func (m *mockRegistryAPI) Get(ctx context.Context, path string) (any, error) {
	m.mu.Lock()
	m.gets = append(m.gets, path)
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path)
	}
	return []any{}, nil
}

func (m *mockRegistryAPI) Post(ctx context.Context, path string, body any) (map[string]any, error) {
	m.mu.Lock()
	m.posts = append(m.posts, path)
	m.mu.Unlock()
	if m.PostFunc != nil {
		return m.PostFunc(ctx, path, body)
	}
	return map[string]any{}, nil
}

func (m *mockRegistryAPI) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.gets...)
}

func (m *mockRegistryAPI) postCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.posts...)
}

type fetchObservation struct {
	source  string
	outcome string
}

type submitObservation struct {
	form    string
	outcome string
}

// recordingMetrics captures observations for assertions.
type recordingMetrics struct {
	mu      sync.Mutex
	fetches []fetchObservation
	submits []submitObservation
}

func (m *recordingMetrics) ObserveFetch(source, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, fetchObservation{source, outcome})
}

func (m *recordingMetrics) ObserveSubmit(form, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submits = append(m.submits, submitObservation{form, outcome})
}
