package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

// mockEmbedder is a deterministic EmbeddingService for tests.
// Vectors are looked up by input text; unknown texts get defaultVec.
type mockEmbedder struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	defaultVec []float32
	failOn     map[string]bool
	calls      int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:    make(map[string][]float32),
		defaultVec: []float32{1, 0, 0},
		failOn:     make(map[string]bool),
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failOn[text] {
		return nil, errors.New("provider unavailable")
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.defaultVec, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int  { return 3 }
func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockKV is an in-memory KVStore for tests.
type mockKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockKV) Close() error { return nil }

// mockPage is a scriptable PageAccessor.
type mockPage struct {
	html        string
	resolve     bool
	resolveErr  error
	scrolled    []string
	positions   [][2]float64
	highlighted []string
	links       []domain.Link
	fields      []driven.FormField
}

func (m *mockPage) Snapshot(context.Context) (*driven.PageSnapshot, error) {
	root, err := html.Parse(strings.NewReader(m.html))
	if err != nil {
		return nil, err
	}
	return &driven.PageSnapshot{URL: "https://example.test", Root: root}, nil
}

func (m *mockPage) Resolve(_ context.Context, _ string) (bool, error) {
	return m.resolve, m.resolveErr
}

func (m *mockPage) ScrollToSelector(_ context.Context, selector string) error {
	m.scrolled = append(m.scrolled, selector)
	return nil
}

func (m *mockPage) ScrollToPosition(_ context.Context, x, y float64) error {
	m.positions = append(m.positions, [2]float64{x, y})
	return nil
}

func (m *mockPage) Highlight(_ context.Context, selector string, _ time.Duration) error {
	m.highlighted = append(m.highlighted, selector)
	return nil
}

func (m *mockPage) Links(context.Context) ([]domain.Link, error) {
	return m.links, nil
}

func (m *mockPage) FormFields(context.Context) ([]driven.FormField, error) {
	return m.fields, nil
}

func (m *mockPage) WaitForElement(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return m.resolve, nil
}

func (m *mockPage) Close() error { return nil }

// mockTransport records messages and replies with a scripted response.
type mockTransport struct {
	calls    []driven.Message
	notifies []driven.Message
	resp     *driven.Response
	err      error
}

func (m *mockTransport) Call(_ context.Context, msg driven.Message) (*driven.Response, error) {
	m.calls = append(m.calls, msg)
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}
	return &driven.Response{Success: true}, nil
}

func (m *mockTransport) Notify(_ context.Context, msg driven.Message) error {
	m.notifies = append(m.notifies, msg)
	return m.err
}

func (m *mockTransport) Close() error { return nil }
