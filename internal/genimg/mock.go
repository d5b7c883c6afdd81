package genimg

import (
	"context"
	"sync"
)

// pngStub is a minimal valid PNG header-ish payload for canned responses.
// Consumers only store the bytes; nothing decodes them in tests.
var pngStub = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Image *Image
	Err   error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// responses in FIFO order and records all requested subjects. With an empty
// queue it succeeds with a stub PNG, so it also serves as the offline
// "provider" for playing without an API key.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Subjects  []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, subjectName string) (*Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Subjects = append(m.Subjects, subjectName)

	if len(m.responses) == 0 {
		return &Image{MIMEType: "image/png", Data: pngStub}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Image, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Subjects)
}
