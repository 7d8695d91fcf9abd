package api

import (
	"context"
	"io"
	"sync"

	"github.com/coderite/auditor/internal/domain"
)

// Mock is a hand-rolled test double for Client. Each method records its call
// and delegates to the corresponding func field when set.
type Mock struct {
	mu sync.Mutex

	ListConnectionsFunc    func(ctx context.Context) ([]domain.Connection, error)
	CreateConnectionFunc   func(ctx context.Context, draft domain.Connection) error
	UpdateConnectionFunc   func(ctx context.Context, id int, draft domain.Connection) error
	TestConnectionFunc     func(ctx context.Context, draft domain.Connection) error
	ActivateConnectionFunc func(ctx context.Context, id int) error
	DeleteConnectionFunc   func(ctx context.Context, id int) error
	UploadFunc             func(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)
	CategoriesFunc         func(ctx context.Context) ([]string, error)
	AnalyzeFunc            func(ctx context.Context, req domain.AnalyzeRequest) (*domain.ReviewResponse, error)
	HealthFunc             func(ctx context.Context) error

	ListConnectionsCalls int
	CreateCalls          []domain.Connection
	UpdateCalls          []struct {
		ID    int
		Draft domain.Connection
	}
	TestCalls     []domain.Connection
	ActivateCalls []int
	DeleteCalls   []int
	UploadCalls   []string
	AnalyzeCalls  []domain.AnalyzeRequest
}

var _ Client = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) ListConnections(ctx context.Context) ([]domain.Connection, error) {
	m.mu.Lock()
	m.ListConnectionsCalls++
	m.mu.Unlock()

	if m.ListConnectionsFunc != nil {
		return m.ListConnectionsFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) CreateConnection(ctx context.Context, draft domain.Connection) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, draft)
	m.mu.Unlock()

	if m.CreateConnectionFunc != nil {
		return m.CreateConnectionFunc(ctx, draft)
	}
	return nil
}

func (m *Mock) UpdateConnection(ctx context.Context, id int, draft domain.Connection) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, struct {
		ID    int
		Draft domain.Connection
	}{id, draft})
	m.mu.Unlock()

	if m.UpdateConnectionFunc != nil {
		return m.UpdateConnectionFunc(ctx, id, draft)
	}
	return nil
}

func (m *Mock) TestConnection(ctx context.Context, draft domain.Connection) error {
	m.mu.Lock()
	m.TestCalls = append(m.TestCalls, draft)
	m.mu.Unlock()

	if m.TestConnectionFunc != nil {
		return m.TestConnectionFunc(ctx, draft)
	}
	return nil
}

func (m *Mock) ActivateConnection(ctx context.Context, id int) error {
	m.mu.Lock()
	m.ActivateCalls = append(m.ActivateCalls, id)
	m.mu.Unlock()

	if m.ActivateConnectionFunc != nil {
		return m.ActivateConnectionFunc(ctx, id)
	}
	return nil
}

func (m *Mock) DeleteConnection(ctx context.Context, id int) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteConnectionFunc != nil {
		return m.DeleteConnectionFunc(ctx, id)
	}
	return nil
}

func (m *Mock) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	m.mu.Lock()
	m.UploadCalls = append(m.UploadCalls, filename)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, content)
	}
	return &domain.Document{Filename: filename}, nil
}

func (m *Mock) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *Mock) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.ReviewResponse, error) {
	m.mu.Lock()
	m.AnalyzeCalls = append(m.AnalyzeCalls, req)
	m.mu.Unlock()

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return &domain.ReviewResponse{}, nil
}

func (m *Mock) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}
