// Package connection mediates reads and writes of AI-provider connection
// records. The backend store is the sole authority; the manager holds a
// read-through cache and enforces two rules the store cannot see:
// local field validation before any network call, and a successful live test
// before every create or update.
package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/coderite/auditor/internal/api"
	"github.com/coderite/auditor/internal/debug"
	"github.com/coderite/auditor/internal/domain"
)

// ValidationError reports a locally rejected draft. It never reaches the
// network.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// TestFailedError reports a connectivity test the backend rejected. Reason is
// the provider's failure message, shown to the user verbatim.
type TestFailedError struct {
	Reason string
}

func (e *TestFailedError) Error() string {
	return e.Reason
}

// Store is the subset of the backend client the manager needs.
type Store interface {
	ListConnections(ctx context.Context) ([]domain.Connection, error)
	CreateConnection(ctx context.Context, draft domain.Connection) error
	UpdateConnection(ctx context.Context, id int, draft domain.Connection) error
	TestConnection(ctx context.Context, draft domain.Connection) error
	ActivateConnection(ctx context.Context, id int) error
	DeleteConnection(ctx context.Context, id int) error
}

// Manager is the in-memory view over the connection store.
//
// The cached list is always treated as stale after a mutating call: every
// mutation refetches from the store rather than patching locally, because
// activation side effects (exclusivity flips) are store-authoritative.
type Manager struct {
	store Store
	conns []domain.Connection
}

// NewManager creates a manager over the given store. The cache starts empty;
// call Refresh before reading.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Connections returns the last fetched snapshot.
func (m *Manager) Connections() []domain.Connection {
	return m.conns
}

// Active returns the active connection from the snapshot, or nil.
func (m *Manager) Active() *domain.Connection {
	for i := range m.conns {
		if m.conns[i].IsActive {
			return &m.conns[i]
		}
	}
	return nil
}

// Refresh refetches the list from the store. On failure the previous snapshot
// is kept as the last known good state.
func (m *Manager) Refresh(ctx context.Context) error {
	conns, err := m.store.ListConnections(ctx)
	if err != nil {
		return err
	}
	m.conns = conns
	return nil
}

// Create validates and live-tests the draft, then persists it. A failed test
// aborts the persist entirely.
func (m *Manager) Create(ctx context.Context, draft domain.Connection) error {
	if err := validate(draft); err != nil {
		return err
	}
	if err := m.test(ctx, draft); err != nil {
		return err
	}
	if err := m.store.CreateConnection(ctx, draft); err != nil {
		return err
	}
	debug.Logf("connection: created %q (%s/%s)", draft.Name, draft.Provider, draft.ModelName)
	return m.Refresh(ctx)
}

// Update validates and live-tests the draft, then persists it over the record
// with the given id. A failed test leaves the stored record unchanged.
func (m *Manager) Update(ctx context.Context, id int, draft domain.Connection) error {
	if err := validate(draft); err != nil {
		return err
	}
	if err := m.test(ctx, draft); err != nil {
		return err
	}
	if err := m.store.UpdateConnection(ctx, id, draft); err != nil {
		return err
	}
	debug.Logf("connection: updated %d", id)
	return m.Refresh(ctx)
}

// Test issues a live connectivity probe for the draft. It is side-effect-free
// with respect to stored records and the cache.
func (m *Manager) Test(ctx context.Context, draft domain.Connection) error {
	return m.test(ctx, draft)
}

// Activate marks the given connection active. The store clears is_active on
// every other record atomically; the refetch picks up whichever records
// flipped rather than guessing.
func (m *Manager) Activate(ctx context.Context, id int) error {
	if err := m.store.ActivateConnection(ctx, id); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Delete removes a record. Deleting the active connection leaves no active
// connection; no replacement is auto-promoted.
func (m *Manager) Delete(ctx context.Context, id int) error {
	if err := m.store.DeleteConnection(ctx, id); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

func (m *Manager) test(ctx context.Context, draft domain.Connection) error {
	err := m.store.TestConnection(ctx, draft)
	if err == nil {
		return nil
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return &TestFailedError{Reason: statusErr.Error()}
	}
	return fmt.Errorf("connection test: %w", err)
}

func validate(draft domain.Connection) error {
	if draft.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if draft.ModelName == "" {
		return &ValidationError{Field: "model name"}
	}
	return nil
}
