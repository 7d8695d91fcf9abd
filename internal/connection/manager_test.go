package connection

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderite/auditor/internal/api"
	"github.com/coderite/auditor/internal/domain"
)

func validDraft() domain.Connection {
	return domain.Connection{
		Name:      "Prod",
		Provider:  domain.ProviderOpenAI,
		ModelName: "gpt-4o",
		APIKey:    "sk-test",
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.Connection)
		wantField string
	}{
		{"empty name", func(c *domain.Connection) { c.Name = "" }, "name"},
		{"empty model", func(c *domain.Connection) { c.ModelName = "" }, "model name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := api.NewMock()
			mgr := NewManager(mock)

			draft := validDraft()
			tt.mutate(&draft)

			err := mgr.Create(context.Background(), draft)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)

			// No network call of any kind was issued.
			assert.Empty(t, mock.TestCalls)
			assert.Empty(t, mock.CreateCalls)
			assert.Zero(t, mock.ListConnectionsCalls)
		})
	}
}

func TestCreateTestsBeforePersist(t *testing.T) {
	mock := api.NewMock()
	var order []string
	mock.TestConnectionFunc = func(_ context.Context, _ domain.Connection) error {
		order = append(order, "test")
		return nil
	}
	mock.CreateConnectionFunc = func(_ context.Context, _ domain.Connection) error {
		order = append(order, "create")
		return nil
	}

	mgr := NewManager(mock)
	require.NoError(t, mgr.Create(context.Background(), validDraft()))
	assert.Equal(t, []string{"test", "create"}, order)
	assert.Equal(t, 1, mock.ListConnectionsCalls, "cache refreshed after persist")
}

func TestCreateAbortsOnTestFailure(t *testing.T) {
	mock := api.NewMock()
	mock.TestConnectionFunc = func(_ context.Context, _ domain.Connection) error {
		return &api.StatusError{StatusCode: http.StatusBadRequest, Detail: "invalid api key"}
	}

	mgr := NewManager(mock)
	err := mgr.Create(context.Background(), validDraft())

	var testErr *TestFailedError
	require.ErrorAs(t, err, &testErr)
	assert.Equal(t, "invalid api key", err.Error(), "provider reason shown verbatim")
	assert.Empty(t, mock.CreateCalls, "persist never attempted")
}

func TestUpdateAbortsOnTestFailure(t *testing.T) {
	mock := api.NewMock()
	mock.TestConnectionFunc = func(_ context.Context, _ domain.Connection) error {
		return &api.StatusError{StatusCode: http.StatusBadRequest, Detail: "model not found"}
	}

	mgr := NewManager(mock)
	err := mgr.Update(context.Background(), 3, validDraft())
	require.Error(t, err)
	assert.Empty(t, mock.UpdateCalls)
}

func TestUpdatePersistsAndRefreshes(t *testing.T) {
	mock := api.NewMock()
	mgr := NewManager(mock)

	require.NoError(t, mgr.Update(context.Background(), 3, validDraft()))
	require.Len(t, mock.UpdateCalls, 1)
	assert.Equal(t, 3, mock.UpdateCalls[0].ID)
	assert.Equal(t, 1, mock.ListConnectionsCalls)
}

func TestActivateRefetchesExclusiveState(t *testing.T) {
	mock := api.NewMock()
	active := 1
	mock.ActivateConnectionFunc = func(_ context.Context, id int) error {
		active = id
		return nil
	}
	mock.ListConnectionsFunc = func(_ context.Context) ([]domain.Connection, error) {
		return []domain.Connection{
			{ID: 1, Name: "A", ModelName: "m", IsActive: active == 1},
			{ID: 2, Name: "B", ModelName: "m", IsActive: active == 2},
		}, nil
	}

	mgr := NewManager(mock)
	require.NoError(t, mgr.Refresh(context.Background()))
	require.NotNil(t, mgr.Active())
	assert.Equal(t, 1, mgr.Active().ID)

	require.NoError(t, mgr.Activate(context.Background(), 2))

	var activeCount int
	for _, c := range mgr.Connections() {
		if c.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount, "at most one active connection after activate settles")
	assert.Equal(t, 2, mgr.Active().ID)
}

func TestDeleteActiveLeavesNoActive(t *testing.T) {
	mock := api.NewMock()
	deleted := false
	mock.DeleteConnectionFunc = func(_ context.Context, id int) error {
		deleted = true
		return nil
	}
	mock.ListConnectionsFunc = func(_ context.Context) ([]domain.Connection, error) {
		if deleted {
			// Remaining record does not get auto-promoted.
			return []domain.Connection{{ID: 2, Name: "B", ModelName: "m"}}, nil
		}
		return []domain.Connection{
			{ID: 1, Name: "A", ModelName: "m", IsActive: true},
			{ID: 2, Name: "B", ModelName: "m"},
		}, nil
	}

	mgr := NewManager(mock)
	require.NoError(t, mgr.Refresh(context.Background()))
	require.NoError(t, mgr.Delete(context.Background(), 1))
	assert.Nil(t, mgr.Active())
}

func TestMutationFailureKeepsSnapshot(t *testing.T) {
	mock := api.NewMock()
	mock.ListConnectionsFunc = func(_ context.Context) ([]domain.Connection, error) {
		return []domain.Connection{{ID: 1, Name: "A", ModelName: "m", IsActive: true}}, nil
	}

	mgr := NewManager(mock)
	require.NoError(t, mgr.Refresh(context.Background()))

	mock.ActivateConnectionFunc = func(_ context.Context, _ int) error {
		return errors.New("network down")
	}
	err := mgr.Activate(context.Background(), 2)
	require.Error(t, err)

	// Last known good snapshot is untouched.
	require.Len(t, mgr.Connections(), 1)
	assert.Equal(t, 1, mgr.Connections()[0].ID)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	mock := api.NewMock()
	mock.ListConnectionsFunc = func(_ context.Context) ([]domain.Connection, error) {
		return []domain.Connection{{ID: 1, Name: "A", ModelName: "m"}}, nil
	}

	mgr := NewManager(mock)
	require.NoError(t, mgr.Refresh(context.Background()))

	mock.ListConnectionsFunc = func(_ context.Context) ([]domain.Connection, error) {
		return nil, errors.New("boom")
	}
	require.Error(t, mgr.Refresh(context.Background()))
	assert.Len(t, mgr.Connections(), 1)
}

func TestTestIsSideEffectFree(t *testing.T) {
	mock := api.NewMock()
	mgr := NewManager(mock)

	require.NoError(t, mgr.Test(context.Background(), validDraft()))
	assert.Len(t, mock.TestCalls, 1)
	assert.Empty(t, mock.CreateCalls)
	assert.Zero(t, mock.ListConnectionsCalls)
}

func TestTestTransportFailureIsNotTestFailure(t *testing.T) {
	mock := api.NewMock()
	mock.TestConnectionFunc = func(_ context.Context, _ domain.Connection) error {
		return errors.New("connection refused")
	}

	mgr := NewManager(mock)
	err := mgr.Test(context.Background(), validDraft())
	require.Error(t, err)

	var testErr *TestFailedError
	assert.False(t, errors.As(err, &testErr), "transport failures surface generically")
}
