package workflow

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderite/auditor/internal/api"
	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/event"
)

func TestSubmitHappyPath(t *testing.T) {
	mock := api.NewMock()
	mock.UploadFunc = func(_ context.Context, filename string, _ io.Reader) (*domain.Document, error) {
		return &domain.Document{Content: "doc text", Filename: filename}, nil
	}
	mock.AnalyzeFunc = func(_ context.Context, req domain.AnalyzeRequest) (*domain.ReviewResponse, error) {
		return &domain.ReviewResponse{Score: 85}, nil
	}

	c := NewController(mock, nil)
	res, err := c.Submit(context.Background(), "spec.md", strings.NewReader("doc text"), "ISO-9001")
	require.NoError(t, err)
	assert.Equal(t, 85, res.Score)

	// Analyze received the extracted text, empty custom instructions, and
	// the selected category.
	require.Len(t, mock.AnalyzeCalls, 1)
	assert.Equal(t, domain.AnalyzeRequest{
		Text:             "doc text",
		DocumentCategory: "ISO-9001",
	}, mock.AnalyzeCalls[0])

	state := c.State()
	assert.Equal(t, PhaseResult, state.Phase)
	require.NotNil(t, state.Document)
	assert.Equal(t, "spec.md", state.Document.Filename)
	require.NotNil(t, state.Result)
	assert.Equal(t, 85, state.Result.Score)
}

func TestSubmitUploadFailureStaysIdle(t *testing.T) {
	mock := api.NewMock()
	mock.UploadFunc = func(_ context.Context, _ string, _ io.Reader) (*domain.Document, error) {
		return nil, errors.New("boom")
	}

	c := NewController(mock, nil)
	_, err := c.Submit(context.Background(), "spec.md", strings.NewReader("x"), "ISO-9001")

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)

	state := c.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Nil(t, state.Document)
	assert.Empty(t, mock.AnalyzeCalls, "no analysis attempted after failed upload")

	// Session is reusable.
	mock.UploadFunc = nil
	_, err = c.Submit(context.Background(), "spec.md", strings.NewReader("x"), "ISO-9001")
	require.NoError(t, err)
}

func TestSubmitAnalysisFailureRecovers(t *testing.T) {
	mock := api.NewMock()
	mock.AnalyzeFunc = func(_ context.Context, _ domain.AnalyzeRequest) (*domain.ReviewResponse, error) {
		return nil, errors.New("model overloaded")
	}

	c := NewController(mock, nil)
	_, err := c.Submit(context.Background(), "spec.md", strings.NewReader("x"), "")

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)

	// Not stuck in Analyzing: back to Idle, retry possible.
	state := c.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Nil(t, state.Result)

	mock.AnalyzeFunc = nil
	_, err = c.Submit(context.Background(), "spec.md", strings.NewReader("x"), "")
	require.NoError(t, err)
}

func TestSubmitRejectedWhileAnalyzing(t *testing.T) {
	mock := api.NewMock()
	analyzing := make(chan struct{})
	release := make(chan struct{})
	mock.AnalyzeFunc = func(_ context.Context, _ domain.AnalyzeRequest) (*domain.ReviewResponse, error) {
		close(analyzing)
		<-release
		return &domain.ReviewResponse{Score: 70}, nil
	}

	c := NewController(mock, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
	}()

	<-analyzing
	_, err := c.Submit(context.Background(), "b.md", strings.NewReader("y"), "")
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()

	// Exactly one upload and one analysis happened.
	assert.Len(t, mock.UploadCalls, 1)
	assert.Len(t, mock.AnalyzeCalls, 1)
}

func TestResetDuringAnalysisDiscardsOutcome(t *testing.T) {
	mock := api.NewMock()
	analyzing := make(chan struct{})
	release := make(chan struct{})
	mock.AnalyzeFunc = func(_ context.Context, _ domain.AnalyzeRequest) (*domain.ReviewResponse, error) {
		close(analyzing)
		<-release
		return &domain.ReviewResponse{Score: 70}, nil
	}

	c := NewController(mock, nil)

	type outcome struct {
		res *domain.ReviewResponse
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
		done <- outcome{res, err}
	}()

	<-analyzing
	c.Reset()
	close(release)

	// The late response is dropped, not an error and not a crash.
	got := <-done
	assert.Nil(t, got.res)
	assert.NoError(t, got.err)

	state := c.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Nil(t, state.Document)
	assert.Nil(t, state.Result)

	// Session is reusable.
	mock.AnalyzeFunc = nil
	_, err := c.Submit(context.Background(), "b.md", strings.NewReader("y"), "")
	require.NoError(t, err)
}

func TestResetDuringUploadDiscardsOutcome(t *testing.T) {
	mock := api.NewMock()
	uploading := make(chan struct{})
	release := make(chan struct{})
	mock.UploadFunc = func(_ context.Context, filename string, _ io.Reader) (*domain.Document, error) {
		close(uploading)
		<-release
		return &domain.Document{Filename: filename}, nil
	}

	c := NewController(mock, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
		done <- err
	}()

	<-uploading
	c.Reset()
	close(release)

	assert.NoError(t, <-done)
	assert.Equal(t, PhaseIdle, c.State().Phase)
	assert.Empty(t, mock.AnalyzeCalls, "no analysis after a discarded upload")
}

func TestSubmitForwardsImages(t *testing.T) {
	mock := api.NewMock()
	mock.UploadFunc = func(_ context.Context, filename string, _ io.Reader) (*domain.Document, error) {
		return &domain.Document{
			Filename: filename,
			Images:   []string{"aW1hZ2Ux", "aW1hZ2Uy"},
		}, nil
	}

	c := NewController(mock, nil)
	_, err := c.Submit(context.Background(), "scan.pdf", strings.NewReader(""), "")
	require.NoError(t, err)

	require.Len(t, mock.AnalyzeCalls, 1)
	assert.Equal(t, []string{"aW1hZ2Ux", "aW1hZ2Uy"}, mock.AnalyzeCalls[0].Images)
}

func TestSubmitRejectedWithResultHeld(t *testing.T) {
	mock := api.NewMock()
	c := NewController(mock, nil)

	_, err := c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), "b.md", strings.NewReader("y"), "")
	require.ErrorIs(t, err, ErrHasResult)
}

func TestReset(t *testing.T) {
	mock := api.NewMock()
	c := NewController(mock, nil)

	_, err := c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
	require.NoError(t, err)
	require.Equal(t, PhaseResult, c.State().Phase)

	c.Reset()
	state := c.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Nil(t, state.Document)
	assert.Nil(t, state.Result)

	// Defensive reset from Idle is a no-op.
	c.Reset()
	assert.Equal(t, PhaseIdle, c.State().Phase)
}

func TestSubmitEmitsEvents(t *testing.T) {
	mock := api.NewMock()
	var kinds []event.Kind
	handler := func(ev event.Event) { kinds = append(kinds, ev.Kind) }

	c := NewController(mock, handler)
	_, err := c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
	require.NoError(t, err)

	assert.Equal(t, []event.Kind{
		event.KindUploadStarted,
		event.KindUploadDone,
		event.KindAnalyzeStarted,
		event.KindAnalyzeDone,
	}, kinds)
}

func TestSubmitEmitsFailureEvent(t *testing.T) {
	mock := api.NewMock()
	mock.UploadFunc = func(_ context.Context, _ string, _ io.Reader) (*domain.Document, error) {
		return nil, errors.New("boom")
	}

	var kinds []event.Kind
	c := NewController(mock, func(ev event.Event) { kinds = append(kinds, ev.Kind) })
	_, err := c.Submit(context.Background(), "a.md", strings.NewReader("x"), "")
	require.Error(t, err)

	assert.Equal(t, []event.Kind{event.KindUploadStarted, event.KindFailure}, kinds)
}
