package workflow

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/coderite/auditor/internal/debug"
	"github.com/coderite/auditor/internal/domain"
	"github.com/coderite/auditor/internal/event"
)

// UploadError reports a failed file upload. The session stays Idle.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload failed: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// AnalysisError reports a failed analysis after a successful upload. The
// session returns to Idle so the user can retry or move on; it never stays
// stuck in Analyzing.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string { return fmt.Sprintf("analysis failed: %v", e.Err) }
func (e *AnalysisError) Unwrap() error { return e.Err }

// Gateway is the subset of the backend client the controller needs.
type Gateway interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.ReviewResponse, error)
}

// State is a snapshot of a session.
type State struct {
	Phase    Phase
	Document *domain.Document
	Result   *domain.ReviewResponse
}

// Controller owns one document-audit session: the current file, the current
// result, and the phase. One upload+analyze sequence may be in flight at a
// time; concurrent submissions are rejected, not queued. An issued analysis
// cannot be cancelled other than through the context of the call itself.
type Controller struct {
	gw     Gateway
	events event.Handler

	mu    sync.Mutex
	phase Phase
	doc   *domain.Document
	res   *domain.ReviewResponse
}

// NewController creates an Idle session over the given gateway. events may be
// nil.
func NewController(gw Gateway, events event.Handler) *Controller {
	return &Controller{gw: gw, events: events}
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Phase: c.phase, Document: c.doc, Result: c.res}
}

// Submit runs one upload+analyze sequence: uploads the file, stores the
// extracted document, then immediately analyzes it against the category.
// Valid only from Idle. The returned response is also retained in the session
// until Reset. When Reset runs while a call is still in flight the outcome is
// discarded and Submit returns (nil, nil).
func (c *Controller) Submit(ctx context.Context, filename string, content io.Reader, category string) (*domain.ReviewResponse, error) {
	if err := c.apply(evSubmit); err != nil {
		return nil, err
	}

	c.events.Emit(event.UploadStarted(filename))
	doc, err := c.gw.Upload(ctx, filename, content)
	if err != nil {
		// Upload failure does not transition: back to Idle, nothing stored.
		if !c.settle(evUploadFailed, nil, nil) {
			return nil, nil
		}
		c.events.Emit(event.Failure(fmt.Sprintf("upload of %s failed", filename)))
		return nil, &UploadError{Err: err}
	}

	if !c.settle(evUploadOK, doc, nil) {
		return nil, nil
	}
	c.events.Emit(event.UploadDone(doc.Filename))

	return c.analyze(ctx, doc, category)
}

// analyze issues the analysis call for a freshly uploaded document. Exactly
// one analysis is attempted per successful upload.
func (c *Controller) analyze(ctx context.Context, doc *domain.Document, category string) (*domain.ReviewResponse, error) {
	c.events.Emit(event.AnalyzeStarted(category))

	res, err := c.gw.Analyze(ctx, domain.AnalyzeRequest{
		Text:               doc.Content,
		Images:             doc.Images,
		CustomInstructions: "",
		DocumentCategory:   category,
	})
	if err != nil {
		if !c.settle(evAnalyzeFailed, nil, nil) {
			return nil, nil
		}
		c.events.Emit(event.Failure("analysis failed"))
		return nil, &AnalysisError{Err: err}
	}

	if !c.settle(evAnalyzeOK, doc, res) {
		return nil, nil
	}
	c.events.Emit(event.AnalyzeDone(fmt.Sprintf("score %d", res.Score)))
	return res, nil
}

// Reset clears the current file and result and returns the session to Idle.
// Legal from any phase; a no-op when already Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase, _ = transition(c.phase, evReset)
	c.doc = nil
	c.res = nil
}

// apply advances the phase under the lock.
func (c *Controller) apply(ev transitionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := transition(c.phase, ev)
	if err != nil {
		return err
	}
	debug.Logf("workflow: %s -> %s", c.phase, next)
	c.phase = next
	return nil
}

// settle records the outcome of a network call under the lock: the phase
// advances and the stored document and result are replaced. It reports false
// when the transition is no longer legal, meaning Reset ran while the call
// was in flight; the outcome is then dropped and the session left untouched.
func (c *Controller) settle(ev transitionEvent, doc *domain.Document, res *domain.ReviewResponse) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := transition(c.phase, ev)
	if err != nil {
		debug.Logf("workflow: discarding stale outcome in phase %s", c.phase)
		return false
	}
	debug.Logf("workflow: %s -> %s", c.phase, next)
	c.phase = next
	c.doc = doc
	c.res = res
	return true
}
