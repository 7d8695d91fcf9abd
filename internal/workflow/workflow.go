// Package workflow implements the document-audit session state machine.
// A session moves Idle -> Uploading -> Analyzing -> Result and back to Idle
// on reset. Transitions are pure functions; the Controller wraps them with
// the gateway calls and event emission.
package workflow

import (
	"errors"
	"fmt"
)

// Phase is the explicit session state. It replaces the implicit machine
// inferred from "file present" and "result present" so that illegal
// combinations (result without file) are unrepresentable.
type Phase int

const (
	// PhaseIdle means no file and no result. Initial state.
	PhaseIdle Phase = iota
	// PhaseUploading means a file transfer is in flight.
	PhaseUploading
	// PhaseAnalyzing means the upload succeeded and analysis is in flight.
	PhaseAnalyzing
	// PhaseResult means a review response is held. Terminal until reset.
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseUploading:
		return "uploading"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseResult:
		return "result"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrBusy is returned when a submission arrives while an upload+analyze
// sequence is already in flight. The controller is not reentrant.
var ErrBusy = errors.New("an audit is already in progress")

// ErrHasResult is returned when a submission arrives while a result is held.
// The session must be reset first.
var ErrHasResult = errors.New("session holds a result; reset before submitting again")

// transitionEvent is an input to the pure transition function.
type transitionEvent int

const (
	evSubmit transitionEvent = iota
	evUploadOK
	evUploadFailed
	evAnalyzeOK
	evAnalyzeFailed
	evReset
)

// transition returns the phase that follows ev in the given phase, or an
// error when the transition is illegal. It has no side effects.
func transition(p Phase, ev transitionEvent) (Phase, error) {
	switch ev {
	case evSubmit:
		switch p {
		case PhaseIdle:
			return PhaseUploading, nil
		case PhaseResult:
			return p, ErrHasResult
		default:
			return p, ErrBusy
		}

	case evUploadOK:
		if p != PhaseUploading {
			return p, fmt.Errorf("upload finished in phase %s", p)
		}
		return PhaseAnalyzing, nil

	case evUploadFailed:
		if p != PhaseUploading {
			return p, fmt.Errorf("upload failed in phase %s", p)
		}
		return PhaseIdle, nil

	case evAnalyzeOK:
		if p != PhaseAnalyzing {
			return p, fmt.Errorf("analysis finished in phase %s", p)
		}
		return PhaseResult, nil

	case evAnalyzeFailed:
		if p != PhaseAnalyzing {
			return p, fmt.Errorf("analysis failed in phase %s", p)
		}
		return PhaseIdle, nil

	case evReset:
		// Reset is legal from any phase.
		return PhaseIdle, nil
	}
	return p, fmt.Errorf("unknown event %d", int(ev))
}
