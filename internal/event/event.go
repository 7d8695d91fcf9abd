// Package event defines typed events emitted by the workflow controller and
// connection manager, consumed by the CLI writer and the TUI. These replace
// ad-hoc print statements with structured types so every surface renders the
// same lifecycle consistently.
package event

// Kind identifies the type of event.
type Kind int

const (
	// KindInfo is a general progress message.
	KindInfo Kind = iota
	// KindUploadStarted is emitted when a file upload begins.
	KindUploadStarted
	// KindUploadDone is emitted after the backend extracted the document text.
	KindUploadDone
	// KindAnalyzeStarted is emitted when the analysis request is issued.
	KindAnalyzeStarted
	// KindAnalyzeDone is emitted when a review response arrived.
	KindAnalyzeDone
	// KindFailure is a user-visible failure message.
	KindFailure
	// KindMarkdown is a raw markdown fragment (rendered via glamour).
	KindMarkdown
)

// Event is a single typed event.
type Event struct {
	Kind Kind
	Text string // payload text (meaning depends on Kind)
}

// Handler is a callback that receives typed events. A nil Handler is valid
// and means no one is listening.
type Handler func(Event)

// Emit calls h with ev if h is non-nil.
func (h Handler) Emit(ev Event) {
	if h != nil {
		h(ev)
	}
}

// Info creates a KindInfo event.
func Info(text string) Event { return Event{Kind: KindInfo, Text: text} }

// UploadStarted creates a KindUploadStarted event.
func UploadStarted(text string) Event { return Event{Kind: KindUploadStarted, Text: text} }

// UploadDone creates a KindUploadDone event.
func UploadDone(text string) Event { return Event{Kind: KindUploadDone, Text: text} }

// AnalyzeStarted creates a KindAnalyzeStarted event.
func AnalyzeStarted(text string) Event { return Event{Kind: KindAnalyzeStarted, Text: text} }

// AnalyzeDone creates a KindAnalyzeDone event.
func AnalyzeDone(text string) Event { return Event{Kind: KindAnalyzeDone, Text: text} }

// Failure creates a KindFailure event.
func Failure(text string) Event { return Event{Kind: KindFailure, Text: text} }

// Markdown creates a KindMarkdown event.
func Markdown(text string) Event { return Event{Kind: KindMarkdown, Text: text} }
