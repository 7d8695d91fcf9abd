package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) Event
		kind Kind
	}{
		{"Info", Info, KindInfo},
		{"UploadStarted", UploadStarted, KindUploadStarted},
		{"UploadDone", UploadDone, KindUploadDone},
		{"AnalyzeStarted", AnalyzeStarted, KindAnalyzeStarted},
		{"AnalyzeDone", AnalyzeDone, KindAnalyzeDone},
		{"Failure", Failure, KindFailure},
		{"Markdown", Markdown, KindMarkdown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.fn("hello")
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, "hello", e.Text)
		})
	}
}

func TestKindValues(t *testing.T) {
	// Verify kinds are distinct.
	kinds := []Kind{
		KindInfo, KindUploadStarted, KindUploadDone,
		KindAnalyzeStarted, KindAnalyzeDone, KindFailure, KindMarkdown,
	}
	seen := make(map[Kind]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate Kind value %d", k)
		seen[k] = true
	}
}

func TestHandler(t *testing.T) {
	var received []Event
	h := Handler(func(e Event) {
		received = append(received, e)
	})

	h.Emit(UploadStarted("one"))
	h.Emit(Failure("two"))

	assert.Len(t, received, 2)
	assert.Equal(t, KindUploadStarted, received[0].Kind)
	assert.Equal(t, "one", received[0].Text)
	assert.Equal(t, KindFailure, received[1].Kind)
	assert.Equal(t, "two", received[1].Text)
}

func TestNilHandlerEmit(t *testing.T) {
	var h Handler
	assert.NotPanics(t, func() {
		h.Emit(Info("ignored"))
	})
}
